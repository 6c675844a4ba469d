// Package stats derives display aggregates from the in-memory post list.
// Everything here is a pure read-side projection recomputed from the full
// dataset on each render; nothing is persisted. All date bucketing uses
// local calendar day/month boundaries, not UTC.
package stats

import (
	"sort"
	"time"

	"github.com/kspdigital/sociallog-cli/internal/models"
)

// DayCount is one point of the per-day series for a month.
type DayCount struct {
	Day   int
	Posts int
}

// EmployeeCount is one row of an employee leaderboard, already relabeled
// through the directory.
type EmployeeCount struct {
	Name  string
	Posts int
}

// MonthSummary aggregates one calendar month across all users.
type MonthSummary struct {
	Total     int
	AvgPerDay float64
	MaxPerDay int
}

// DayTypeCount is one day of the viewer's per-type breakdown. Counts may be
// empty for days without posts.
type DayTypeCount struct {
	Day    int
	Counts map[string]int
}

// Directory maps employee codes to display nicknames. A missing entry falls
// back to the raw code.
type Directory map[string]string

func (d Directory) displayName(code string) string {
	if code == "" {
		code = "Unknown"
	}
	if name, ok := d[code]; ok {
		return name
	}
	return code
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func inMonth(t time.Time, year int, month time.Month) bool {
	return t.Year() == year && t.Month() == month
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// TodayCount counts the viewer's posts on the local calendar day of now.
func TodayCount(posts []models.Post, email string, now time.Time) int {
	count := 0
	for _, p := range posts {
		if p.CreatedByEmail == email && sameDay(p.Time(), now) {
			count++
		}
	}
	return count
}

// Total is the global all-time post count.
func Total(posts []models.Post) int {
	return len(posts)
}

// DailySeries returns one entry per day of the month, strictly ascending
// 1..D, zero-filled for days without posts. All users are counted.
func DailySeries(posts []models.Post, year int, month time.Month) []DayCount {
	days := DaysIn(year, month)
	series := make([]DayCount, days)
	for d := range series {
		series[d].Day = d + 1
	}
	for _, p := range posts {
		t := p.Time()
		if inMonth(t, year, month) {
			series[t.Day()-1].Posts++
		}
	}
	return series
}

// Summarize computes the month total plus average and maximum per-day
// counts. The average divides by the number of days in the month, matching
// the daily series length.
func Summarize(posts []models.Post, year int, month time.Month) MonthSummary {
	series := DailySeries(posts, year, month)
	s := MonthSummary{}
	for _, day := range series {
		s.Total += day.Posts
		if day.Posts > s.MaxPerDay {
			s.MaxPerDay = day.Posts
		}
	}
	if s.Total > 0 {
		s.AvgPerDay = float64(s.Total) / float64(len(series))
	}
	return s
}

func leaderboard(counts map[string]int, dir Directory) []EmployeeCount {
	out := make([]EmployeeCount, 0, len(counts))
	for code, n := range counts {
		out = append(out, EmployeeCount{Name: dir.displayName(code), Posts: n})
	}
	// descending by count; ties unordered
	sort.Slice(out, func(i, j int) bool { return out[i].Posts > out[j].Posts })
	return out
}

// EmployeeTotals is the all-time per-employee leaderboard.
func EmployeeTotals(posts []models.Post, dir Directory) []EmployeeCount {
	counts := make(map[string]int)
	for _, p := range posts {
		counts[p.CreatedBy]++
	}
	return leaderboard(counts, dir)
}

// EmployeeTotalsInMonth is the per-employee leaderboard restricted to one month.
func EmployeeTotalsInMonth(posts []models.Post, year int, month time.Month, dir Directory) []EmployeeCount {
	counts := make(map[string]int)
	for _, p := range posts {
		if inMonth(p.Time(), year, month) {
			counts[p.CreatedBy]++
		}
	}
	return leaderboard(counts, dir)
}

// EmployeeTotalsOnDay is the per-employee leaderboard for a single local
// calendar day.
func EmployeeTotalsOnDay(posts []models.Post, day time.Time, dir Directory) []EmployeeCount {
	counts := make(map[string]int)
	for _, p := range posts {
		if sameDay(p.Time(), day) {
			counts[p.CreatedBy]++
		}
	}
	return leaderboard(counts, dir)
}

// UserMonthlyBreakdown buckets the viewer's posts in the selected month by
// day and post type. The day axis is zero-filled 1..D; the type columns are
// discovered dynamically from the data present that month and returned
// sorted lexically. Posts without a type fall under "Uncategorized".
func UserMonthlyBreakdown(posts []models.Post, email string, year int, month time.Month) ([]DayTypeCount, []string) {
	days := DaysIn(year, month)
	breakdown := make([]DayTypeCount, days)
	for d := range breakdown {
		breakdown[d] = DayTypeCount{Day: d + 1, Counts: make(map[string]int)}
	}

	typeSet := make(map[string]struct{})
	for _, p := range posts {
		t := p.Time()
		if p.CreatedByEmail != email || !inMonth(t, year, month) {
			continue
		}
		postType := p.PostType
		if postType == "" {
			postType = "Uncategorized"
		}
		typeSet[postType] = struct{}{}
		breakdown[t.Day()-1].Counts[postType]++
	}

	types := make([]string, 0, len(typeSet))
	for t := range typeSet {
		types = append(types, t)
	}
	sort.Strings(types)

	return breakdown, types
}
