package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kspdigital/sociallog-cli/internal/stats"
)

// Stats renders the monthly dashboard: summary cards, the zero-filled daily
// series, per-employee leaderboards and the viewer's per-type breakdown.
// The month argument is "YYYY-MM"; empty means the current month.
func (a *App) Stats(ctx context.Context, month string) error {
	session := a.store.Session()
	if session == nil {
		return nil
	}

	year, m, err := parseMonth(month)
	if err != nil {
		printlnFn("usage: stats [YYYY-MM]")
		return nil
	}

	posts := a.store.Posts()
	if len(posts) == 0 {
		printlnFn("ยังไม่มีข้อมูลสถิติ")
		return nil
	}

	directory := a.postService.Employees(ctx)
	summary := stats.Summarize(posts, year, m)

	printlnFn(fmt.Sprintf("สถิติการโพสต์ - %04d-%02d", year, int(m)))
	printlnFn(fmt.Sprintf("  โพสต์ของคุณวันนี้: %d", stats.TodayCount(posts, session.Email, time.Now())))
	printlnFn(fmt.Sprintf("  โพสต์ทั้งหมด:      %d", stats.Total(posts)))
	printlnFn(fmt.Sprintf("  เดือนนี้:          %d", summary.Total))
	printlnFn(fmt.Sprintf("  เฉลี่ย/วัน:        %.1f", summary.AvgPerDay))
	printlnFn(fmt.Sprintf("  สูงสุด/วัน:        %d", summary.MaxPerDay))

	printlnFn("")
	printlnFn("รายวัน:")
	for _, day := range stats.DailySeries(posts, year, m) {
		if day.Posts == 0 {
			continue
		}
		printlnFn(fmt.Sprintf("  %2d  %-3d %s", day.Day, day.Posts, strings.Repeat("#", day.Posts)))
	}

	printlnFn("")
	printlnFn("สถิติรายพนักงาน (เดือนนี้):")
	printLeaderboard(stats.EmployeeTotalsInMonth(posts, year, m, directory))

	printlnFn("")
	printlnFn("สถิติรายพนักงาน (ทั้งหมด):")
	printLeaderboard(stats.EmployeeTotals(posts, directory))

	breakdown, types := stats.UserMonthlyBreakdown(posts, session.Email, year, m)
	printlnFn("")
	if len(types) == 0 {
		printlnFn("คุณยังไม่มีโพสต์ในเดือนนี้")
		return nil
	}
	printlnFn("สรุปโพสต์รายวันของคุณ (" + strings.Join(types, ", ") + "):")
	for _, day := range breakdown {
		if len(day.Counts) == 0 {
			continue
		}
		parts := make([]string, 0, len(types))
		for _, t := range types {
			if n := day.Counts[t]; n > 0 {
				parts = append(parts, fmt.Sprintf("%s:%d", t, n))
			}
		}
		printlnFn(fmt.Sprintf("  %2d  %s", day.Day, strings.Join(parts, "  ")))
	}
	return nil
}

// Day prints the per-employee counts for a single local calendar day.
func (a *App) Day(ctx context.Context, date string) error {
	if a.store.Session() == nil {
		return nil
	}

	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		printlnFn("usage: day <YYYY-MM-DD>")
		return nil
	}

	rows := stats.EmployeeTotalsOnDay(a.store.Posts(), day, a.postService.Employees(ctx))
	if len(rows) == 0 {
		printlnFn("ไม่มีข้อมูลในวันนี้")
		return nil
	}
	printlnFn("กราฟรายวัน " + date + ":")
	printLeaderboard(rows)
	return nil
}

func printLeaderboard(rows []stats.EmployeeCount) {
	if len(rows) == 0 {
		printlnFn("  ไม่มีข้อมูลในเดือนนี้")
		return
	}
	for _, row := range rows {
		printlnFn(fmt.Sprintf("  %-16s %d", row.Name, row.Posts))
	}
}

// parseMonth parses "YYYY-MM", defaulting to the current local month.
func parseMonth(s string) (int, time.Month, error) {
	if s == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	t, err := time.ParseInLocation("2006-01", s, time.Local)
	if err != nil {
		return 0, 0, err
	}
	return t.Year(), t.Month(), nil
}
