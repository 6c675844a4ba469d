package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kspdigital/sociallog-cli/internal/models"
)

// List prints the viewer's posts, newest first, resolving missing thumbnails
// through the lazy loader as the table is built.
func (a *App) List(ctx context.Context) error {
	session := a.store.Session()
	if session == nil {
		return nil
	}

	posts := a.store.PostsByEmail(session.Email)
	if len(posts) == 0 {
		printlnFn("ยังไม่มีข้อมูล")
		return nil
	}

	a.loader.LoadMissing(ctx, posts)

	printlnFn(fmt.Sprintf("ประวัติการโพสต์ (%d)", len(posts)))
	for _, p := range posts {
		printlnFn(fmt.Sprintf("%s  %s  [%s]  %-10s  %s",
			p.Time().Format("2006-01-02 15:04"),
			p.ID,
			a.imageMarker(p),
			p.PostType,
			truncate(p.Description, 48)))
		if p.Tags != "" {
			printlnFn("       tags: " + p.Tags)
		}
		if p.PostURL != "" {
			printlnFn("       url:  " + p.PostURL)
		}
	}
	return nil
}

// imageMarker summarizes the image state of a post for the table view.
func (a *App) imageMarker(p models.Post) string {
	switch {
	case p.ImageData != "":
		return "img"
	case p.ImageFileID == "":
		return " - "
	default:
		if _, ok := a.loader.Get(p.ID); ok {
			return "img"
		}
		return "..."
	}
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// Delete confirms and removes one of the viewer's posts.
func (a *App) Delete(ctx context.Context, id string) error {
	if id == "" {
		printlnFn("usage: delete <id>")
		return nil
	}

	answer, err := GetSimpleText(a.reader, "คุณต้องการลบข้อมูลนี้ใช่หรือไม่? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}

	if err := a.postService.Delete(ctx, id); err != nil {
		printlnFn("เกิดข้อผิดพลาด: " + err.Error())
		return err
	}
	printlnFn("ลบข้อมูลสำเร็จ!")
	return nil
}
