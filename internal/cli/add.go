package cli

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/kspdigital/sociallog-cli/internal/api"
	"github.com/kspdigital/sociallog-cli/internal/services"
)

// Add walks the user through a new post: optional image, caption, tags,
// type from the remote vocabulary, optional link.
func (a *App) Add(ctx context.Context) error {
	draft := services.PostDraft{}

	imagePath, err := GetSimpleText(a.reader, "Image file (optional, press Enter to skip)", os.Stdout)
	if err != nil {
		return err
	}
	if imagePath != "" {
		data, err := encodeImageFile(imagePath)
		if err != nil {
			printlnFn("ไม่สามารถอ่านรูปภาพได้: " + err.Error())
		} else {
			draft.ImageData = data
		}
	}

	draft.Description, err = GetMultiline(a.reader, "Caption", os.Stdout)
	if err != nil {
		return err
	}
	if draft.Description == "" {
		printlnFn("กรุณากรอกรายละเอียดโพสต์")
		return nil
	}

	draft.Tags, err = GetSimpleText(a.reader, "Tags (space-delimited, optional)", os.Stdout)
	if err != nil {
		return err
	}

	draft.PostType, err = a.choosePostType(ctx)
	if err != nil {
		return err
	}

	draft.PostURL, err = GetSimpleText(a.reader, "Post URL (optional)", os.Stdout)
	if err != nil {
		return err
	}

	post, err := a.postService.Create(ctx, draft)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyDescription):
			printlnFn("กรุณากรอกรายละเอียดโพสต์")
		case errors.Is(err, api.ErrNotConfigured):
			printlnFn("ไม่พบการตั้งค่า API")
		default:
			printlnFn("เกิดข้อผิดพลาด: " + err.Error())
		}
		return err
	}

	printlnFn("บันทึกสำเร็จ (id " + post.ID + ")")
	return nil
}

// choosePostType offers the remote vocabulary as a numbered menu. When the
// vocabulary cannot be fetched the field stays free text, matching how the
// backend treats it.
func (a *App) choosePostType(ctx context.Context) (string, error) {
	types, err := a.postService.PostTypes(ctx)
	if err != nil || len(types) == 0 {
		if err != nil {
			a.log.Error(ctx, "failed to load post types", "error", err)
		}
		return GetSimpleText(a.reader, "Post type (optional)", os.Stdout)
	}

	for i, t := range types {
		printlnFn(fmt.Sprintf("  %d. %s", i+1, t.Name))
	}
	choice, err := GetSimpleText(a.reader, "Post type number (optional, press Enter to skip)", os.Stdout)
	if err != nil {
		return "", err
	}
	if choice == "" {
		return "", nil
	}
	n, err := strconv.Atoi(choice)
	if err != nil || n < 1 || n > len(types) {
		printlnFn("Unknown type, leaving empty")
		return "", nil
	}
	return types[n-1].Name, nil
}

// encodeImageFile reads a local file into an inline data URI. The MIME type
// is sniffed from the content, not the extension.
func encodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
