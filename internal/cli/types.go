package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Types prints the post-type vocabulary from the process cache.
func (a *App) Types(ctx context.Context) error {
	return a.printTypes(ctx, false)
}

// RefreshTypes invalidates the vocabulary cache and refetches.
func (a *App) RefreshTypes(ctx context.Context) error {
	return a.printTypes(ctx, true)
}

func (a *App) printTypes(ctx context.Context, refresh bool) error {
	var err error
	if refresh {
		_, err = a.postService.RefreshPostTypes(ctx)
	}
	types, err2 := a.postService.PostTypes(ctx)
	if err == nil {
		err = err2
	}
	if err != nil {
		a.log.Error(ctx, "failed to load post types", "error", err)
		printlnFn("เกิดข้อผิดพลาด: " + err.Error())
		return err
	}

	for _, t := range types {
		printlnFn(fmt.Sprintf("  %-20s (id %s)", t.Name, t.ID))
	}
	return nil
}

// Reset wipes the local cache (posts and session) after confirmation.
func (a *App) Reset(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "Wipe the local cache? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") {
		return nil
	}

	if err := a.store.Wipe(ctx); err != nil {
		printlnFn("เกิดข้อผิดพลาด: " + err.Error())
		return err
	}
	a.loader.Clear()
	printlnFn("ล้างข้อมูลในเครื่องแล้ว")
	return nil
}
