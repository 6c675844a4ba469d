package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kspdigital/sociallog-cli/internal/api"
	"github.com/kspdigital/sociallog-cli/internal/services"
)

// Login asks for an identity credential (a Google ID token obtained out of
// band), verifies it and starts a session, then syncs the post list.
func (a *App) Login(ctx context.Context) error {
	credential, err := GetSecret("Paste identity credential", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading credential", "error", err)
		return err
	}
	if credential == "" {
		printlnFn("ไม่สามารถเข้าสู่ระบบได้: no credential")
		return nil
	}

	session, err := a.authService.Login(ctx, credential)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCredentialExpired):
			printlnFn("ไม่สามารถเข้าสู่ระบบได้: credential หมดอายุ")
		case errors.Is(err, api.ErrNotConfigured):
			printlnFn("ไม่พบการตั้งค่า API")
		default:
			printlnFn("การยืนยันตัวตนล้มเหลว: " + err.Error())
		}
		return err
	}

	printlnFn(fmt.Sprintf("เข้าสู่ระบบสำเร็จ: %s <%s>", session.Name, session.Email))

	if err := a.postService.Sync(ctx); err != nil {
		a.log.Error(ctx, "sync after login failed", "error", err)
	}
	return nil
}

// Logout clears the local session. The backend keeps no session to destroy.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		return err
	}
	printlnFn("ออกจากระบบแล้ว")
	return nil
}

// Sync reloads the post list from the backend on demand.
func (a *App) Sync(ctx context.Context) error {
	if err := a.postService.Sync(ctx); err != nil {
		a.log.Error(ctx, "sync failed", "error", err)
		printlnFn("เกิดข้อผิดพลาด: " + err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("ซิงค์แล้ว: %d โพสต์", len(a.store.Posts())))
	return nil
}
