package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/lynq-cli/internal/client/otp"
	"github.com/dmitrijs2005/lynq-cli/internal/client/services"
)

// renderCells draws the code cells. An empty focused cell is drawn as '*'.
//
//	[1 2 * _ _ _]
func renderCells(f otp.Form) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, c := range f.Draft {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case i == f.Focus && c == "":
			b.WriteByte('*')
		case c == "":
			b.WriteByte('_')
		default:
			b.WriteString(c)
		}
	}
	b.WriteByte(']')
	return b.String()
}

// enterVerification makes sure a pending verification exists. Without one
// the user is sent to signup and false is returned.
func (a *App) enterVerification(ctx context.Context) bool {
	if a.route == services.RouteVerify {
		return true
	}
	out, err := a.authService.Verification(ctx)
	if err != nil {
		a.report(ctx, "verification", err)
		return false
	}
	a.navigate(ctx, out)
	return out.Route == services.RouteVerify
}

// Type enters each character of s into the focused cell, one key press at
// a time.
func (a *App) Type(ctx context.Context, s string) {
	if !a.enterVerification(ctx) {
		return
	}
	for _, r := range s {
		a.form.Type(string(r))
	}
}

// Backspace presses backspace n times.
func (a *App) Backspace(ctx context.Context, n int) {
	if !a.enterVerification(ctx) {
		return
	}
	for i := 0; i < n; i++ {
		a.form.Backspace()
	}
}

// Paste pastes text into the focused cell. Only the first cell accepts a
// paste.
func (a *App) Paste(ctx context.Context, text string) {
	if !a.enterVerification(ctx) {
		return
	}
	if !a.form.Paste(text) {
		printlnFn("Paste only works in the first cell.")
	}
}

// Verify submits the code cells. A code given as argument is pasted into
// emptied cells first. A rejected code clears the cells.
func (a *App) Verify(ctx context.Context, code string) error {
	if !a.enterVerification(ctx) {
		return nil
	}
	if code != "" {
		a.form.Reset()
		a.form.Paste(code)
	}

	out, err := a.authService.Verify(ctx, a.form.Draft)
	if err != nil {
		a.report(ctx, "verify", err)
		var re *services.RemoteError
		if errors.As(err, &re) {
			a.form.Reset()
		}
		return err
	}
	if out.Route == services.RouteHome {
		a.form.Reset()
	}
	a.navigate(ctx, out)
	return nil
}

// Resend asks for a new code. On success the cells are cleared and a notice
// is shown for a few seconds; on failure the cells are left alone.
func (a *App) Resend(ctx context.Context) error {
	if !a.enterVerification(ctx) {
		return nil
	}
	a.notice = ""

	out, err := a.authService.Resend(ctx)
	if err != nil {
		a.report(ctx, "resend", err)
		return err
	}
	if out.Notice != "" {
		printlnFn(out.Notice)
		a.setNotice(out.Notice, a.config.ResendNoticeTTL)
		a.form.Reset()
	}
	a.navigate(ctx, out)
	return nil
}

// Back leaves code entry for the signup step. The pending verification is
// kept so the user can return to it.
func (a *App) Back(ctx context.Context) {
	a.form.Reset()
	a.navigate(ctx, services.Outcome{Route: services.RouteSignup})
}
