package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/lynq-cli/internal/client/credentials"
	"github.com/dmitrijs2005/lynq-cli/internal/client/services"
	"github.com/dmitrijs2005/lynq-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getVisiblePassword = GetVisiblePassword

// report prints the user-facing text of err. Errors that carry none are
// logged and replaced by a generic line.
func (a *App) report(ctx context.Context, op string, err error) {
	var ve *services.ValidationError
	var re *services.RemoteError
	switch {
	case errors.As(err, &ve):
		printlnFn(ve.Message)
	case errors.As(err, &re):
		printlnFn(re.Message)
	case errors.Is(err, services.ErrBusy):
		printlnFn("Please wait, the previous request is still running.")
	default:
		a.log.Error(ctx, op+" failed", "error", err)
		printlnFn("Something went wrong, please try again.")
	}
}

func (a *App) readPassword() (string, error) {
	var (
		pw  []byte
		err error
	)
	if a.showPassword {
		pw, err = getVisiblePassword(a.reader, os.Stdout)
	} else {
		pw, err = getPassword(os.Stdout)
	}
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

func printRules(password string) {
	for _, r := range credentials.CheckPassword(password).Rules() {
		mark := "[ ]"
		if r.Passed {
			mark = "[x]"
		}
		printlnFn(mark, r.Label)
	}
}

// Signup prompts for an email and a password, prints the password rule
// checklist and submits the form.
//
// An already registered email is not an error: the informational message is
// shown for the configured delay and the user is taken to login.
func (a *App) Signup(ctx context.Context) error {
	a.route = services.RouteSignup

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := a.readPassword()
	if err != nil {
		return err
	}
	printRules(password)

	out, err := a.authService.Signup(ctx, email, password)
	if err != nil {
		a.report(ctx, "signup", err)
		return err
	}
	if out.Notice != "" {
		printlnFn(out.Notice)
		sleepFn(a.config.ConflictRedirectDelay)
	}
	a.navigate(ctx, out)
	return nil
}

// Login prompts for credentials and submits them. Success always leads to
// code verification.
func (a *App) Login(ctx context.Context) error {
	a.route = services.RouteLogin

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	password, err := a.readPassword()
	if err != nil {
		return err
	}

	out, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.report(ctx, "login", err)
		return err
	}
	a.navigate(ctx, out)
	return nil
}

// SetPasswordVisible toggles whether passwords are echoed while typed.
func (a *App) SetPasswordVisible(visible bool) {
	a.showPassword = visible
	if visible {
		printlnFn("Passwords will be shown while typing.")
	} else {
		printlnFn("Passwords will be hidden while typing.")
	}
}

// Google runs the Google sign-in placeholder.
func (a *App) Google(ctx context.Context) error {
	printlnFn(services.MsgGoogleConnecting)
	err := a.authService.GoogleSignIn(ctx)
	if errors.Is(err, services.ErrNotImplemented) {
		printlnFn(services.MsgGoogleUnavailable)
	}
	return err
}

// Home opens the signed-in view, or the login step without a session.
func (a *App) Home(ctx context.Context) error {
	out, err := a.authService.Home(ctx)
	if err != nil {
		a.report(ctx, "home", err)
		return err
	}
	a.navigate(ctx, out)
	return nil
}

// Logout forgets the session locally and returns to login.
func (a *App) Logout(ctx context.Context) error {
	out, err := a.authService.Logout(ctx)
	if err != nil {
		a.report(ctx, "logout", err)
		return err
	}
	printlnFn("Logged out.")
	a.navigate(ctx, out)
	return nil
}
