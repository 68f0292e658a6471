package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/lynq-cli/internal/client/config"
	"github.com/dmitrijs2005/lynq-cli/internal/client/otp"
	"github.com/dmitrijs2005/lynq-cli/internal/client/services"
	"github.com/dmitrijs2005/lynq-cli/internal/client/session"
	"github.com/dmitrijs2005/lynq-cli/internal/logging"
)

// sleepFn and nowFn are test seams for timed behavior.
var (
	sleepFn = time.Sleep
	nowFn   = time.Now
)

type App struct {
	config      *config.Config
	authService services.AuthService
	log         logging.Logger
	reader      *bufio.Reader

	route        services.Route
	state        session.State
	form         otp.Form
	showPassword bool

	notice      string
	noticeUntil time.Time
}

func NewApp(c *config.Config, as services.AuthService, l logging.Logger) *App {
	return &App{
		config:      c,
		authService: as,
		log:         l,
		reader:      bufio.NewReader(os.Stdin),
		route:       services.RouteLogin,
	}
}

// Run opens the step matching the stored session and serves the REPL until
// the user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to Lynq (type 'help' for commands)")
	_ = a.Home(ctx)
	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) currentRoute() services.Route {
	return a.route
}

// setNotice shows msg in the prompt until ttl elapses.
func (a *App) setNotice(msg string, ttl time.Duration) {
	a.notice = msg
	a.noticeUntil = nowFn().Add(ttl)
}

func (a *App) activeNotice() string {
	if a.notice == "" {
		return ""
	}
	if !nowFn().Before(a.noticeUntil) {
		a.notice = ""
		return ""
	}
	return a.notice
}

func (a *App) getStatus() string {
	parts := []string{string(a.route)}
	switch a.route {
	case services.RouteVerify:
		parts = append(parts, a.state.Email, renderCells(a.form))
	case services.RouteHome:
		parts = append(parts, displayName(a.state.Email))
	}
	if n := a.activeNotice(); n != "" {
		parts = append(parts, "| "+n)
	}
	return fmt.Sprintf("(%s)", strings.Join(nonEmpty(parts), " "))
}

func nonEmpty(ss []string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// displayName is the name shown for a signed-in user.
func displayName(email string) string {
	if email == "" {
		return "User"
	}
	return email
}

// navigate applies a route coming from a service outcome.
func (a *App) navigate(ctx context.Context, out services.Outcome) {
	prev := a.state
	a.state = out.State
	switch out.Route {
	case services.RouteStay:
		return
	case services.RouteVerify:
		if a.route != services.RouteVerify || prev != out.State {
			a.form.Reset()
			a.printVerification()
		}
	case services.RouteHome:
		a.printHome()
	case services.RouteLogin:
		printlnFn("Log in with your email and password (type 'login').")
	case services.RouteSignup:
		printlnFn("Create an account (type 'signup').")
	}
	a.route = out.Route
	a.log.Debug(ctx, "route changed", "route", out.Route)
}

func (a *App) printVerification() {
	c := services.VerificationCopy(a.state.Purpose)
	printlnFn(c.Title)
	printlnFn(c.Subtitle, a.state.Email)
	printlnFn(services.MsgCodeExpiry)
	printlnFn("Enter the code with 'verify <code>', or cell by cell with 'type', 'bs' and 'paste'.")
}

func (a *App) printHome() {
	printlnFn("Welcome,", displayName(a.state.Email))
	info, err := session.DescribeToken(a.state.Token)
	if err != nil {
		return
	}
	if !info.ExpiresAt.IsZero() {
		printlnFn("Session valid until", info.ExpiresAt.Local().Format(time.RFC1123))
	}
}
