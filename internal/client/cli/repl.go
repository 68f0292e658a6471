package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/lynq-cli/internal/client/services"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	currentRoute() services.Route
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Google(ctx context.Context) error
	SetPasswordVisible(visible bool)
	Type(ctx context.Context, s string)
	Backspace(ctx context.Context, n int)
	Paste(ctx context.Context, text string)
	Verify(ctx context.Context, code string) error
	Resend(ctx context.Context) error
	Back(ctx context.Context)
	Home(ctx context.Context) error
	Logout(ctx context.Context) error
}

func helpText(r services.Route) string {
	switch r {
	case services.RouteVerify:
		return "Available commands: verify [code], type <digits>, bs [n], paste <code>, resend, back, exit"
	case services.RouteHome:
		return "Available commands: home, logout, exit"
	default:
		return "Available commands: signup, login, google, show, hide, verify, home, exit"
	}
}

// runREPL starts a simple read-eval-print loop for the Lynq CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Signup / login:
//	  - signup           create an account
//	  - login            log in
//	  - google           continue with Google
//	  - show | hide      echo or hide passwords while typing
//
//	Code verification:
//	  - verify [code]    submit the cells, or paste and submit code
//	  - type <digits>    type into the focused cell
//	  - bs [n]           press backspace n times (default 1)
//	  - paste <code>     paste into the first cell
//	  - resend           send a new code
//	  - back             back to signup
//
//	Signed in:
//	  - home             show the signed-in view
//	  - logout           log out
//
//	Always: help, exit | quit
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("lynq %s > ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := strings.Join(parts[1:], "")

		switch cmd {
		case "help":
			printlnFn(helpText(a.currentRoute()))

		case "signup":
			_ = a.Signup(ctx)

		case "login":
			_ = a.Login(ctx)

		case "google":
			_ = a.Google(ctx)

		case "show":
			a.SetPasswordVisible(true)

		case "hide":
			a.SetPasswordVisible(false)

		case "verify":
			_ = a.Verify(ctx, arg)

		case "type":
			if arg == "" {
				printlnFn("Usage: type <digits>")
				continue
			}
			a.Type(ctx, arg)

		case "bs":
			n := 1
			if arg != "" {
				v, err := strconv.Atoi(arg)
				if err != nil || v < 1 {
					printlnFn("Usage: bs [n]")
					continue
				}
				n = v
			}
			a.Backspace(ctx, n)

		case "paste":
			if arg == "" {
				printlnFn("Usage: paste <code>")
				continue
			}
			a.Paste(ctx, arg)

		case "resend":
			_ = a.Resend(ctx)

		case "back":
			a.Back(ctx)

		case "home":
			_ = a.Home(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
