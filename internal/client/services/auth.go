// Package services contains application services for the Lynq client.
// This file defines the authentication service: signup, login, code
// verification and resend, the session gate and logout.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/lynq-cli/internal/client/client"
	"github.com/dmitrijs2005/lynq-cli/internal/client/credentials"
	"github.com/dmitrijs2005/lynq-cli/internal/client/otp"
	"github.com/dmitrijs2005/lynq-cli/internal/client/session"
	"github.com/dmitrijs2005/lynq-cli/internal/logging"
)

// User-facing messages.
const (
	MsgInvalidEmail      = "Please enter a valid email address"
	MsgPasswordRules     = "Please meet all password requirements"
	MsgPasswordRequired  = "Please enter your password"
	MsgIncompleteCode    = "Please enter complete 6-digit code"
	MsgAccountExists     = "Account already exists. Redirecting to login..."
	MsgCodeResent        = "New code sent successfully!"
	MsgSignupFailed      = "Signup failed"
	MsgLoginFailed       = "Login failed"
	MsgInvalidCode       = "Invalid verification code"
	MsgResendFailed      = "Failed to resend code"
	MsgGoogleConnecting  = "Connecting..."
	MsgGoogleUnavailable = "Google sign-in is not available yet"
	MsgCodeExpiry        = "Code expires in 10 minutes"
)

// DefaultGoogleDelay is how long GoogleSignIn pretends to connect.
const DefaultGoogleDelay = 1500 * time.Millisecond

var (
	// ErrBusy is returned when the same action is already in flight.
	ErrBusy = errors.New("request already in progress")
	// ErrNotImplemented is returned by GoogleSignIn.
	ErrNotImplemented = errors.New("google sign-in is not implemented")
)

// ValidationError is a local check that failed before any network call.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// RemoteError is a failed API call. Message is what the user sees: the
// server's message when it sent one, otherwise the action's fallback.
type RemoteError struct {
	Message string
	Err     error
}

func (e *RemoteError) Error() string { return e.Message }

func (e *RemoteError) Unwrap() error { return e.Err }

// Route names the step the user should be taken to next.
type Route string

const (
	RouteStay   Route = ""
	RouteSignup Route = "signup"
	RouteLogin  Route = "login"
	RouteVerify Route = "verify"
	RouteHome   Route = "home"
)

// Outcome is the result of a successful operation. Notice carries an
// informational message, if any.
type Outcome struct {
	Route  Route
	State  session.State
	Notice string
}

// Copy is the purpose-specific text of the verification step.
type Copy struct {
	Title    string
	Subtitle string
}

// VerificationCopy returns the heading shown while a code is awaited.
func VerificationCopy(p session.Purpose) Copy {
	if p == session.PurposeLogin {
		return Copy{Title: "Verifying it's you", Subtitle: "We sent a security code to verify your identity"}
	}
	return Copy{Title: "Check your email", Subtitle: "We sent a verification code to"}
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup, Login: validate locally, call the API and on success record
//     the pending verification; neither ever yields a session.
//   - Verification: the pending verification, or a redirect to signup.
//   - Verify, Resend: act on the pending verification.
//   - Home: the authenticated session, or a redirect to login.
//   - Logout: drop the session locally; no server call.
//   - GoogleSignIn: placeholder that always fails with ErrNotImplemented.
type AuthService interface {
	Signup(ctx context.Context, email, password string) (Outcome, error)
	Login(ctx context.Context, email, password string) (Outcome, error)
	Verification(ctx context.Context) (Outcome, error)
	Verify(ctx context.Context, draft otp.Draft) (Outcome, error)
	Resend(ctx context.Context) (Outcome, error)
	Home(ctx context.Context) (Outcome, error)
	Logout(ctx context.Context) (Outcome, error)
	GoogleSignIn(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and a
// session Manager.
type authService struct {
	client      client.Client
	sessions    *session.Manager
	log         logging.Logger
	googleDelay time.Duration

	verifying atomic.Bool
	resending atomic.Bool
}

// Option configures an authService.
type Option func(*authService)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l logging.Logger) Option {
	return func(a *authService) { a.log = l }
}

// WithGoogleDelay overrides how long GoogleSignIn pretends to connect.
func WithGoogleDelay(d time.Duration) Option {
	return func(a *authService) { a.googleDelay = d }
}

// NewAuthService constructs an AuthService bound to the given API client and
// session manager.
func NewAuthService(c client.Client, sessions *session.Manager, opts ...Option) AuthService {
	a := &authService{
		client:      c,
		sessions:    sessions,
		log:         logging.Discard(),
		googleDelay: DefaultGoogleDelay,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// remoteError maps err to a RemoteError using the server message when there
// is one and fallback otherwise. Transport failures use the fallback too.
func remoteError(err error, fallback string) *RemoteError {
	msg, ok := client.MessageOf(err)
	if !ok {
		msg = fallback
	}
	return &RemoteError{Message: msg, Err: err}
}

func requestID(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.RequestID
	}
	return ""
}

func (a *authService) Signup(ctx context.Context, email, password string) (Outcome, error) {
	if !credentials.ValidEmail(email) {
		return Outcome{}, &ValidationError{Message: MsgInvalidEmail}
	}
	if !credentials.CheckPassword(password).AllPassed() {
		return Outcome{}, &ValidationError{Message: MsgPasswordRules}
	}

	err := a.client.Signup(ctx, email, password)
	if errors.Is(err, client.ErrConflict) {
		a.log.Info(ctx, "signup conflict, redirecting to login", "email", email, "request_id", requestID(err))
		return Outcome{Route: RouteLogin, Notice: MsgAccountExists}, nil
	}
	if err != nil {
		a.log.Warn(ctx, "signup failed", "email", email, "request_id", requestID(err), "error", err)
		return Outcome{}, remoteError(err, MsgSignupFailed)
	}

	st, err := a.sessions.BeginVerification(ctx, email, session.PurposeSignup)
	if err != nil {
		return Outcome{}, fmt.Errorf("signup: %w", err)
	}
	a.log.Info(ctx, "verification code sent", "email", email, "purpose", session.PurposeSignup)
	return Outcome{Route: RouteVerify, State: st}, nil
}

func (a *authService) Login(ctx context.Context, email, password string) (Outcome, error) {
	if !credentials.ValidEmail(email) {
		return Outcome{}, &ValidationError{Message: MsgInvalidEmail}
	}
	if password == "" {
		return Outcome{}, &ValidationError{Message: MsgPasswordRequired}
	}

	if err := a.client.Login(ctx, email, password); err != nil {
		a.log.Warn(ctx, "login failed", "email", email, "request_id", requestID(err), "error", err)
		return Outcome{}, remoteError(err, MsgLoginFailed)
	}

	st, err := a.sessions.BeginVerification(ctx, email, session.PurposeLogin)
	if err != nil {
		return Outcome{}, fmt.Errorf("login: %w", err)
	}
	a.log.Info(ctx, "verification code sent", "email", email, "purpose", session.PurposeLogin)
	return Outcome{Route: RouteVerify, State: st}, nil
}

func (a *authService) Verification(ctx context.Context) (Outcome, error) {
	st, err := a.sessions.Pending(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if st.Kind != session.AwaitingVerification {
		return Outcome{Route: RouteSignup}, nil
	}
	return Outcome{Route: RouteVerify, State: st}, nil
}

// Verify submits the code held by draft. An incomplete draft is rejected
// locally. On a remote failure the caller is expected to clear the cells.
func (a *authService) Verify(ctx context.Context, draft otp.Draft) (Outcome, error) {
	if !draft.Complete() {
		return Outcome{}, &ValidationError{Message: MsgIncompleteCode}
	}

	pending, err := a.Verification(ctx)
	if err != nil || pending.Route != RouteVerify {
		return pending, err
	}

	if !a.verifying.CompareAndSwap(false, true) {
		return Outcome{}, ErrBusy
	}
	defer a.verifying.Store(false)

	email, purpose := pending.State.Email, pending.State.Purpose
	token, err := a.client.VerifyCode(ctx, email, draft.Code())
	if err != nil {
		a.log.Warn(ctx, "code verification failed", "email", email, "purpose", purpose, "request_id", requestID(err), "error", err)
		return Outcome{}, remoteError(err, MsgInvalidCode)
	}

	st, err := a.sessions.CompleteVerification(ctx, token)
	if err != nil {
		return Outcome{}, fmt.Errorf("verify: %w", err)
	}
	a.log.Info(ctx, "signed in", "email", email, "purpose", purpose)
	return Outcome{Route: RouteHome, State: st}, nil
}

// Resend asks for a fresh code. It may run while a Verify is in flight.
func (a *authService) Resend(ctx context.Context) (Outcome, error) {
	pending, err := a.Verification(ctx)
	if err != nil || pending.Route != RouteVerify {
		return pending, err
	}

	if !a.resending.CompareAndSwap(false, true) {
		return Outcome{}, ErrBusy
	}
	defer a.resending.Store(false)

	email := pending.State.Email
	if err := a.client.ResendCode(ctx, email); err != nil {
		a.log.Warn(ctx, "resend failed", "email", email, "request_id", requestID(err), "error", err)
		return Outcome{}, remoteError(err, MsgResendFailed)
	}

	a.log.Info(ctx, "verification code resent", "email", email, "purpose", pending.State.Purpose)
	return Outcome{Route: RouteVerify, State: pending.State, Notice: MsgCodeResent}, nil
}

func (a *authService) Home(ctx context.Context) (Outcome, error) {
	st, err := a.sessions.Session(ctx)
	if err != nil {
		return Outcome{}, err
	}
	if st.Kind != session.Authenticated {
		return Outcome{Route: RouteLogin}, nil
	}
	return Outcome{Route: RouteHome, State: st}, nil
}

func (a *authService) Logout(ctx context.Context) (Outcome, error) {
	if err := a.sessions.Logout(ctx); err != nil {
		return Outcome{}, fmt.Errorf("logout: %w", err)
	}
	a.log.Info(ctx, "logged out")
	return Outcome{Route: RouteLogin}, nil
}

// GoogleSignIn waits for the configured delay, then reports that Google
// sign-in is not available. It returns ctx.Err() if ctx ends first.
func (a *authService) GoogleSignIn(ctx context.Context) error {
	timer := time.NewTimer(a.googleDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return ctx.Err()
	}
	a.log.Debug(ctx, "google sign-in requested")
	return ErrNotImplemented
}
