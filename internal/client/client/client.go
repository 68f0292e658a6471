package client

import "context"

// Client is the authentication API.
type Client interface {
	// Signup creates an account and makes the server email a code.
	Signup(ctx context.Context, email, password string) error
	// Login checks the password and makes the server email a code.
	Login(ctx context.Context, email, password string) error
	// VerifyCode exchanges a code for an auth token.
	VerifyCode(ctx context.Context, email, code string) (string, error)
	// ResendCode issues a fresh code for email.
	ResendCode(ctx context.Context, email string) error
}
