// Package client talks to the Lynq authentication API.
//
// # Overview
//
// Client is the transport-agnostic contract the services depend on:
// Signup, Login, VerifyCode and ResendCode. HTTPClient implements it with
// JSON requests against {base}/api/auth/*. Every request carries a fresh
// X-Request-ID.
//
// # Error Handling
//
// Non-2xx responses become *APIError with the status code and the "message"
// field of the body, which may be empty. A 409 matches ErrConflict via
// errors.Is. Transport failures match ErrUnavailable, and a 2xx body that
// cannot be decoded matches ErrMalformedResponse.
//
// Implementations are safe for concurrent use; all calls honor ctx.
package client
