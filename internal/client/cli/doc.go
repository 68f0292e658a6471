// Package cli provides the interactive Lynq command-line client.
//
// It drives the authentication flow from a REPL: signup or login, then
// entry of the 6-digit code sent by email, then the signed-in home view.
// Each step of the flow is a route; commands move the user between routes
// the same way the service results direct them.
//
// Key features:
//   - Signup with a live password rule checklist
//   - Login
//   - Code entry cell by cell or by pasting the whole code
//   - Resend with a short-lived confirmation notice
//   - Home view and logout
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
