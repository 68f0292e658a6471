// Package common holds small pieces shared by every layer of the client:
// sentinel errors matched with errors.Is and memory hygiene helpers.
package common

import "errors"

var (
	// ErrNotFound is returned by stores when a key is absent.
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken is returned when an auth token cannot be decoded.
	ErrInvalidToken = errors.New("invalid token")
)
