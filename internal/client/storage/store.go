// Package storage provides the two key/value scopes the auth flow keeps its
// state in.
//
// The session scope lives as long as the process, like a browser tab's
// sessionStorage; MemoryStore implements it. The persistent scope survives
// restarts, like localStorage; SQLiteStore implements it on top of a local
// sqlite file.
//
// Writers are assumed to be single; readers may be many. Last writer wins.
package storage

import (
	"context"
)

// Session-scope keys.
const (
	KeyVerificationEmail = "verificationEmail"
	KeyVerificationType  = "verificationType"
)

// Persistent-scope keys.
const (
	KeyAuthToken = "authToken"
	KeyUserEmail = "userEmail"
)

// Store is a string key/value store. Get returns common.ErrNotFound for an
// absent key. Delete of an absent key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Batcher is implemented by stores that can apply several writes atomically.
type Batcher interface {
	Batch(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

// Batch runs fn atomically when s supports it, and directly otherwise.
func Batch(ctx context.Context, s Store, fn func(ctx context.Context, s Store) error) error {
	if b, ok := s.(Batcher); ok {
		return b.Batch(ctx, fn)
	}
	return fn(ctx, s)
}
