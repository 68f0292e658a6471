// Package session holds the explicit authentication state machine:
//
//	Anonymous --BeginVerification--> AwaitingVerification{email, purpose}
//	AwaitingVerification --CompleteVerification--> Authenticated{token, email}
//	Authenticated --Logout--> Anonymous
//
// Pending verification lives in the session-scope store; the authenticated
// session lives in the persistent-scope store.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lynq-cli/internal/client/storage"
	"github.com/dmitrijs2005/lynq-cli/internal/common"
)

// Purpose says why a code is being verified.
type Purpose string

const (
	PurposeSignup Purpose = "signup"
	PurposeLogin  Purpose = "login"
)

// ParsePurpose maps a stored value to a Purpose. Anything other than "login"
// is treated as signup.
func ParsePurpose(s string) Purpose {
	if Purpose(s) == PurposeLogin {
		return PurposeLogin
	}
	return PurposeSignup
}

// Kind discriminates State.
type Kind int

const (
	Anonymous Kind = iota
	AwaitingVerification
	Authenticated
)

func (k Kind) String() string {
	switch k {
	case AwaitingVerification:
		return "awaiting-verification"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// State is a tagged union. Email and Purpose are set for
// AwaitingVerification; Token and Email for Authenticated.
type State struct {
	Kind    Kind
	Email   string
	Purpose Purpose
	Token   string
}

var ErrNoPendingVerification = errors.New("no pending verification")

// Manager reads and writes State through the two stores.
type Manager struct {
	session    storage.Store
	persistent storage.Store
}

func NewManager(session, persistent storage.Store) *Manager {
	return &Manager{session: session, persistent: persistent}
}

func get(ctx context.Context, s storage.Store, key string) (string, bool, error) {
	v, err := s.Get(ctx, key)
	if errors.Is(err, common.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// Pending returns AwaitingVerification when a pending email is stored and
// Anonymous otherwise.
func (m *Manager) Pending(ctx context.Context) (State, error) {
	email, ok, err := get(ctx, m.session, storage.KeyVerificationEmail)
	if err != nil {
		return State{}, fmt.Errorf("read pending email: %w", err)
	}
	if !ok || email == "" {
		return State{Kind: Anonymous}, nil
	}

	purpose, _, err := get(ctx, m.session, storage.KeyVerificationType)
	if err != nil {
		return State{}, fmt.Errorf("read pending purpose: %w", err)
	}
	return State{Kind: AwaitingVerification, Email: email, Purpose: ParsePurpose(purpose)}, nil
}

// Session returns Authenticated when a token is stored and Anonymous
// otherwise. No expiry or signature check is made.
func (m *Manager) Session(ctx context.Context) (State, error) {
	token, ok, err := get(ctx, m.persistent, storage.KeyAuthToken)
	if err != nil {
		return State{}, fmt.Errorf("read token: %w", err)
	}
	if !ok || token == "" {
		return State{Kind: Anonymous}, nil
	}

	email, _, err := get(ctx, m.persistent, storage.KeyUserEmail)
	if err != nil {
		return State{}, fmt.Errorf("read user email: %w", err)
	}
	return State{Kind: Authenticated, Token: token, Email: email}, nil
}

// Current prefers an authenticated session over a pending verification.
func (m *Manager) Current(ctx context.Context) (State, error) {
	st, err := m.Session(ctx)
	if err != nil || st.Kind == Authenticated {
		return st, err
	}
	return m.Pending(ctx)
}

// BeginVerification records the email awaiting a code and why.
func (m *Manager) BeginVerification(ctx context.Context, email string, purpose Purpose) (State, error) {
	err := storage.Batch(ctx, m.session, func(ctx context.Context, s storage.Store) error {
		if err := s.Set(ctx, storage.KeyVerificationEmail, email); err != nil {
			return err
		}
		return s.Set(ctx, storage.KeyVerificationType, string(purpose))
	})
	if err != nil {
		return State{}, fmt.Errorf("save pending verification: %w", err)
	}
	return State{Kind: AwaitingVerification, Email: email, Purpose: purpose}, nil
}

// CompleteVerification persists the session for the pending email and then
// drops the pending verification.
func (m *Manager) CompleteVerification(ctx context.Context, token string) (State, error) {
	pending, err := m.Pending(ctx)
	if err != nil {
		return State{}, err
	}
	if pending.Kind != AwaitingVerification {
		return State{}, ErrNoPendingVerification
	}

	err = storage.Batch(ctx, m.persistent, func(ctx context.Context, s storage.Store) error {
		if err := s.Set(ctx, storage.KeyAuthToken, token); err != nil {
			return err
		}
		return s.Set(ctx, storage.KeyUserEmail, pending.Email)
	})
	if err != nil {
		return State{}, fmt.Errorf("save session: %w", err)
	}

	if err := m.clearPending(ctx); err != nil {
		return State{}, err
	}
	return State{Kind: Authenticated, Token: token, Email: pending.Email}, nil
}

// AbandonVerification drops the pending verification, if any.
func (m *Manager) AbandonVerification(ctx context.Context) error {
	return m.clearPending(ctx)
}

func (m *Manager) clearPending(ctx context.Context) error {
	err := storage.Batch(ctx, m.session, func(ctx context.Context, s storage.Store) error {
		if err := s.Delete(ctx, storage.KeyVerificationEmail); err != nil {
			return err
		}
		return s.Delete(ctx, storage.KeyVerificationType)
	})
	if err != nil {
		return fmt.Errorf("clear pending verification: %w", err)
	}
	return nil
}

// Logout removes the token and the email from the persistent scope.
func (m *Manager) Logout(ctx context.Context) error {
	err := storage.Batch(ctx, m.persistent, func(ctx context.Context, s storage.Store) error {
		if err := s.Delete(ctx, storage.KeyAuthToken); err != nil {
			return err
		}
		return s.Delete(ctx, storage.KeyUserEmail)
	})
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
