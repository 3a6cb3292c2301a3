package store

import (
	"context"
	"errors"
	"time"

	"github.com/pamsentry/pam-intel/pkg/model"
)

// ErrSessionNotFound is returned when a privileged session doesn't exist.
var ErrSessionNotFound = errors.New("session not found")

// SessionFilter narrows a session listing. Zero values mean "no
// constraint"; Limit caps the number of rows returned.
type SessionFilter struct {
	AccountID string
	From      *time.Time
	To        *time.Time
	Limit     int
}

// SessionsStore abstracts recorded-session reads.
type SessionsStore interface {
	// FetchSession retrieves a single session by ID.
	// Returns ErrSessionNotFound if the session doesn't exist.
	FetchSession(ctx context.Context, sessionID string) (*model.PrivilegedSession, error)

	// ListByAccount returns the account's sessions with
	// started_at >= since, newest first.
	ListByAccount(ctx context.Context, accountID string, since time.Time) ([]model.PrivilegedSession, error)

	// ListBySafes returns sessions on accounts in the given safes with
	// started_at >= since, newest first.
	ListBySafes(ctx context.Context, safeIDs []string, since time.Time) ([]model.PrivilegedSession, error)

	// ListVisible returns sessions either owned by the user or on
	// accounts in the given safes, filtered and newest first.
	ListVisible(ctx context.Context, userID string, safeIDs []string, filter SessionFilter) ([]model.PrivilegedSession, error)

	// ListCommands returns the session's recorded commands ordered by
	// sequence number ascending.
	ListCommands(ctx context.Context, sessionID string) ([]model.SessionCommand, error)
}
