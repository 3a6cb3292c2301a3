package store

import (
	"context"
	"errors"

	"github.com/pamsentry/pam-intel/pkg/model"
)

// ErrAccountNotFound is returned when a privileged account doesn't exist.
var ErrAccountNotFound = errors.New("account not found")

// AccountsStore abstracts privileged-account reads.
type AccountsStore interface {
	// FetchAccount retrieves a single account by ID.
	// Returns ErrAccountNotFound if the account doesn't exist.
	FetchAccount(ctx context.Context, accountID string) (*model.PrivilegedAccount, error)

	// ListBySafes returns all accounts belonging to the given safes.
	ListBySafes(ctx context.Context, safeIDs []string) ([]model.PrivilegedAccount, error)
}
