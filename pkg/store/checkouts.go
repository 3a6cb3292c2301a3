package store

import (
	"context"
	"time"

	"github.com/pamsentry/pam-intel/pkg/model"
)

// CheckoutsStore abstracts account-checkout reads.
type CheckoutsStore interface {
	// ListByAccount returns the account's checkouts with
	// checked_out_at >= since, newest first.
	ListByAccount(ctx context.Context, accountID string, since time.Time) ([]model.AccountCheckout, error)

	// ListBySafes returns checkouts of accounts in the given safes with
	// checked_out_at >= since, newest first.
	ListBySafes(ctx context.Context, safeIDs []string, since time.Time) ([]model.AccountCheckout, error)

	// LastCheckoutAt returns the time of the account's most recent
	// checkout, or nil if the account has never been checked out.
	LastCheckoutAt(ctx context.Context, accountID string) (*time.Time, error)
}
