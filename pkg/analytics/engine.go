package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/pamsentry/pam-intel/pkg/config"
	"github.com/pamsentry/pam-intel/pkg/identity"
	"github.com/pamsentry/pam-intel/pkg/model"
	"github.com/pamsentry/pam-intel/pkg/store"
)

// ErrAccessDenied is returned when the caller lacks read access to the
// safe containing the requested account.
var ErrAccessDenied = errors.New("access denied")

// Engine computes risk signal over the privileged-access history. It is
// stateless: it holds only collaborator references and may be shared by
// arbitrarily many concurrent callers.
type Engine struct {
	accounts  store.AccountsStore
	checkouts store.CheckoutsStore
	sessions  store.SessionsStore
	safes     store.SafeAccessStore
	cfg       *config.Config

	now func() time.Time
}

// NewEngine creates an analytics engine over the given stores. A nil
// cfg falls back to the global configuration.
func NewEngine(
	accounts store.AccountsStore,
	checkouts store.CheckoutsStore,
	sessions store.SessionsStore,
	safes store.SafeAccessStore,
	cfg *config.Config,
) *Engine {
	if cfg == nil {
		cfg = config.Get()
	}
	return &Engine{
		accounts:  accounts,
		checkouts: checkouts,
		sessions:  sessions,
		safes:     safes,
		cfg:       cfg,
		now:       time.Now,
	}
}

// reachableAccounts lists every account in a safe the caller may read,
// along with the safe identifiers themselves.
func (e *Engine) reachableAccounts(ctx context.Context, id *identity.Identity) ([]model.PrivilegedAccount, []string, error) {
	safeIDs, err := e.safes.AccessibleSafes(ctx, id.UserID)
	if err != nil {
		return nil, nil, err
	}
	accounts, err := e.accounts.ListBySafes(ctx, safeIDs)
	if err != nil {
		return nil, nil, err
	}
	return accounts, safeIDs, nil
}

// gatedAccount fetches one account and verifies the caller holds read
// access on its safe.
func (e *Engine) gatedAccount(ctx context.Context, id *identity.Identity, accountID string) (*model.PrivilegedAccount, error) {
	account, err := e.accounts.FetchAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	ok, err := e.safes.HasSafeAccess(ctx, account.SafeID, id.UserID, store.AccessModeRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrAccessDenied
	}
	return account, nil
}

// lastCheckoutIndex maps each account to its most recent checkout time.
// The input is newest-first, so the first occurrence wins.
func lastCheckoutIndex(checkouts []model.AccountCheckout) map[string]time.Time {
	index := make(map[string]time.Time, len(checkouts))
	for _, co := range checkouts {
		if _, seen := index[co.AccountID]; !seen {
			index[co.AccountID] = co.CheckedOutAt
		}
	}
	return index
}

// lastActivity computes max(lastCheckout, lastRotation, createdAt).
func lastActivity(account *model.PrivilegedAccount, lastCheckout *time.Time) time.Time {
	last := account.CreatedAt
	if account.LastRotatedAt != nil && account.LastRotatedAt.After(last) {
		last = *account.LastRotatedAt
	}
	if lastCheckout != nil && lastCheckout.After(last) {
		last = *lastCheckout
	}
	return last
}

func daysSince(now, t time.Time) int {
	if !now.After(t) {
		return 0
	}
	return int(now.Sub(t).Hours() / 24)
}
