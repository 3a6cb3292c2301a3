package store

import "context"

// Safe access modes.
const (
	AccessModeRead   = "read"
	AccessModeUse    = "use"
	AccessModeManage = "manage"
)

// SafeAccessStore abstracts safe-level access resolution. It answers
// "which safes can this user read?" and is the authorization gate for
// every analytics and playback operation.
type SafeAccessStore interface {
	// AccessibleSafes returns the identifiers of all safes the user may
	// read.
	AccessibleSafes(ctx context.Context, userID string) ([]string, error)

	// HasSafeAccess checks whether the user holds the given access mode
	// on a safe.
	HasSafeAccess(ctx context.Context, safeID, userID, mode string) (bool, error)
}
