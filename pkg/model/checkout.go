package model

import "time"

// Checkout status values. At most one active checkout exists per account
// at a time; the checkout subsystem enforces this.
const (
	CheckoutStatusActive    = "active"
	CheckoutStatusCheckedIn = "checked-in"
	CheckoutStatusExpired   = "expired"
)

// AccountCheckout represents a time-bounded exclusive lease of an
// account's credential to a user.
type AccountCheckout struct {
	CheckoutID       string     `gorm:"column:checkout_id;primaryKey"`
	AccountID        string     `gorm:"column:account_id;not null;index"`
	UserID           string     `gorm:"column:user_id;not null;index"`
	CheckedOutAt     time.Time  `gorm:"column:checked_out_at;not null"`
	CheckedInAt      *time.Time `gorm:"column:checked_in_at"`
	Status           string     `gorm:"column:status;not null"`
	ApprovalRequired bool       `gorm:"column:approval_required"`
	ApprovalGranted  bool       `gorm:"column:approval_granted"`
}

func (AccountCheckout) TableName() string {
	return "account_checkouts"
}

// IsActive returns true if the lease has not been checked in or expired.
func (c *AccountCheckout) IsActive() bool {
	return c.Status == CheckoutStatusActive
}

// HeldFor returns how long the checkout has been (or was) held.
func (c *AccountCheckout) HeldFor(now time.Time) time.Duration {
	if c.CheckedInAt != nil {
		return c.CheckedInAt.Sub(c.CheckedOutAt)
	}
	return now.Sub(c.CheckedOutAt)
}
