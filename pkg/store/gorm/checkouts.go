package gorm

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pamsentry/pam-intel/pkg/model"
	"github.com/pamsentry/pam-intel/pkg/store"
)

// Ensure CheckoutsStore implements store.CheckoutsStore
var _ store.CheckoutsStore = (*CheckoutsStore)(nil)

// CheckoutsStore implements store.CheckoutsStore using GORM
type CheckoutsStore struct {
	db *gorm.DB
}

// NewCheckoutsStore creates a new CheckoutsStore
func NewCheckoutsStore(db *gorm.DB) *CheckoutsStore {
	return &CheckoutsStore{db: db}
}

// ListByAccount returns the account's checkouts since the given time,
// newest first.
func (s *CheckoutsStore) ListByAccount(ctx context.Context, accountID string, since time.Time) ([]model.AccountCheckout, error) {
	var checkouts []model.AccountCheckout
	tx := s.db.WithContext(ctx).
		Where("account_id = ? AND checked_out_at >= ?", accountID, since).
		Order("checked_out_at desc").
		Find(&checkouts)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return checkouts, nil
}

// ListBySafes returns checkouts of accounts in the given safes since the
// given time, newest first.
func (s *CheckoutsStore) ListBySafes(ctx context.Context, safeIDs []string, since time.Time) ([]model.AccountCheckout, error) {
	if len(safeIDs) == 0 {
		return nil, nil
	}
	var checkouts []model.AccountCheckout
	tx := s.db.WithContext(ctx).
		Joins("JOIN privileged_accounts ON privileged_accounts.account_id = account_checkouts.account_id").
		Where("privileged_accounts.safe_id IN ? AND account_checkouts.checked_out_at >= ?", safeIDs, since).
		Order("account_checkouts.checked_out_at desc").
		Find(&checkouts)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return checkouts, nil
}

// LastCheckoutAt returns the time of the account's most recent checkout.
func (s *CheckoutsStore) LastCheckoutAt(ctx context.Context, accountID string) (*time.Time, error) {
	var last *time.Time
	tx := s.db.WithContext(ctx).
		Model(&model.AccountCheckout{}).
		Where("account_id = ?", accountID).
		Select("MAX(checked_out_at)").
		Scan(&last)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return last, nil
}
