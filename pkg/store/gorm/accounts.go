package gorm

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pamsentry/pam-intel/pkg/model"
	"github.com/pamsentry/pam-intel/pkg/store"
)

// Ensure AccountsStore implements store.AccountsStore
var _ store.AccountsStore = (*AccountsStore)(nil)

// AccountsStore implements store.AccountsStore using GORM
type AccountsStore struct {
	db *gorm.DB
}

// NewAccountsStore creates a new AccountsStore
func NewAccountsStore(db *gorm.DB) *AccountsStore {
	return &AccountsStore{db: db}
}

// FetchAccount retrieves a single account by ID.
func (s *AccountsStore) FetchAccount(ctx context.Context, accountID string) (*model.PrivilegedAccount, error) {
	var account model.PrivilegedAccount
	tx := s.db.WithContext(ctx).Where("account_id = ?", accountID).First(&account)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrAccountNotFound
		}
		return nil, tx.Error
	}
	return &account, nil
}

// ListBySafes returns all accounts belonging to the given safes.
func (s *AccountsStore) ListBySafes(ctx context.Context, safeIDs []string) ([]model.PrivilegedAccount, error) {
	if len(safeIDs) == 0 {
		return nil, nil
	}
	var accounts []model.PrivilegedAccount
	tx := s.db.WithContext(ctx).
		Where("safe_id IN ?", safeIDs).
		Order("account_id").
		Find(&accounts)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return accounts, nil
}
