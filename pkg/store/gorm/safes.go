package gorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/pamsentry/pam-intel/pkg/model"
	"github.com/pamsentry/pam-intel/pkg/store"
)

// Ensure SafeAccessStore implements store.SafeAccessStore
var _ store.SafeAccessStore = (*SafeAccessStore)(nil)

// SafeAccessStore implements store.SafeAccessStore using GORM
type SafeAccessStore struct {
	db *gorm.DB
}

// NewSafeAccessStore creates a new SafeAccessStore
func NewSafeAccessStore(db *gorm.DB) *SafeAccessStore {
	return &SafeAccessStore{db: db}
}

// AccessibleSafes returns the identifiers of all safes the user may read.
func (s *SafeAccessStore) AccessibleSafes(ctx context.Context, userID string) ([]string, error) {
	var safeIDs []string
	tx := s.db.WithContext(ctx).
		Model(&model.SafePermission{}).
		Where("user_id = ? AND access_mode IN ?", userID, []string{store.AccessModeRead, store.AccessModeManage}).
		Distinct().
		Pluck("safe_id", &safeIDs)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return safeIDs, nil
}

// HasSafeAccess checks whether the user holds the given access mode on a safe.
func (s *SafeAccessStore) HasSafeAccess(ctx context.Context, safeID, userID, mode string) (bool, error) {
	var count int64
	tx := s.db.WithContext(ctx).
		Model(&model.SafePermission{}).
		Where("safe_id = ? AND user_id = ? AND access_mode = ?", safeID, userID, mode).
		Count(&count)
	if tx.Error != nil {
		return false, tx.Error
	}
	return count > 0, nil
}
