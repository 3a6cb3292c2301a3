package gorm

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pamsentry/pam-intel/pkg/model"
	"github.com/pamsentry/pam-intel/pkg/store"
)

// Ensure SessionsStore implements store.SessionsStore
var _ store.SessionsStore = (*SessionsStore)(nil)

// SessionsStore implements store.SessionsStore using GORM
type SessionsStore struct {
	db *gorm.DB
}

// NewSessionsStore creates a new SessionsStore
func NewSessionsStore(db *gorm.DB) *SessionsStore {
	return &SessionsStore{db: db}
}

// FetchSession retrieves a single session by ID.
func (s *SessionsStore) FetchSession(ctx context.Context, sessionID string) (*model.PrivilegedSession, error) {
	var session model.PrivilegedSession
	tx := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&session)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrSessionNotFound
		}
		return nil, tx.Error
	}
	return &session, nil
}

// ListByAccount returns the account's sessions since the given time,
// newest first.
func (s *SessionsStore) ListByAccount(ctx context.Context, accountID string, since time.Time) ([]model.PrivilegedSession, error) {
	var sessions []model.PrivilegedSession
	tx := s.db.WithContext(ctx).
		Where("account_id = ? AND started_at >= ?", accountID, since).
		Order("started_at desc").
		Find(&sessions)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return sessions, nil
}

// ListBySafes returns sessions on accounts in the given safes since the
// given time, newest first.
func (s *SessionsStore) ListBySafes(ctx context.Context, safeIDs []string, since time.Time) ([]model.PrivilegedSession, error) {
	if len(safeIDs) == 0 {
		return nil, nil
	}
	var sessions []model.PrivilegedSession
	tx := s.db.WithContext(ctx).
		Joins("JOIN privileged_accounts ON privileged_accounts.account_id = privileged_sessions.account_id").
		Where("privileged_accounts.safe_id IN ? AND privileged_sessions.started_at >= ?", safeIDs, since).
		Order("privileged_sessions.started_at desc").
		Find(&sessions)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return sessions, nil
}

// ListVisible returns sessions either owned by the user or on accounts
// in the given safes, filtered and newest first.
func (s *SessionsStore) ListVisible(ctx context.Context, userID string, safeIDs []string, filter store.SessionFilter) ([]model.PrivilegedSession, error) {
	query := s.db.WithContext(ctx).Model(&model.PrivilegedSession{})

	if len(safeIDs) > 0 {
		query = query.
			Joins("LEFT JOIN privileged_accounts ON privileged_accounts.account_id = privileged_sessions.account_id").
			Where("privileged_sessions.user_id = ? OR privileged_accounts.safe_id IN ?", userID, safeIDs)
	} else {
		query = query.Where("privileged_sessions.user_id = ?", userID)
	}

	if filter.AccountID != "" {
		query = query.Where("privileged_sessions.account_id = ?", filter.AccountID)
	}
	if filter.From != nil {
		query = query.Where("privileged_sessions.started_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("privileged_sessions.started_at <= ?", *filter.To)
	}

	query = query.Order("privileged_sessions.started_at desc")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var sessions []model.PrivilegedSession
	if tx := query.Find(&sessions); tx.Error != nil {
		return nil, tx.Error
	}
	return sessions, nil
}

// ListCommands returns the session's recorded commands ordered by
// sequence number ascending.
func (s *SessionsStore) ListCommands(ctx context.Context, sessionID string) ([]model.SessionCommand, error) {
	var commands []model.SessionCommand
	tx := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("sequence_number asc").
		Find(&commands)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return commands, nil
}
