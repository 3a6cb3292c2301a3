package playback

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pamsentry/pam-intel/pkg/model"
	"github.com/pamsentry/pam-intel/pkg/store"
)

// MockAccountsStore implements store.AccountsStore for testing using testify/mock
type MockAccountsStore struct {
	mock.Mock
}

func (m *MockAccountsStore) FetchAccount(ctx context.Context, accountID string) (*model.PrivilegedAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrivilegedAccount), args.Error(1)
}

func (m *MockAccountsStore) ListBySafes(ctx context.Context, safeIDs []string) ([]model.PrivilegedAccount, error) {
	args := m.Called(ctx, safeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PrivilegedAccount), args.Error(1)
}

// MockSessionsStore implements store.SessionsStore for testing using testify/mock
type MockSessionsStore struct {
	mock.Mock
}

func (m *MockSessionsStore) FetchSession(ctx context.Context, sessionID string) (*model.PrivilegedSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PrivilegedSession), args.Error(1)
}

func (m *MockSessionsStore) ListByAccount(ctx context.Context, accountID string, since time.Time) ([]model.PrivilegedSession, error) {
	args := m.Called(ctx, accountID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PrivilegedSession), args.Error(1)
}

func (m *MockSessionsStore) ListBySafes(ctx context.Context, safeIDs []string, since time.Time) ([]model.PrivilegedSession, error) {
	args := m.Called(ctx, safeIDs, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PrivilegedSession), args.Error(1)
}

func (m *MockSessionsStore) ListVisible(ctx context.Context, userID string, safeIDs []string, filter store.SessionFilter) ([]model.PrivilegedSession, error) {
	args := m.Called(ctx, userID, safeIDs, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PrivilegedSession), args.Error(1)
}

func (m *MockSessionsStore) ListCommands(ctx context.Context, sessionID string) ([]model.SessionCommand, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SessionCommand), args.Error(1)
}

// MockSafeAccessStore implements store.SafeAccessStore for testing using testify/mock
type MockSafeAccessStore struct {
	mock.Mock
}

func (m *MockSafeAccessStore) AccessibleSafes(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSafeAccessStore) HasSafeAccess(ctx context.Context, safeID, userID, mode string) (bool, error) {
	args := m.Called(ctx, safeID, userID, mode)
	return args.Bool(0), args.Error(1)
}

var (
	_ store.AccountsStore   = (*MockAccountsStore)(nil)
	_ store.SessionsStore   = (*MockSessionsStore)(nil)
	_ store.SafeAccessStore = (*MockSafeAccessStore)(nil)
)
