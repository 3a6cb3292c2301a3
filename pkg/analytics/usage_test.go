package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pamsentry/pam-intel/pkg/model"
	"github.com/pamsentry/pam-intel/pkg/store"
)

func TestAnalyzeAccountUsage(t *testing.T) {
	engine, mocks := newTestEngine(t)

	account := model.PrivilegedAccount{AccountID: "acct-1", SafeID: "safe-1"}

	// Friday 2024-06-14.
	day := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	checkouts := []model.AccountCheckout{
		{AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: day.Add(9 * time.Hour)},
		{AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: day.Add(9 * time.Hour)},
		{AccountID: "acct-1", UserID: "u-2002", CheckedOutAt: day.Add(14 * time.Hour)},
		{AccountID: "acct-1", UserID: "u-3003", CheckedOutAt: day.Add(3 * time.Hour)},
	}
	sessions := []model.PrivilegedSession{
		{
			SessionID:    "sess-1",
			AccountID:    "acct-1",
			StartedAt:    day.Add(9 * time.Hour),
			EndedAt:      timePtr(day.Add(10 * time.Hour)),
			CommandCount: 12,
		},
		{
			SessionID:    "sess-2",
			AccountID:    "acct-1",
			StartedAt:    day.Add(14 * time.Hour),
			EndedAt:      timePtr(day.Add(14*time.Hour + 30*time.Minute)),
			CommandCount: 3,
		},
		{
			// Still open, excluded from the duration average.
			SessionID:    "sess-3",
			AccountID:    "acct-1",
			StartedAt:    day.Add(15 * time.Hour),
			CommandCount: 1,
		},
	}

	mocks.accounts.On("FetchAccount", mock.Anything, "acct-1").Return(&account, nil)
	mocks.safes.On("HasSafeAccess", mock.Anything, "safe-1", "u-1001", store.AccessModeRead).Return(true, nil)
	mocks.checkouts.On("ListByAccount", mock.Anything, "acct-1", mock.Anything).Return(checkouts, nil)
	mocks.sessions.On("ListByAccount", mock.Anything, "acct-1", mock.Anything).Return(sessions, nil)

	pattern, err := engine.AnalyzeAccountUsage(context.Background(), testCaller(), "acct-1", 0)

	require.NoError(t, err)
	assert.Equal(t, "acct-1", pattern.AccountID)
	assert.Equal(t, defaultUsageWindowDays, pattern.WindowDays)
	assert.Equal(t, 4, pattern.TotalCheckouts)
	assert.Equal(t, 3, pattern.TotalSessions)
	assert.Equal(t, 16, pattern.TotalCommands)
	assert.Equal(t, 45*time.Minute, pattern.AvgSessionDuration)

	assert.Equal(t, 2, pattern.CheckoutsByHour[9])
	assert.Equal(t, 1, pattern.CheckoutsByHour[14])
	assert.Equal(t, 1, pattern.CheckoutsByHour[3])
	assert.Equal(t, 4, pattern.CheckoutsByWeekday[int(time.Friday)])

	require.Len(t, pattern.TopUsers, 3)
	assert.Equal(t, UserCheckoutCount{UserID: "u-1001", Checkouts: 2}, pattern.TopUsers[0])
	// Tied counts break by user ID.
	assert.Equal(t, "u-2002", pattern.TopUsers[1].UserID)
	assert.Equal(t, "u-3003", pattern.TopUsers[2].UserID)

	// One of four checkouts off-hours is under both thresholds.
	assert.False(t, pattern.Anomalous)
	assert.Empty(t, pattern.AnomalyReasons)
}

func TestAnalyzeAccountUsageOffHoursVerdict(t *testing.T) {
	engine, mocks := newTestEngine(t)

	account := model.PrivilegedAccount{AccountID: "acct-1", SafeID: "safe-1"}
	day := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	checkouts := []model.AccountCheckout{
		{AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: day.Add(2 * time.Hour)},
		{AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: day.Add(23 * time.Hour)},
		{AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: day.Add(10 * time.Hour)},
	}

	mocks.accounts.On("FetchAccount", mock.Anything, "acct-1").Return(&account, nil)
	mocks.safes.On("HasSafeAccess", mock.Anything, "safe-1", "u-1001", store.AccessModeRead).Return(true, nil)
	mocks.checkouts.On("ListByAccount", mock.Anything, "acct-1", mock.Anything).Return(checkouts, nil)
	mocks.sessions.On("ListByAccount", mock.Anything, "acct-1", mock.Anything).
		Return([]model.PrivilegedSession{}, nil)

	pattern, err := engine.AnalyzeAccountUsage(context.Background(), testCaller(), "acct-1", 7)

	require.NoError(t, err)
	assert.Equal(t, 7, pattern.WindowDays)
	assert.True(t, pattern.Anomalous)
	require.Len(t, pattern.AnomalyReasons, 1)
	assert.Contains(t, pattern.AnomalyReasons[0], "outside 06:00-22:00")
}

func TestAnalyzeAccountUsageWeekendVerdict(t *testing.T) {
	engine, mocks := newTestEngine(t)

	account := model.PrivilegedAccount{AccountID: "acct-1", SafeID: "safe-1"}
	saturday := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	checkouts := []model.AccountCheckout{
		{AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: saturday},
		{AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: saturday.Add(time.Hour)},
		{AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: saturday.Add(2 * time.Hour)},
	}

	mocks.accounts.On("FetchAccount", mock.Anything, "acct-1").Return(&account, nil)
	mocks.safes.On("HasSafeAccess", mock.Anything, "safe-1", "u-1001", store.AccessModeRead).Return(true, nil)
	mocks.checkouts.On("ListByAccount", mock.Anything, "acct-1", mock.Anything).Return(checkouts, nil)
	mocks.sessions.On("ListByAccount", mock.Anything, "acct-1", mock.Anything).
		Return([]model.PrivilegedSession{}, nil)

	pattern, err := engine.AnalyzeAccountUsage(context.Background(), testCaller(), "acct-1", 30)

	require.NoError(t, err)
	assert.True(t, pattern.Anomalous)
	require.Len(t, pattern.AnomalyReasons, 1)
	assert.Contains(t, pattern.AnomalyReasons[0], "weekend")
}

func TestAnalyzeAccountUsageFailsClosed(t *testing.T) {
	t.Run("account not found", func(t *testing.T) {
		engine, mocks := newTestEngine(t)
		mocks.accounts.On("FetchAccount", mock.Anything, "acct-missing").
			Return(nil, store.ErrAccountNotFound)

		pattern, err := engine.AnalyzeAccountUsage(context.Background(), testCaller(), "acct-missing", 30)

		assert.Nil(t, pattern)
		assert.ErrorIs(t, err, store.ErrAccountNotFound)
	})

	t.Run("no safe access", func(t *testing.T) {
		engine, mocks := newTestEngine(t)
		account := model.PrivilegedAccount{AccountID: "acct-1", SafeID: "safe-1"}
		mocks.accounts.On("FetchAccount", mock.Anything, "acct-1").Return(&account, nil)
		mocks.safes.On("HasSafeAccess", mock.Anything, "safe-1", "u-1001", store.AccessModeRead).
			Return(false, nil)

		pattern, err := engine.AnalyzeAccountUsage(context.Background(), testCaller(), "acct-1", 30)

		assert.Nil(t, pattern)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("store error surfaces", func(t *testing.T) {
		engine, mocks := newTestEngine(t)
		account := model.PrivilegedAccount{AccountID: "acct-1", SafeID: "safe-1"}
		mocks.accounts.On("FetchAccount", mock.Anything, "acct-1").Return(&account, nil)
		mocks.safes.On("HasSafeAccess", mock.Anything, "safe-1", "u-1001", store.AccessModeRead).Return(true, nil)
		mocks.checkouts.On("ListByAccount", mock.Anything, "acct-1", mock.Anything).
			Return(nil, errExplodingStore)

		pattern, err := engine.AnalyzeAccountUsage(context.Background(), testCaller(), "acct-1", 30)

		assert.Nil(t, pattern)
		assert.ErrorIs(t, err, errExplodingStore)
	})
}
