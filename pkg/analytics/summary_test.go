package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pamsentry/pam-intel/pkg/model"
)

func TestGetAnalyticsSummary(t *testing.T) {
	engine, mocks := newTestEngine(t)

	accounts := []model.PrivilegedAccount{
		{AccountID: "acct-1", SafeID: "safe-1", Platform: "windows", Username: "svc", CreatedAt: daysAgo(10), RequiresMFA: true, RequiresDualApproval: true, LastRotatedAt: timePtr(daysAgo(5))},
		{AccountID: "acct-2", SafeID: "safe-1", Platform: "windows", Username: "svc", CreatedAt: daysAgo(10), RequiresMFA: true, RequiresDualApproval: true, LastRotatedAt: timePtr(daysAgo(5))},
	}

	mocks.safes.On("AccessibleSafes", mock.Anything, "u-1001").Return([]string{"safe-1"}, nil)
	mocks.accounts.On("ListBySafes", mock.Anything, []string{"safe-1"}).Return(accounts, nil)
	mocks.checkouts.On("LastCheckoutAt", mock.Anything, mock.Anything).Return(timePtr(daysAgo(1)), nil)
	mocks.checkouts.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).
		Return([]model.AccountCheckout{
			{AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: daysAgo(1), Status: model.CheckoutStatusCheckedIn, ApprovalRequired: true, ApprovalGranted: true},
		}, nil)
	mocks.sessions.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).
		Return([]model.PrivilegedSession{}, nil)

	summary := engine.GetAnalyticsSummary(context.Background(), testCaller())

	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.TotalAccounts)
	assert.Equal(t, 2, summary.SampledAccounts)
	assert.Equal(t, testNow, summary.GeneratedAt)

	// Both accounts are recently used and fully controlled; the only
	// factor left is the platform privilege score.
	assert.Equal(t, 5.0, summary.AverageRiskScore)

	assert.Empty(t, summary.DormantAccounts)
	assert.Empty(t, summary.OverPrivileged)
	assert.Empty(t, summary.HighRiskAccounts)
	assert.Empty(t, summary.Anomalies)
	assert.Empty(t, summary.Violations)
	assert.Equal(t, 2, summary.Dashboard.TotalAccounts)
	assert.Equal(t, 100, summary.Dashboard.ComplianceScore)
}

func TestGetAnalyticsSummarySampleCap(t *testing.T) {
	engine, mocks := newTestEngine(t)
	engine.cfg.SummarySampleCap = 3

	accounts := make([]model.PrivilegedAccount, 5)
	for i := range accounts {
		accounts[i] = model.PrivilegedAccount{
			AccountID: "acct-" + string(rune('a'+i)),
			SafeID:    "safe-1",
			Platform:  "windows",
			CreatedAt: daysAgo(10),
		}
	}

	mocks.safes.On("AccessibleSafes", mock.Anything, "u-1001").Return([]string{"safe-1"}, nil)
	mocks.accounts.On("ListBySafes", mock.Anything, []string{"safe-1"}).Return(accounts, nil)
	mocks.checkouts.On("LastCheckoutAt", mock.Anything, mock.Anything).Return(timePtr(daysAgo(1)), nil)
	mocks.checkouts.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).
		Return([]model.AccountCheckout{}, nil)
	mocks.sessions.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).
		Return([]model.PrivilegedSession{}, nil)

	summary := engine.GetAnalyticsSummary(context.Background(), testCaller())

	require.NotNil(t, summary)
	assert.Equal(t, 5, summary.TotalAccounts)
	assert.Equal(t, 3, summary.SampledAccounts)
	// Only the sampled accounts are scored.
	mocks.checkouts.AssertNumberOfCalls(t, "LastCheckoutAt", 3)
}

func TestGetAnalyticsSummaryFailsOpen(t *testing.T) {
	t.Run("listing fails", func(t *testing.T) {
		engine, mocks := newTestEngine(t)
		mocks.safes.On("AccessibleSafes", mock.Anything, "u-1001").Return(nil, errExplodingStore)

		summary := engine.GetAnalyticsSummary(context.Background(), testCaller())

		require.NotNil(t, summary)
		assert.Equal(t, 0, summary.TotalAccounts)
		assert.Equal(t, 0.0, summary.AverageRiskScore)
	})

	t.Run("scoring fails", func(t *testing.T) {
		engine, mocks := newTestEngine(t)
		accounts := []model.PrivilegedAccount{{AccountID: "acct-1", SafeID: "safe-1", Platform: "windows", CreatedAt: daysAgo(10)}}
		mocks.safes.On("AccessibleSafes", mock.Anything, "u-1001").Return([]string{"safe-1"}, nil)
		mocks.accounts.On("ListBySafes", mock.Anything, []string{"safe-1"}).Return(accounts, nil)
		mocks.checkouts.On("LastCheckoutAt", mock.Anything, "acct-1").Return(nil, errExplodingStore)

		summary := engine.GetAnalyticsSummary(context.Background(), testCaller())

		require.NotNil(t, summary)
		assert.Equal(t, 0, summary.TotalAccounts)
	})
}
