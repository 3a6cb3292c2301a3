package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pamsentry/pam-intel/pkg/model"
)

func TestComplianceScoreClamped(t *testing.T) {
	// Zero accounts can't be penalized.
	assert.Equal(t, 100, complianceScore(0, 0, 0, 0, 0, 0))

	// Every account missing every control pushes below zero; clamp.
	assert.Equal(t, 0, complianceScore(10, 10, 10, 10, 10, 10))

	// Half missing MFA, all missing approval, nothing else:
	// 100 - (5*30/10) - (10*20/10) = 65.
	assert.Equal(t, 65, complianceScore(10, 5, 10, 0, 0, 0))
}

func TestGetComplianceDashboard(t *testing.T) {
	engine, mocks := newTestEngine(t)

	// Ten accounts: five with MFA, none with dual approval, none
	// dormant, rotation-expired, or high-risk.
	accounts := make([]model.PrivilegedAccount, 0, 10)
	checkouts := make([]model.AccountCheckout, 0, 10)
	for i := 0; i < 10; i++ {
		accountID := string(rune('a'+i)) + "-acct"
		accounts = append(accounts, model.PrivilegedAccount{
			AccountID:   accountID,
			SafeID:      "safe-1",
			Username:    "svc",
			Platform:    "windows",
			CreatedAt:   daysAgo(30),
			RequiresMFA: i < 5,
		})
		checkouts = append(checkouts, model.AccountCheckout{
			AccountID:    accountID,
			UserID:       "u-1001",
			CheckedOutAt: daysAgo(1),
			Status:       model.CheckoutStatusCheckedIn,
		})
	}

	mocks.safes.On("AccessibleSafes", mock.Anything, "u-1001").Return([]string{"safe-1"}, nil)
	mocks.accounts.On("ListBySafes", mock.Anything, []string{"safe-1"}).Return(accounts, nil)
	mocks.checkouts.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).Return(checkouts, nil)
	mocks.sessions.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).
		Return([]model.PrivilegedSession{}, nil)

	dashboard := engine.GetComplianceDashboard(context.Background(), testCaller())

	require.NotNil(t, dashboard)
	assert.Equal(t, 10, dashboard.TotalAccounts)
	assert.Equal(t, 5, dashboard.MFACovered)
	assert.Equal(t, 0, dashboard.ApprovalCovered)
	assert.Equal(t, 0, dashboard.DormantCount)
	assert.Equal(t, 0, dashboard.RotationExpiredCount)
	assert.Equal(t, 0, dashboard.HighRiskCount)
	assert.Equal(t, 65, dashboard.ComplianceScore)

	// Top violations ranked by count: missing approval (10) first.
	require.NotEmpty(t, dashboard.TopViolations)
	assert.Equal(t, "missing-dual-approval", dashboard.TopViolations[0].Name)
	assert.Equal(t, 10, dashboard.TopViolations[0].Count)
}

func TestGetComplianceDashboardNoAccounts(t *testing.T) {
	engine, mocks := newTestEngine(t)

	mocks.safes.On("AccessibleSafes", mock.Anything, "u-1001").Return([]string{}, nil)
	mocks.accounts.On("ListBySafes", mock.Anything, []string{}).Return([]model.PrivilegedAccount{}, nil)
	mocks.checkouts.On("ListBySafes", mock.Anything, []string{}, mock.Anything).Return([]model.AccountCheckout{}, nil)
	mocks.sessions.On("ListBySafes", mock.Anything, []string{}, mock.Anything).Return([]model.PrivilegedSession{}, nil)

	dashboard := engine.GetComplianceDashboard(context.Background(), testCaller())

	require.NotNil(t, dashboard)
	assert.Equal(t, 0, dashboard.TotalAccounts)
	assert.Equal(t, 100, dashboard.ComplianceScore)
	assert.Empty(t, dashboard.TopViolations)
}

func TestGetComplianceDashboardFailsOpen(t *testing.T) {
	engine, mocks := newTestEngine(t)

	mocks.safes.On("AccessibleSafes", mock.Anything, "u-1001").Return(nil, errExplodingStore)

	dashboard := engine.GetComplianceDashboard(context.Background(), testCaller())

	require.NotNil(t, dashboard)
	assert.Equal(t, 100, dashboard.ComplianceScore)
	assert.Equal(t, 0, dashboard.TotalAccounts)
}
