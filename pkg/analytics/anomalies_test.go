package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pamsentry/pam-intel/pkg/model"
)

func TestDetectAccessAnomaliesUnusualTime(t *testing.T) {
	engine, mocks := newTestEngine(t)

	day := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	checkouts := []model.AccountCheckout{
		// 03:00 and 23:00 are outside working hours, 09:00 is not.
		{CheckoutID: "co-1", AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: day.Add(3 * time.Hour)},
		{CheckoutID: "co-2", AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: day.Add(23 * time.Hour)},
		{CheckoutID: "co-3", AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: day.Add(9 * time.Hour)},
	}

	mocks.safes.On("AccessibleSafes", mock.Anything, "u-1001").Return([]string{"safe-1"}, nil)
	mocks.checkouts.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).Return(checkouts, nil)
	mocks.sessions.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).
		Return([]model.PrivilegedSession{}, nil)

	anomalies := engine.DetectAccessAnomalies(context.Background(), testCaller())

	require.Len(t, anomalies, 2)
	for _, anomaly := range anomalies {
		assert.Equal(t, AnomalyUnusualTime, anomaly.Type)
		assert.Equal(t, unusualTimeSeverity, anomaly.Severity)
		assert.Equal(t, AnomalyStatusOpen, anomaly.Status)
		assert.NotEmpty(t, anomaly.AnomalyID)
	}
	// Equal severity sorts by recency, newest first.
	assert.Equal(t, day.Add(23*time.Hour), anomalies[0].OccurredAt)
	assert.Equal(t, day.Add(3*time.Hour), anomalies[1].OccurredAt)
}

func TestDetectAccessAnomaliesUnusualFrequency(t *testing.T) {
	engine, mocks := newTestEngine(t)

	day := time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)
	checkouts := make([]model.AccountCheckout, 0, 6)
	for i := 0; i < 6; i++ {
		checkouts = append(checkouts, model.AccountCheckout{
			AccountID:    "acct-1",
			UserID:       "u-1001",
			CheckedOutAt: day.Add(time.Duration(i) * time.Hour),
		})
	}
	// A fifth checkout by a second user on the same day is under the limit.
	for i := 0; i < 5; i++ {
		checkouts = append(checkouts, model.AccountCheckout{
			AccountID:    "acct-1",
			UserID:       "u-2002",
			CheckedOutAt: day.Add(time.Duration(i) * time.Hour),
		})
	}

	mocks.safes.On("AccessibleSafes", mock.Anything, "u-1001").Return([]string{"safe-1"}, nil)
	mocks.checkouts.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).Return(checkouts, nil)
	mocks.sessions.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).
		Return([]model.PrivilegedSession{}, nil)

	anomalies := engine.DetectAccessAnomalies(context.Background(), testCaller())

	require.Len(t, anomalies, 1)
	assert.Equal(t, AnomalyUnusualFrequency, anomalies[0].Type)
	assert.Equal(t, "u-1001", anomalies[0].UserID)
	assert.Equal(t, "acct-1", anomalies[0].AccountID)
	assert.Equal(t, unusualFrequencySeverity, anomalies[0].Severity)
	// OccurredAt is the latest checkout in the offending day.
	assert.Equal(t, day.Add(5*time.Hour), anomalies[0].OccurredAt)
}

func TestDetectAccessAnomaliesUnusualDuration(t *testing.T) {
	engine, mocks := newTestEngine(t)

	sessions := []model.PrivilegedSession{
		{
			SessionID: "sess-long",
			AccountID: "acct-1",
			UserID:    "u-1001",
			StartedAt: daysAgo(1),
			EndedAt:   timePtr(daysAgo(1).Add(9 * time.Hour)),
		},
		{
			SessionID: "sess-short",
			AccountID: "acct-1",
			UserID:    "u-1001",
			StartedAt: daysAgo(1),
			EndedAt:   timePtr(daysAgo(1).Add(time.Hour)),
		},
		{
			// Still open, started ten hours before the clock.
			SessionID: "sess-open",
			AccountID: "acct-2",
			UserID:    "u-1001",
			StartedAt: testNow.Add(-10 * time.Hour),
		},
	}

	mocks.safes.On("AccessibleSafes", mock.Anything, "u-1001").Return([]string{"safe-1"}, nil)
	mocks.checkouts.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).
		Return([]model.AccountCheckout{}, nil)
	mocks.sessions.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).Return(sessions, nil)

	anomalies := engine.DetectAccessAnomalies(context.Background(), testCaller())

	require.Len(t, anomalies, 2)
	for _, anomaly := range anomalies {
		assert.Equal(t, AnomalyUnusualDuration, anomaly.Type)
		assert.Equal(t, unusualDurationSeverity, anomaly.Severity)
	}
}

func TestDetectAccessAnomaliesSeverityOrdering(t *testing.T) {
	engine, mocks := newTestEngine(t)

	day := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	checkouts := make([]model.AccountCheckout, 0, 7)
	// One off-hours checkout plus six same-day checkouts at 09:00.
	checkouts = append(checkouts, model.AccountCheckout{
		AccountID: "acct-1", UserID: "u-1001", CheckedOutAt: day.Add(2 * time.Hour),
	})
	for i := 0; i < 6; i++ {
		checkouts = append(checkouts, model.AccountCheckout{
			AccountID:    "acct-2",
			UserID:       "u-1001",
			CheckedOutAt: day.Add(9 * time.Hour),
		})
	}
	sessions := []model.PrivilegedSession{{
		SessionID: "sess-long",
		AccountID: "acct-3",
		UserID:    "u-1001",
		StartedAt: daysAgo(2),
		EndedAt:   timePtr(daysAgo(2).Add(12 * time.Hour)),
	}}

	mocks.safes.On("AccessibleSafes", mock.Anything, "u-1001").Return([]string{"safe-1"}, nil)
	mocks.checkouts.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).Return(checkouts, nil)
	mocks.sessions.On("ListBySafes", mock.Anything, []string{"safe-1"}, mock.Anything).Return(sessions, nil)

	anomalies := engine.DetectAccessAnomalies(context.Background(), testCaller())

	require.Len(t, anomalies, 3)
	assert.Equal(t, AnomalyUnusualFrequency, anomalies[0].Type)
	assert.Equal(t, AnomalyUnusualTime, anomalies[1].Type)
	assert.Equal(t, AnomalyUnusualDuration, anomalies[2].Type)
}

func TestDetectAccessAnomaliesFailsOpen(t *testing.T) {
	engine, mocks := newTestEngine(t)

	mocks.safes.On("AccessibleSafes", mock.Anything, "u-1001").Return(nil, errExplodingStore)

	anomalies := engine.DetectAccessAnomalies(context.Background(), testCaller())

	assert.NotNil(t, anomalies)
	assert.Empty(t, anomalies)
}
