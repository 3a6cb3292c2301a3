package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pamsentry/pam-intel/pkg/audit"
	"github.com/pamsentry/pam-intel/pkg/identity"
)

// Anomaly detection parameters.
const (
	anomalyWindowDays = 7

	unusualTimeSeverity      = 6
	unusualFrequencySeverity = 7
	unusualDurationSeverity  = 5

	// More checkouts than this by one user on one account in one day is
	// an UnusualFrequency anomaly.
	frequencyPerDayLimit = 5

	// Sessions longer than this are an UnusualDuration anomaly.
	unusualSessionDuration = 8 * time.Hour
)

// DetectAccessAnomalies scans the last seven days of checkouts and
// sessions for unusual-time, unusual-frequency, and unusual-duration
// anomalies, sorted by severity then recency. Every anomaly is returned
// with an open status. Fails open.
func (e *Engine) DetectAccessAnomalies(ctx context.Context, id *identity.Identity) []Anomaly {
	anomalies, err := e.detectAnomalies(ctx, id)
	if err != nil {
		audit.Log(audit.ComputationEvent{UserID: id.UserID, Operation: "anomaly-scan", Err: err})
		return []Anomaly{}
	}

	audit.Log(audit.AnalyticsEvent{
		UserID:      id.UserID,
		ClientIP:    id.ClientIP(),
		Operation:   "anomaly-scan",
		ResultCount: len(anomalies),
		Success:     true,
	})
	return anomalies
}

func (e *Engine) detectAnomalies(ctx context.Context, id *identity.Identity) ([]Anomaly, error) {
	safeIDs, err := e.safes.AccessibleSafes(ctx, id.UserID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	since := now.AddDate(0, 0, -anomalyWindowDays)

	checkouts, err := e.checkouts.ListBySafes(ctx, safeIDs, since)
	if err != nil {
		return nil, err
	}
	sessions, err := e.sessions.ListBySafes(ctx, safeIDs, since)
	if err != nil {
		return nil, err
	}

	anomalies := make([]Anomaly, 0)

	// UnusualTime: checkouts at hours outside 06..22.
	for _, co := range checkouts {
		hour := co.CheckedOutAt.Hour()
		if hour >= workdayStartHour && hour <= workdayEndHour {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			AnomalyID:   uuid.NewString(),
			Type:        AnomalyUnusualTime,
			AccountID:   co.AccountID,
			UserID:      co.UserID,
			OccurredAt:  co.CheckedOutAt,
			DetectedAt:  now,
			Severity:    unusualTimeSeverity,
			Description: fmt.Sprintf("checkout at %02d:00 is outside normal working hours", hour),
			Status:      AnomalyStatusOpen,
		})
	}

	// UnusualFrequency: more than frequencyPerDayLimit checkouts by one
	// user on one account in one calendar day.
	type freqKey struct {
		userID    string
		accountID string
		day       string
	}
	freq := make(map[freqKey]int)
	latest := make(map[freqKey]time.Time)
	for _, co := range checkouts {
		key := freqKey{co.UserID, co.AccountID, co.CheckedOutAt.Format("2006-01-02")}
		freq[key]++
		if co.CheckedOutAt.After(latest[key]) {
			latest[key] = co.CheckedOutAt
		}
	}
	for key, count := range freq {
		if count <= frequencyPerDayLimit {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			AnomalyID:   uuid.NewString(),
			Type:        AnomalyUnusualFrequency,
			AccountID:   key.accountID,
			UserID:      key.userID,
			OccurredAt:  latest[key],
			DetectedAt:  now,
			Severity:    unusualFrequencySeverity,
			Description: fmt.Sprintf("%d checkouts of the same account by one user on %s", count, key.day),
			Status:      AnomalyStatusOpen,
		})
	}

	// UnusualDuration: sessions running longer than eight hours.
	for _, sess := range sessions {
		end := now
		if sess.EndedAt != nil {
			end = *sess.EndedAt
		}
		length := end.Sub(sess.StartedAt)
		if length <= unusualSessionDuration {
			continue
		}
		anomalies = append(anomalies, Anomaly{
			AnomalyID:   uuid.NewString(),
			Type:        AnomalyUnusualDuration,
			AccountID:   sess.AccountID,
			UserID:      sess.UserID,
			OccurredAt:  sess.StartedAt,
			DetectedAt:  now,
			Severity:    unusualDurationSeverity,
			Description: fmt.Sprintf("session ran for %s", length.Round(time.Minute)),
			Status:      AnomalyStatusOpen,
		})
	}

	sort.SliceStable(anomalies, func(i, j int) bool {
		if anomalies[i].Severity != anomalies[j].Severity {
			return anomalies[i].Severity > anomalies[j].Severity
		}
		return anomalies[i].OccurredAt.After(anomalies[j].OccurredAt)
	})
	return anomalies, nil
}
