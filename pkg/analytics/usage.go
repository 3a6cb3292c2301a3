package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pamsentry/pam-intel/pkg/audit"
	"github.com/pamsentry/pam-intel/pkg/identity"
)

// Off-hours boundaries for the usage anomaly verdict: checkouts outside
// 06:00-22:00 count as off-hours.
const (
	workdayStartHour = 6
	workdayEndHour   = 22
)

const defaultUsageWindowDays = 30

// AnalyzeAccountUsage aggregates the account's checkouts, sessions, and
// commands over the window into hourly/weekday histograms, top users,
// and an anomaly verdict. Fails closed: the caller receives
// store.ErrAccountNotFound or ErrAccessDenied.
func (e *Engine) AnalyzeAccountUsage(ctx context.Context, id *identity.Identity, accountID string, days int) (*UsagePattern, error) {
	account, err := e.gatedAccount(ctx, id, accountID)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = defaultUsageWindowDays
	}

	since := e.now().AddDate(0, 0, -days)
	checkouts, err := e.checkouts.ListByAccount(ctx, account.AccountID, since)
	if err != nil {
		return nil, err
	}
	sessions, err := e.sessions.ListByAccount(ctx, account.AccountID, since)
	if err != nil {
		return nil, err
	}

	pattern := &UsagePattern{
		AccountID:      account.AccountID,
		WindowDays:     days,
		TotalCheckouts: len(checkouts),
		TotalSessions:  len(sessions),
	}

	byUser := make(map[string]int)
	offHours := 0
	weekend := 0
	for _, co := range checkouts {
		hour := co.CheckedOutAt.Hour()
		weekday := co.CheckedOutAt.Weekday()

		pattern.CheckoutsByHour[hour]++
		pattern.CheckoutsByWeekday[int(weekday)]++
		byUser[co.UserID]++

		if hour < workdayStartHour || hour >= workdayEndHour {
			offHours++
		}
		if weekday == time.Saturday || weekday == time.Sunday {
			weekend++
		}
	}

	var totalDuration time.Duration
	closedSessions := 0
	for _, sess := range sessions {
		pattern.TotalCommands += sess.CommandCount
		if sess.EndedAt != nil {
			totalDuration += sess.Duration()
			closedSessions++
		}
	}
	if closedSessions > 0 {
		pattern.AvgSessionDuration = totalDuration / time.Duration(closedSessions)
	}

	pattern.TopUsers = topCheckoutUsers(byUser, 5)

	if len(checkouts) > 0 {
		if offHours*2 > len(checkouts) {
			pattern.Anomalous = true
			pattern.AnomalyReasons = append(pattern.AnomalyReasons,
				fmt.Sprintf("%d of %d checkouts fall outside 06:00-22:00", offHours, len(checkouts)))
		}
		if weekend*10 > len(checkouts)*7 {
			pattern.Anomalous = true
			pattern.AnomalyReasons = append(pattern.AnomalyReasons,
				fmt.Sprintf("%d of %d checkouts fall on a weekend", weekend, len(checkouts)))
		}
	}

	audit.Log(audit.AnalyticsEvent{
		UserID:      id.UserID,
		ClientIP:    id.ClientIP(),
		Operation:   "usage-analysis",
		AccountID:   account.AccountID,
		ResultCount: pattern.TotalCheckouts,
		Success:     true,
	})
	return pattern, nil
}

// topCheckoutUsers returns the n heaviest users by checkout count,
// breaking ties by user ID for determinism.
func topCheckoutUsers(byUser map[string]int, n int) []UserCheckoutCount {
	top := make([]UserCheckoutCount, 0, len(byUser))
	for userID, count := range byUser {
		top = append(top, UserCheckoutCount{UserID: userID, Checkouts: count})
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Checkouts != top[j].Checkouts {
			return top[i].Checkouts > top[j].Checkouts
		}
		return top[i].UserID < top[j].UserID
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}
