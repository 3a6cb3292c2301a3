package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/pamsentry/pam-intel/pkg/audit"
	"github.com/pamsentry/pam-intel/pkg/identity"
)

// Dormancy risk tiers, in days since last use.
const (
	dormantTierMonitor    = 30
	dormantTierReview     = 90
	dormantTierDeactivate = 180
	dormantTierMax        = 365
)

// DetectDormantAccounts reports every reachable account whose last
// activity (checkout, rotation, or creation) lies more than dormantDays
// in the past, ordered by days since last use descending. A
// non-positive dormantDays falls back to the configured default. The
// operation fails open: on an internal fault it logs and returns an
// empty collection.
func (e *Engine) DetectDormantAccounts(ctx context.Context, id *identity.Identity, dormantDays int) []DormantAccount {
	if dormantDays <= 0 {
		dormantDays = e.cfg.DormantDaysDefault
	}

	dormant, err := e.detectDormant(ctx, id, dormantDays)
	if err != nil {
		audit.Log(audit.ComputationEvent{UserID: id.UserID, Operation: "dormant-scan", Err: err})
		return []DormantAccount{}
	}

	audit.Log(audit.AnalyticsEvent{
		UserID:      id.UserID,
		ClientIP:    id.ClientIP(),
		Operation:   "dormant-scan",
		ResultCount: len(dormant),
		Success:     true,
	})
	return dormant
}

func (e *Engine) detectDormant(ctx context.Context, id *identity.Identity, dormantDays int) ([]DormantAccount, error) {
	accounts, safeIDs, err := e.reachableAccounts(ctx, id)
	if err != nil {
		return nil, err
	}

	checkouts, err := e.checkouts.ListBySafes(ctx, safeIDs, time.Time{})
	if err != nil {
		return nil, err
	}
	lastByAccount := lastCheckoutIndex(checkouts)

	now := e.now()
	dormant := make([]DormantAccount, 0)
	for i := range accounts {
		account := &accounts[i]

		var lastCheckout *time.Time
		if t, ok := lastByAccount[account.AccountID]; ok {
			lastCheckout = &t
		}

		last := lastActivity(account, lastCheckout)
		idle := daysSince(now, last)
		if idle <= dormantDays {
			continue
		}

		dormant = append(dormant, DormantAccount{
			AccountID:        account.AccountID,
			AccountName:      account.Name,
			SafeID:           account.SafeID,
			Platform:         account.Platform,
			LastActivityAt:   last,
			DaysSinceLastUse: idle,
			RiskScore:        dormantRiskScore(idle),
			Recommendation:   dormantRecommendation(idle),
		})
	}

	sort.SliceStable(dormant, func(i, j int) bool {
		return dormant[i].DaysSinceLastUse > dormant[j].DaysSinceLastUse
	})
	return dormant, nil
}

// dormantRiskScore maps idle days onto a tiered 0-100 score.
func dormantRiskScore(idleDays int) int {
	switch {
	case idleDays >= dormantTierMax:
		return 100
	case idleDays >= dormantTierDeactivate:
		return 80
	case idleDays >= dormantTierReview:
		return 60
	case idleDays >= dormantTierMonitor:
		return 40
	default:
		return 0
	}
}

func dormantRecommendation(idleDays int) string {
	switch {
	case idleDays > dormantTierDeactivate:
		return "Deactivate the account; it has not been used in over six months"
	case idleDays > dormantTierReview:
		return "Review whether the account is still required"
	default:
		return "Monitor the account for continued inactivity"
	}
}
