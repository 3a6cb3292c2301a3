package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/pamsentry/pam-intel/pkg/audit"
	"github.com/pamsentry/pam-intel/pkg/identity"
)

// Compliance penalty weights, applied proportionally to the share of
// accounts missing each control.
const (
	penaltyMissingMFA      = 30
	penaltyMissingApproval = 20
	penaltyDormant         = 15
	penaltyRotationExpired = 20
	penaltyHighRisk        = 15
)

// GetComplianceDashboard assembles control-coverage counts across all
// reachable accounts into a single 0-100 compliance score. Zero
// reachable accounts score a clean 100. Fails open to a zero-value
// dashboard with score 100.
func (e *Engine) GetComplianceDashboard(ctx context.Context, id *identity.Identity) *ComplianceDashboard {
	dashboard, err := e.complianceDashboard(ctx, id)
	if err != nil {
		audit.Log(audit.ComputationEvent{UserID: id.UserID, Operation: "compliance-dashboard", Err: err})
		return &ComplianceDashboard{ComplianceScore: 100, GeneratedAt: e.now()}
	}

	audit.Log(audit.AnalyticsEvent{
		UserID:      id.UserID,
		ClientIP:    id.ClientIP(),
		Operation:   "compliance-dashboard",
		ResultCount: dashboard.TotalAccounts,
		Success:     true,
	})
	return dashboard
}

func (e *Engine) complianceDashboard(ctx context.Context, id *identity.Identity) (*ComplianceDashboard, error) {
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
	dashboard := &ComplianceDashboard{
		TotalAccounts: len(accounts),
		GeneratedAt:   now,
	}

	for i := range accounts {
		account := &accounts[i]

		if account.RequiresMFA {
			dashboard.MFACovered++
		}
		if account.RequiresDualApproval {
			dashboard.ApprovalCovered++
		}
		if account.RotationOverdue(now) {
			dashboard.RotationExpiredCount++
		}

		var lastCheckout *time.Time
		if t, ok := lastByAccount[account.AccountID]; ok {
			lastCheckout = &t
		}
		if daysSince(now, lastActivity(account, lastCheckout)) > e.cfg.DormantDaysDefault {
			dashboard.DormantCount++
		}
		if e.scoreAccount(account, lastCheckout).Total >= e.cfg.HighRiskThreshold {
			dashboard.HighRiskCount++
		}
	}

	dashboard.OpenAnomalies = len(e.DetectAccessAnomalies(ctx, id))

	missingMFA := dashboard.TotalAccounts - dashboard.MFACovered
	missingApproval := dashboard.TotalAccounts - dashboard.ApprovalCovered
	dashboard.ComplianceScore = complianceScore(dashboard.TotalAccounts,
		missingMFA, missingApproval, dashboard.DormantCount,
		dashboard.RotationExpiredCount, dashboard.HighRiskCount)

	dashboard.TopViolations = topViolationCounts(map[string]int{
		"missing-mfa":           missingMFA,
		"missing-dual-approval": missingApproval,
		"dormant":               dashboard.DormantCount,
		"rotation-expired":      dashboard.RotationExpiredCount,
		"high-risk":             dashboard.HighRiskCount,
	})

	return dashboard, nil
}

// complianceScore starts at 100 and subtracts, proportionally to the
// total account count, weighted penalties per missing control, clamped
// to [0,100].
func complianceScore(total, missingMFA, missingApproval, dormant, rotationExpired, highRisk int) int {
	if total == 0 {
		return 100
	}

	penalty := float64(missingMFA*penaltyMissingMFA+
		missingApproval*penaltyMissingApproval+
		dormant*penaltyDormant+
		rotationExpired*penaltyRotationExpired+
		highRisk*penaltyHighRisk) / float64(total)

	score := int(math.Round(100 - penalty))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func topViolationCounts(counts map[string]int) []ViolationCount {
	top := make([]ViolationCount, 0, len(counts))
	for name, count := range counts {
		if count == 0 {
			continue
		}
		top = append(top, ViolationCount{Name: name, Count: count})
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return top[i].Name < top[j].Name
	})
	return top
}
