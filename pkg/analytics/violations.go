package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pamsentry/pam-intel/pkg/audit"
	"github.com/pamsentry/pam-intel/pkg/identity"
)

const (
	violationWindowDays = 30

	// Checkouts still active past this are ExcessiveDuration violations.
	excessiveCheckoutDuration = 24 * time.Hour
)

// DetectCheckoutPolicyViolations scans the last 30 days of checkouts
// for leases held active past 24 hours and for checkouts of
// dual-approval accounts that were not approval-gated. Fails open.
func (e *Engine) DetectCheckoutPolicyViolations(ctx context.Context, id *identity.Identity) []PolicyViolation {
	violations, err := e.detectViolations(ctx, id)
	if err != nil {
		audit.Log(audit.ComputationEvent{UserID: id.UserID, Operation: "violation-scan", Err: err})
		return []PolicyViolation{}
	}

	audit.Log(audit.AnalyticsEvent{
		UserID:      id.UserID,
		ClientIP:    id.ClientIP(),
		Operation:   "violation-scan",
		ResultCount: len(violations),
		Success:     true,
	})
	return violations
}

func (e *Engine) detectViolations(ctx context.Context, id *identity.Identity) ([]PolicyViolation, error) {
	accounts, safeIDs, err := e.reachableAccounts(ctx, id)
	if err != nil {
		return nil, err
	}

	now := e.now()
	since := now.AddDate(0, 0, -violationWindowDays)
	checkouts, err := e.checkouts.ListBySafes(ctx, safeIDs, since)
	if err != nil {
		return nil, err
	}

	requiresApproval := make(map[string]bool, len(accounts))
	for i := range accounts {
		requiresApproval[accounts[i].AccountID] = accounts[i].RequiresDualApproval
	}

	violations := make([]PolicyViolation, 0)
	for _, co := range checkouts {
		if co.IsActive() && now.Sub(co.CheckedOutAt) > excessiveCheckoutDuration {
			violations = append(violations, PolicyViolation{
				ViolationID: uuid.NewString(),
				Type:        ViolationExcessiveDuration,
				Severity:    ViolationSeverityMedium,
				AccountID:   co.AccountID,
				UserID:      co.UserID,
				CheckoutID:  co.CheckoutID,
				DetectedAt:  now,
				Description: fmt.Sprintf("checkout has been active for %s", now.Sub(co.CheckedOutAt).Round(time.Hour)),
			})
		}

		if requiresApproval[co.AccountID] && !(co.ApprovalRequired && co.ApprovalGranted) {
			violations = append(violations, PolicyViolation{
				ViolationID: uuid.NewString(),
				Type:        ViolationMissingApproval,
				Severity:    ViolationSeverityHigh,
				AccountID:   co.AccountID,
				UserID:      co.UserID,
				CheckoutID:  co.CheckoutID,
				DetectedAt:  now,
				Description: "account requires dual approval but the checkout was not approval-gated",
			})
		}
	}
	return violations, nil
}
