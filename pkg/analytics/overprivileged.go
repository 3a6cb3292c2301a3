package analytics

import (
	"context"
	"sort"

	"github.com/pamsentry/pam-intel/pkg/audit"
	"github.com/pamsentry/pam-intel/pkg/identity"
)

// Over-privilege detection looks back over a fixed activity window.
const overPrivilegeWindowDays = 90

// usagePenaltyCap bounds how far observed activity can reduce the
// privilege score.
const usagePenaltyCap = 30

// DetectOverPrivilegedAccounts flags reachable accounts on
// high-privilege platforms (database engines, cloud, SSH) whose
// checkout+session activity sits below the low-usage threshold. Fails
// open.
func (e *Engine) DetectOverPrivilegedAccounts(ctx context.Context, id *identity.Identity) []OverPrivilegedAccount {
	flagged, err := e.detectOverPrivileged(ctx, id)
	if err != nil {
		audit.Log(audit.ComputationEvent{UserID: id.UserID, Operation: "overprivilege-scan", Err: err})
		return []OverPrivilegedAccount{}
	}

	audit.Log(audit.AnalyticsEvent{
		UserID:      id.UserID,
		ClientIP:    id.ClientIP(),
		Operation:   "overprivilege-scan",
		ResultCount: len(flagged),
		Success:     true,
	})
	return flagged
}

func (e *Engine) detectOverPrivileged(ctx context.Context, id *identity.Identity) ([]OverPrivilegedAccount, error) {
	accounts, safeIDs, err := e.reachableAccounts(ctx, id)
	if err != nil {
		return nil, err
	}

	since := e.now().AddDate(0, 0, -overPrivilegeWindowDays)
	checkouts, err := e.checkouts.ListBySafes(ctx, safeIDs, since)
	if err != nil {
		return nil, err
	}
	sessions, err := e.sessions.ListBySafes(ctx, safeIDs, since)
	if err != nil {
		return nil, err
	}

	activity := make(map[string]int, len(accounts))
	for _, co := range checkouts {
		activity[co.AccountID]++
	}
	for _, sess := range sessions {
		activity[sess.AccountID]++
	}

	flagged := make([]OverPrivilegedAccount, 0)
	for i := range accounts {
		account := &accounts[i]
		if !isHighPrivilegePlatform(account.Platform) {
			continue
		}
		count := activity[account.AccountID]
		if count >= e.cfg.LowUsageThreshold {
			continue
		}

		penalty := count * 10
		if penalty > usagePenaltyCap {
			penalty = usagePenaltyCap
		}

		flagged = append(flagged, OverPrivilegedAccount{
			AccountID:      account.AccountID,
			AccountName:    account.Name,
			SafeID:         account.SafeID,
			Platform:       account.Platform,
			Username:       account.Username,
			ActivityCount:  count,
			PrivilegeScore: platformBaseScore(account.Platform) - penalty,
			Recommendation: "Reduce privileges or retire the account; its privilege level is not justified by usage",
		})
	}

	sort.SliceStable(flagged, func(i, j int) bool {
		if flagged[i].PrivilegeScore != flagged[j].PrivilegeScore {
			return flagged[i].PrivilegeScore > flagged[j].PrivilegeScore
		}
		return flagged[i].AccountID < flagged[j].AccountID
	})
	return flagged, nil
}
