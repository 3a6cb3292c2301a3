package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/pamsentry/pam-intel/pkg/audit"
	"github.com/pamsentry/pam-intel/pkg/identity"
	"github.com/pamsentry/pam-intel/pkg/model"
)

// Per-factor caps. The factors always sum to at most 100.
const (
	dormancyFactorMax   = 20
	rotationFactorMax   = 25
	mfaFactorScore      = 15
	approvalFactorScore = 15
	privilegeFactorMax  = 25
)

// Factor scaling: roughly one point per five idle days, one point per
// two overdue rotation days.
const (
	idleDaysPerPoint    = 5
	overdueDaysPerPoint = 2
)

// CalculateAccountRiskScore computes the additive five-factor risk
// score of one account. Fails closed: the caller receives
// store.ErrAccountNotFound or ErrAccessDenied.
func (e *Engine) CalculateAccountRiskScore(ctx context.Context, id *identity.Identity, accountID string) (*RiskScore, error) {
	account, err := e.gatedAccount(ctx, id, accountID)
	if err != nil {
		return nil, err
	}

	lastCheckout, err := e.checkouts.LastCheckoutAt(ctx, account.AccountID)
	if err != nil {
		return nil, err
	}

	score := e.scoreAccount(account, lastCheckout)

	audit.Log(audit.AnalyticsEvent{
		UserID:      id.UserID,
		ClientIP:    id.ClientIP(),
		Operation:   "risk-score",
		AccountID:   account.AccountID,
		ResultCount: 1,
		Success:     true,
	})
	return score, nil
}

// GetHighRiskAccounts scores every reachable account and returns those
// at or above the threshold, descending. A non-positive threshold falls
// back to the configured default (70). Fails open.
func (e *Engine) GetHighRiskAccounts(ctx context.Context, id *identity.Identity, threshold int) []RiskScore {
	if threshold <= 0 {
		threshold = e.cfg.HighRiskThreshold
	}

	scores, err := e.highRiskAccounts(ctx, id, threshold)
	if err != nil {
		audit.Log(audit.ComputationEvent{UserID: id.UserID, Operation: "high-risk-scan", Err: err})
		return []RiskScore{}
	}

	audit.Log(audit.AnalyticsEvent{
		UserID:      id.UserID,
		ClientIP:    id.ClientIP(),
		Operation:   "high-risk-scan",
		ResultCount: len(scores),
		Success:     true,
	})
	return scores
}

func (e *Engine) highRiskAccounts(ctx context.Context, id *identity.Identity, threshold int) ([]RiskScore, error) {
	accounts, safeIDs, err := e.reachableAccounts(ctx, id)
	if err != nil {
		return nil, err
	}
	checkouts, err := e.checkouts.ListBySafes(ctx, safeIDs, time.Time{})
	if err != nil {
		return nil, err
	}
	lastByAccount := lastCheckoutIndex(checkouts)

	scores := make([]RiskScore, 0)
	for i := range accounts {
		account := &accounts[i]
		var lastCheckout *time.Time
		if t, ok := lastByAccount[account.AccountID]; ok {
			lastCheckout = &t
		}
		score := e.scoreAccount(account, lastCheckout)
		if score.Total >= threshold {
			scores = append(scores, *score)
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Total != scores[j].Total {
			return scores[i].Total > scores[j].Total
		}
		return scores[i].AccountID < scores[j].AccountID
	})
	return scores, nil
}

// scoreAccount is the shared five-factor model. Each factor is capped
// independently; the sum is always within [0,100].
func (e *Engine) scoreAccount(account *model.PrivilegedAccount, lastCheckout *time.Time) *RiskScore {
	now := e.now()
	score := &RiskScore{
		AccountID:   account.AccountID,
		AccountName: account.Name,
		SafeID:      account.SafeID,
		ComputedAt:  now,
	}

	// Dormancy: ~1 point per 5 idle days, capped at 20.
	idle := daysSince(now, lastActivity(account, lastCheckout))
	dormancy := idle / idleDaysPerPoint
	if dormancy > dormancyFactorMax {
		dormancy = dormancyFactorMax
	}
	score.addFactor("dormancy", dormancy, dormancyFactorMax,
		fmt.Sprintf("%d days since last activity", idle))
	if dormancy > 0 {
		score.Recommendations = append(score.Recommendations,
			"Check out or rotate the account to confirm it is still needed")
	}

	// Rotation: ~1 point per 2 overdue days, capped at 25.
	overdueDays := int(account.RotationOverdueBy(now).Hours() / 24)
	rotation := overdueDays / overdueDaysPerPoint
	if rotation > rotationFactorMax {
		rotation = rotationFactorMax
	}
	score.addFactor("rotation", rotation, rotationFactorMax,
		fmt.Sprintf("rotation overdue by %d days", overdueDays))
	if rotation > 0 {
		score.Recommendations = append(score.Recommendations,
			"Rotate the credential immediately")
	}

	// MFA: all or nothing.
	mfa := 0
	if !account.RequiresMFA {
		mfa = mfaFactorScore
		score.Recommendations = append(score.Recommendations,
			"Require MFA for checkouts of this account")
	}
	score.addFactor("mfa", mfa, mfaFactorScore, "multi-factor authentication coverage")

	// Dual approval: all or nothing.
	approval := 0
	if !account.RequiresDualApproval {
		approval = approvalFactorScore
		score.Recommendations = append(score.Recommendations,
			"Require dual approval for checkouts of this account")
	}
	score.addFactor("approval", approval, approvalFactorScore, "dual-approval coverage")

	// Privilege: platform and username, superusers at the cap.
	privilege := privilegeFactorScore(account.Platform, account.Username)
	score.addFactor("privilege", privilege, privilegeFactorMax,
		fmt.Sprintf("platform %s, username %s", account.Platform, account.Username))
	if privilege >= privilegeFactorMax {
		score.Recommendations = append(score.Recommendations,
			"Replace the shared superuser credential with named accounts")
	}

	score.Level = LevelForScore(score.Total)
	return score
}

func (s *RiskScore) addFactor(name string, value, max int, detail string) {
	s.Factors = append(s.Factors, RiskFactor{Name: name, Score: value, Max: max, Detail: detail})
	s.Total += value
}
