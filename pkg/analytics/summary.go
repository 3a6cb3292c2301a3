package analytics

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pamsentry/pam-intel/pkg/audit"
	"github.com/pamsentry/pam-intel/pkg/identity"
	"github.com/pamsentry/pam-intel/pkg/model"
)

// GetAnalyticsSummary combines every analytics view into one tenant-wide
// report. The average risk score samples up to the configured account
// cap; per-account checkout lookups fan out over a bounded worker pool
// rather than running sequentially. Fails open to an empty summary.
func (e *Engine) GetAnalyticsSummary(ctx context.Context, id *identity.Identity) *Summary {
	summary, err := e.analyticsSummary(ctx, id)
	if err != nil {
		audit.Log(audit.ComputationEvent{UserID: id.UserID, Operation: "analytics-summary", Err: err})
		return &Summary{GeneratedAt: e.now()}
	}

	audit.Log(audit.AnalyticsEvent{
		UserID:      id.UserID,
		ClientIP:    id.ClientIP(),
		Operation:   "analytics-summary",
		ResultCount: summary.TotalAccounts,
		Success:     true,
	})
	return summary
}

func (e *Engine) analyticsSummary(ctx context.Context, id *identity.Identity) (*Summary, error) {
	accounts, _, err := e.reachableAccounts(ctx, id)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		GeneratedAt:   e.now(),
		TotalAccounts: len(accounts),
	}

	sample := accounts
	if len(sample) > e.cfg.SummarySampleCap {
		sample = sample[:e.cfg.SummarySampleCap]
	}
	summary.SampledAccounts = len(sample)

	avg, err := e.averageRiskScore(ctx, sample)
	if err != nil {
		return nil, err
	}
	summary.AverageRiskScore = avg

	summary.DormantAccounts = e.DetectDormantAccounts(ctx, id, 0)
	summary.OverPrivileged = e.DetectOverPrivilegedAccounts(ctx, id)
	summary.HighRiskAccounts = e.GetHighRiskAccounts(ctx, id, 0)
	summary.Anomalies = e.DetectAccessAnomalies(ctx, id)
	summary.Violations = e.DetectCheckoutPolicyViolations(ctx, id)
	if dashboard := e.GetComplianceDashboard(ctx, id); dashboard != nil {
		summary.Dashboard = *dashboard
	}

	return summary, nil
}

// averageRiskScore scores the sampled accounts concurrently. The
// per-account last-checkout lookups are the only I/O; a fixed-size
// worker pool bounds how many run at once.
func (e *Engine) averageRiskScore(ctx context.Context, sample []model.PrivilegedAccount) (float64, error) {
	if len(sample) == 0 {
		return 0, nil
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(e.cfg.SummaryWorkers)

	var mu sync.Mutex
	total := 0

	for i := range sample {
		account := &sample[i]
		group.Go(func() error {
			lastCheckout, err := e.checkouts.LastCheckoutAt(ctx, account.AccountID)
			if err != nil {
				return err
			}
			score := e.scoreAccount(account, lastCheckout)

			mu.Lock()
			total += score.Total
			mu.Unlock()
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return 0, err
	}
	return float64(total) / float64(len(sample)), nil
}
