package playback

import (
	"context"

	"github.com/pamsentry/pam-intel/pkg/identity"
	"github.com/pamsentry/pam-intel/pkg/store"
)

// GetPlaybackSummaries lists sessions the caller may view, owned or in
// a readable safe, newest first. The limit defaults to and is capped by
// the configured page sizes.
func (s *Service) GetPlaybackSummaries(ctx context.Context, id *identity.Identity, filter SummaryFilter) ([]SessionSummary, error) {
	safeIDs, err := s.safes.AccessibleSafes(ctx, id.UserID)
	if err != nil {
		return nil, err
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = s.cfg.SummariesDefaultLimit
	}
	if limit > s.cfg.SummariesMaxLimit {
		limit = s.cfg.SummariesMaxLimit
	}

	sessions, err := s.sessions.ListVisible(ctx, id.UserID, safeIDs, store.SessionFilter{
		AccountID: filter.AccountID,
		From:      filter.From,
		To:        filter.To,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for i := range sessions {
		sess := &sessions[i]
		summaries = append(summaries, SessionSummary{
			SessionID:    sess.SessionID,
			AccountID:    sess.AccountID,
			UserID:       sess.UserID,
			Protocol:     sess.Protocol,
			HostAddress:  sess.HostAddress,
			StartedAt:    sess.StartedAt,
			EndedAt:      sess.EndedAt,
			Duration:     sess.Duration(),
			Status:       sess.Status,
			CommandCount: sess.CommandCount,
			IsSuspicious: sess.IsSuspicious,
		})
	}

	s.auditViewed(id, "", "summaries")
	return summaries, nil
}
