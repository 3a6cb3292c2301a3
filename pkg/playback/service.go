package playback

import (
	"context"
	"errors"
	"time"

	"github.com/pamsentry/pam-intel/pkg/audit"
	"github.com/pamsentry/pam-intel/pkg/config"
	"github.com/pamsentry/pam-intel/pkg/identity"
	"github.com/pamsentry/pam-intel/pkg/model"
	"github.com/pamsentry/pam-intel/pkg/store"
)

// ErrUnauthorized is returned when the caller neither owns the session
// nor holds read access to the safe containing the session's account.
var ErrUnauthorized = errors.New("unauthorized")

// Service reconstructs recorded privileged sessions. It is stateless:
// it holds only collaborator references and may be shared by
// arbitrarily many concurrent callers.
type Service struct {
	accounts store.AccountsStore
	sessions store.SessionsStore
	safes    store.SafeAccessStore
	cfg      *config.Config

	now func() time.Time
}

// NewService creates a playback service over the given stores. A nil
// cfg falls back to the global configuration.
func NewService(
	accounts store.AccountsStore,
	sessions store.SessionsStore,
	safes store.SafeAccessStore,
	cfg *config.Config,
) *Service {
	if cfg == nil {
		cfg = config.Get()
	}
	return &Service{
		accounts: accounts,
		sessions: sessions,
		safes:    safes,
		cfg:      cfg,
		now:      time.Now,
	}
}

// gatedSession fetches one session and verifies the caller may view it:
// the caller owns the session, or holds read access on the safe
// containing the session's account. A denial is audited.
func (s *Service) gatedSession(ctx context.Context, id *identity.Identity, sessionID, operation string) (*model.PrivilegedSession, error) {
	session, err := s.sessions.FetchSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.UserID == id.UserID {
		return session, nil
	}

	account, err := s.accounts.FetchAccount(ctx, session.AccountID)
	if err != nil {
		return nil, err
	}
	ok, err := s.safes.HasSafeAccess(ctx, account.SafeID, id.UserID, store.AccessModeRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		audit.Log(audit.PlaybackEvent{
			UserID:    id.UserID,
			ClientIP:  id.ClientIP(),
			SessionID: sessionID,
			Operation: operation,
			Denied:    true,
		})
		return nil, ErrUnauthorized
	}
	return session, nil
}

func (s *Service) auditViewed(id *identity.Identity, sessionID, operation string) {
	audit.Log(audit.PlaybackEvent{
		UserID:    id.UserID,
		ClientIP:  id.ClientIP(),
		SessionID: sessionID,
		Operation: operation,
		Success:   true,
	})
}
