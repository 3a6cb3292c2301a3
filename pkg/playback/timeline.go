package playback

import (
	"context"
	"time"

	"github.com/pamsentry/pam-intel/pkg/identity"
	"github.com/pamsentry/pam-intel/pkg/model"
)

// Commands executing longer than this are flagged long-running.
const longRunningThreshold = 5 * time.Second

// GetPlaybackTimeline reconstructs the session's full ordered command
// sequence. Total duration is the recorded session span, or the offset
// of the last command when the session has no recorded end.
func (s *Service) GetPlaybackTimeline(ctx context.Context, id *identity.Identity, sessionID string) (*Timeline, error) {
	session, err := s.gatedSession(ctx, id, sessionID, "timeline")
	if err != nil {
		return nil, err
	}
	commands, err := s.sessions.ListCommands(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	timeline := &Timeline{
		SessionID:     session.SessionID,
		AccountID:     session.AccountID,
		UserID:        session.UserID,
		StartedAt:     session.StartedAt,
		EndedAt:       session.EndedAt,
		TotalDuration: totalDuration(session, commands),
		Entries:       timelineEntries(session.StartedAt, commands),
	}

	s.auditViewed(id, sessionID, "timeline")
	return timeline, nil
}

// timelineEntries projects recorded commands into timeline entries,
// preserving sequence order.
func timelineEntries(start time.Time, commands []model.SessionCommand) []TimelineEntry {
	entries := make([]TimelineEntry, 0, len(commands))
	for i := range commands {
		cmd := &commands[i]

		var delay time.Duration
		if i > 0 {
			delay = cmd.ExecutedAt.Sub(commands[i-1].ExecutedAt)
		}

		entries = append(entries, TimelineEntry{
			SequenceNumber:     cmd.SequenceNumber,
			RelativeTimestamp:  cmd.RelativeTo(start),
			AbsoluteTimestamp:  cmd.ExecutedAt,
			CommandText:        cmd.CommandText,
			ResponseText:       cmd.ResponseText,
			ErrorMessage:       cmd.ErrorMessage,
			ExecutionDuration:  cmd.ExecutionDuration(),
			Success:            cmd.Success,
			IsSuspicious:       cmd.IsSuspicious,
			SuspiciousReason:   cmd.SuspiciousReason,
			ResponseSize:       cmd.ResponseSize,
			DelaySincePrevious: delay,
			IsLongRunning:      cmd.ExecutionDuration() > longRunningThreshold,
		})
	}
	return entries
}

func totalDuration(session *model.PrivilegedSession, commands []model.SessionCommand) time.Duration {
	if session.EndedAt != nil {
		return session.Duration()
	}
	if len(commands) == 0 {
		return 0
	}
	last := &commands[len(commands)-1]
	return last.RelativeTo(session.StartedAt)
}
