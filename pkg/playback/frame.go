package playback

import (
	"context"
	"time"

	"github.com/pamsentry/pam-intel/pkg/identity"
)

// GetPlaybackFrame reconstructs the session's state as of the given
// relative offset: exactly the prefix of commands executed at or before
// start+offset. ActualTimestamp is the relative time of the last
// included command, or zero when none fall inside the offset.
func (s *Service) GetPlaybackFrame(ctx context.Context, id *identity.Identity, sessionID string, offset time.Duration) (*Frame, error) {
	session, err := s.gatedSession(ctx, id, sessionID, "frame")
	if err != nil {
		return nil, err
	}
	commands, err := s.sessions.ListCommands(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	entries := timelineEntries(session.StartedAt, commands)

	included := 0
	for included < len(entries) && entries[included].RelativeTimestamp <= offset {
		included++
	}

	frame := &Frame{
		SessionID:         session.SessionID,
		RequestedOffset:   offset,
		Entries:           entries[:included],
		RemainingCommands: len(entries) - included,
	}

	if included > 0 {
		frame.ActualTimestamp = entries[included-1].RelativeTimestamp
		frame.CurrentCommand = &entries[included-1]
	}
	if included > 1 {
		frame.PreviousCommand = &entries[included-2]
	}
	if included < len(entries) {
		frame.NextCommand = &entries[included]
	}

	total := totalDuration(session, commands)
	if remaining := total - frame.ActualTimestamp; remaining > 0 {
		frame.RemainingDuration = remaining
	}

	s.auditViewed(id, sessionID, "frame")
	return frame, nil
}
