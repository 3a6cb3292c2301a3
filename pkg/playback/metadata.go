package playback

import (
	"context"
	"strings"
	"time"

	"github.com/pamsentry/pam-intel/pkg/identity"
	"github.com/pamsentry/pam-intel/pkg/model"
)

// GetPlaybackMetadata summarizes a session without the full command
// payloads: duration, counts, capability flags, and aggregate command
// statistics.
func (s *Service) GetPlaybackMetadata(ctx context.Context, id *identity.Identity, sessionID string) (*Metadata, error) {
	session, err := s.gatedSession(ctx, id, sessionID, "metadata")
	if err != nil {
		return nil, err
	}
	commands, err := s.sessions.ListCommands(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	meta := &Metadata{
		SessionID:    session.SessionID,
		AccountID:    session.AccountID,
		UserID:       session.UserID,
		Protocol:     session.Protocol,
		Platform:     session.Platform,
		StartedAt:    session.StartedAt,
		EndedAt:      session.EndedAt,
		Duration:     totalDuration(session, commands),
		Status:       session.Status,
		CommandCount: session.CommandCount,
		QueryCount:   session.QueryCount,
		IsSuspicious: session.IsSuspicious,
		CanReplay:    len(commands) > 0,
		CanSearch:    len(commands) > 0,
		CanExport:    len(commands) > 0,
		Statistics:   commandStatistics(commands),
	}

	s.auditViewed(id, sessionID, "metadata")
	return meta, nil
}

func commandStatistics(commands []model.SessionCommand) Statistics {
	stats := Statistics{CommandTypes: make(map[string]int)}
	if len(commands) == 0 {
		return stats
	}

	var totalExec, totalDelay time.Duration
	for i := range commands {
		cmd := &commands[i]

		if cmd.Success {
			stats.SuccessCount++
		} else {
			stats.FailureCount++
		}
		if cmd.IsSuspicious {
			stats.SuspiciousCount++
		}

		exec := cmd.ExecutionDuration()
		totalExec += exec
		if exec > stats.MaxExecutionTime {
			stats.MaxExecutionTime = exec
		}
		if i > 0 {
			totalDelay += cmd.ExecutedAt.Sub(commands[i-1].ExecutedAt)
		}

		stats.CommandTypes[commandType(cmd.CommandText)]++
	}

	stats.MeanExecutionTime = totalExec / time.Duration(len(commands))
	if len(commands) > 1 {
		stats.MeanCommandDelay = totalDelay / time.Duration(len(commands)-1)
	}
	return stats
}

// commandType buckets a command by its first word, lowercased.
func commandType(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "(empty)"
	}
	return strings.ToLower(fields[0])
}
