package model

import "time"

// Session status values.
const (
	SessionStatusActive     = "active"
	SessionStatusClosed     = "closed"
	SessionStatusTerminated = "terminated"
)

// PrivilegedSession represents one recorded interactive session,
// optionally tied to a checkout. The record is append-only: EndedAt is
// set once at session close and the row is immutable thereafter.
type PrivilegedSession struct {
	SessionID       string     `gorm:"column:session_id;primaryKey"`
	AccountID       string     `gorm:"column:account_id;not null;index"`
	UserID          string     `gorm:"column:user_id;not null;index"`
	CheckoutID      *string    `gorm:"column:checkout_id"`
	Protocol        string     `gorm:"column:protocol"`
	Platform        string     `gorm:"column:platform"`
	HostAddress     string     `gorm:"column:host_address"`
	HostPort        int        `gorm:"column:host_port"`
	SessionType     string     `gorm:"column:session_type"`
	StartedAt       time.Time  `gorm:"column:started_at;not null"`
	EndedAt         *time.Time `gorm:"column:ended_at"`
	Status          string     `gorm:"column:status;not null"`
	CommandCount    int        `gorm:"column:command_count"`
	QueryCount      int        `gorm:"column:query_count"`
	IsSuspicious    bool       `gorm:"column:is_suspicious"`
	RecordingFormat string     `gorm:"column:recording_format"`
}

func (PrivilegedSession) TableName() string {
	return "privileged_sessions"
}

// Duration returns the recorded wall-clock span of the session, or zero
// if the session has no recorded end.
func (s *PrivilegedSession) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}
