package model

import "time"

// SessionCommand represents one ordered unit of interaction within a
// recorded session. Sequence numbers are unique and monotonically
// increasing per session, and ExecutedAt is non-decreasing with the
// sequence number.
type SessionCommand struct {
	CommandID        string    `gorm:"column:command_id;primaryKey"`
	SessionID        string    `gorm:"column:session_id;not null;index"`
	SequenceNumber   int       `gorm:"column:sequence_number;not null"`
	ExecutedAt       time.Time `gorm:"column:executed_at;not null"`
	CommandText      string    `gorm:"column:command_text"`
	ResponseText     string    `gorm:"column:response_text"`
	ResponseSize     int64     `gorm:"column:response_size"`
	DurationMs       int64     `gorm:"column:duration_ms"`
	Success          bool      `gorm:"column:success"`
	ErrorMessage     string    `gorm:"column:error_message"`
	IsSuspicious     bool      `gorm:"column:is_suspicious"`
	SuspiciousReason string    `gorm:"column:suspicious_reason"`
}

func (SessionCommand) TableName() string {
	return "session_commands"
}

// RelativeTo returns the command's offset from the given session start.
func (c *SessionCommand) RelativeTo(start time.Time) time.Duration {
	return c.ExecutedAt.Sub(start)
}

// ExecutionDuration returns the command's execution time.
func (c *SessionCommand) ExecutionDuration() time.Duration {
	return time.Duration(c.DurationMs) * time.Millisecond
}
