package playback

import "time"

// TimelineEntry is the playback projection of one recorded command.
type TimelineEntry struct {
	SequenceNumber     int           `json:"sequenceNumber"`
	RelativeTimestamp  time.Duration `json:"relativeTimestamp"`
	AbsoluteTimestamp  time.Time     `json:"absoluteTimestamp"`
	CommandText        string        `json:"commandText"`
	ResponseText       string        `json:"responseText,omitempty"`
	ErrorMessage       string        `json:"errorMessage,omitempty"`
	ExecutionDuration  time.Duration `json:"executionDuration"`
	Success            bool          `json:"success"`
	IsSuspicious       bool          `json:"isSuspicious"`
	SuspiciousReason   string        `json:"suspiciousReason,omitempty"`
	ResponseSize       int64         `json:"responseSize"`
	DelaySincePrevious time.Duration `json:"delaySincePrevious"`
	IsLongRunning      bool          `json:"isLongRunning"`
}

// Timeline is the full ordered reconstruction of a session.
type Timeline struct {
	SessionID     string          `json:"sessionId"`
	AccountID     string          `json:"accountId"`
	UserID        string          `json:"userId"`
	StartedAt     time.Time       `json:"startedAt"`
	EndedAt       *time.Time      `json:"endedAt,omitempty"`
	TotalDuration time.Duration   `json:"totalDuration"`
	Entries       []TimelineEntry `json:"entries"`
}

// Frame is the reconstructed state of a session as of one relative
// timestamp, plus navigation context around that point.
type Frame struct {
	SessionID         string          `json:"sessionId"`
	RequestedOffset   time.Duration   `json:"requestedOffset"`
	ActualTimestamp   time.Duration   `json:"actualTimestamp"`
	Entries           []TimelineEntry `json:"entries"`
	CurrentCommand    *TimelineEntry  `json:"currentCommand,omitempty"`
	PreviousCommand   *TimelineEntry  `json:"previousCommand,omitempty"`
	NextCommand       *TimelineEntry  `json:"nextCommand,omitempty"`
	RemainingCommands int             `json:"remainingCommands"`
	RemainingDuration time.Duration   `json:"remainingDuration"`
}

// SearchOptions control which fields a playback search scans and how
// the term is interpreted. The zero value scans nothing; callers
// normally start from DefaultSearchOptions.
type SearchOptions struct {
	InCommands    bool
	InResponses   bool
	InErrors      bool
	Regex         bool
	CaseSensitive bool
}

// DefaultSearchOptions scans every field with case-insensitive literal
// matching.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{InCommands: true, InResponses: true, InErrors: true}
}

// Searched field names.
const (
	FieldCommand  = "command"
	FieldResponse = "response"
	FieldError    = "error"
)

// SearchMatch records one hit inside a session's recorded text.
type SearchMatch struct {
	SequenceNumber    int           `json:"sequenceNumber"`
	RelativeTimestamp time.Duration `json:"relativeTimestamp"`
	Field             string        `json:"field"`
	Context           string        `json:"context"`
}

// SearchResult is the outcome of one playback search.
type SearchResult struct {
	SessionID string        `json:"sessionId"`
	Term      string        `json:"term"`
	Matches   []SearchMatch `json:"matches"`
	// Truncated is set when the matching budget expired before every
	// command was scanned.
	Truncated bool `json:"truncated"`
}

// Export is one rendered session in a single format.
type Export struct {
	SessionID string `json:"sessionId"`
	Format    Format `json:"format"`
	Filename  string `json:"filename"`
	MIMEType  string `json:"mimeType"`
	Payload   []byte `json:"payload"`
	Size      int    `json:"size"`
}

// Statistics aggregates command outcomes across a session.
type Statistics struct {
	SuccessCount      int            `json:"successCount"`
	FailureCount      int            `json:"failureCount"`
	SuspiciousCount   int            `json:"suspiciousCount"`
	MeanExecutionTime time.Duration  `json:"meanExecutionTime"`
	MaxExecutionTime  time.Duration  `json:"maxExecutionTime"`
	MeanCommandDelay  time.Duration  `json:"meanCommandDelay"`
	CommandTypes      map[string]int `json:"commandTypes"`
}

// Metadata is the lightweight session summary without command payloads.
type Metadata struct {
	SessionID    string        `json:"sessionId"`
	AccountID    string        `json:"accountId"`
	UserID       string        `json:"userId"`
	Protocol     string        `json:"protocol"`
	Platform     string        `json:"platform"`
	StartedAt    time.Time     `json:"startedAt"`
	EndedAt      *time.Time    `json:"endedAt,omitempty"`
	Duration     time.Duration `json:"duration"`
	Status       string        `json:"status"`
	CommandCount int           `json:"commandCount"`
	QueryCount   int           `json:"queryCount"`
	IsSuspicious bool          `json:"isSuspicious"`
	CanReplay    bool          `json:"canReplay"`
	CanSearch    bool          `json:"canSearch"`
	CanExport    bool          `json:"canExport"`
	Statistics   Statistics    `json:"statistics"`
}

// SummaryFilter narrows a session-summary listing. Zero values mean "no
// constraint".
type SummaryFilter struct {
	AccountID string
	From      *time.Time
	To        *time.Time
	Limit     int
}

// SessionSummary is one row of a session listing.
type SessionSummary struct {
	SessionID    string        `json:"sessionId"`
	AccountID    string        `json:"accountId"`
	UserID       string        `json:"userId"`
	Protocol     string        `json:"protocol"`
	HostAddress  string        `json:"hostAddress"`
	StartedAt    time.Time     `json:"startedAt"`
	EndedAt      *time.Time    `json:"endedAt,omitempty"`
	Duration     time.Duration `json:"duration"`
	Status       string        `json:"status"`
	CommandCount int           `json:"commandCount"`
	IsSuspicious bool          `json:"isSuspicious"`
}
