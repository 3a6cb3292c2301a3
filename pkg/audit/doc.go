// Package audit provides audit logging for PAM intelligence operations.
//
// This package implements structured audit logging for security-relevant
// read operations: analytics scans, risk scoring, playback access, and
// session exports. Events are emitted in RFC5424 syslog format and
// optionally persisted to an audit database.
//
// # Event Types
//
//   - AnalyticsEvent: an analytics scan or score computation
//   - PlaybackEvent: playback access (granted or denied)
//   - ExportEvent: a session export
//   - ComputationEvent: an internal fault absorbed by a fail-open
//     listing operation
//
// # Usage
//
//	audit.Log(audit.PlaybackEvent{
//		UserID:    id.UserID,
//		SessionID: sessionID,
//		Operation: "timeline",
//		Success:   true,
//	})
package audit
