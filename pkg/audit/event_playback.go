package audit

import "fmt"

// PlaybackEvent represents playback access to a recorded session,
// granted or denied.
type PlaybackEvent struct {
	UserID       string
	ClientIP     string
	SessionID    string
	Operation    string // timeline, frame, search, metadata, summaries
	Success      bool
	Denied       bool
	ErrorMessage string
}

func (e PlaybackEvent) MessageID() string {
	return "playback"
}

func (e PlaybackEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s viewed %s of session %s", e.UserID, e.Operation, e.SessionID)
	}
	if e.Denied {
		return fmt.Sprintf("%s was denied %s of session %s", e.UserID, e.Operation, e.SessionID)
	}
	msg := fmt.Sprintf("%s failed to view %s of session %s", e.UserID, e.Operation, e.SessionID)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e PlaybackEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e PlaybackEvent) Facility() int {
	return FacilityAuthPriv
}

func (e PlaybackEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"session": e.SessionID,
		},
		SDIDAction: {
			"operation": e.Operation,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	switch {
	case e.Success:
		sd[SDIDAction]["result"] = "success"
	case e.Denied:
		sd[SDIDAction]["result"] = "denied"
	default:
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
