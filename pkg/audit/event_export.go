package audit

import (
	"fmt"
	"strconv"
)

// ExportEvent represents a session export.
type ExportEvent struct {
	UserID    string
	ClientIP  string
	SessionID string
	Format    string
	Filename  string
	SizeBytes int
	Success   bool
}

func (e ExportEvent) MessageID() string {
	return "export"
}

func (e ExportEvent) Message() string {
	if e.Success {
		return fmt.Sprintf("%s exported session %s as %s (%d bytes)", e.UserID, e.SessionID, e.Format, e.SizeBytes)
	}
	return fmt.Sprintf("%s tried to export session %s as %s", e.UserID, e.SessionID, e.Format)
}

func (e ExportEvent) Severity() Severity {
	if e.Success {
		return SeverityNotice
	}
	return SeverityWarning
}

func (e ExportEvent) Facility() int {
	return FacilityAuthPriv
}

func (e ExportEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDSubject: {
			"session": e.SessionID,
		},
		SDIDAction: {
			"operation": "export",
			"format":    e.Format,
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
		sd[SDIDAction]["size"] = strconv.Itoa(e.SizeBytes)
		sd[SDIDSubject]["filename"] = e.Filename
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
