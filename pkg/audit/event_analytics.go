package audit

import (
	"fmt"
	"strconv"
)

// AnalyticsEvent represents an access-analytics scan or score computation.
type AnalyticsEvent struct {
	UserID      string
	ClientIP    string
	Operation   string // e.g. "dormant-scan", "risk-score", "compliance-dashboard"
	AccountID   string // set for single-account operations
	ResultCount int
	Success     bool
	ErrorMessage string
}

func (e AnalyticsEvent) MessageID() string {
	return "analytics"
}

func (e AnalyticsEvent) Message() string {
	subject := "reachable accounts"
	if e.AccountID != "" {
		subject = e.AccountID
	}
	if e.Success {
		return fmt.Sprintf("%s ran %s over %s", e.UserID, e.Operation, subject)
	}
	msg := fmt.Sprintf("%s failed to run %s over %s", e.UserID, e.Operation, subject)
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AnalyticsEvent) Severity() Severity {
	if e.Success {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AnalyticsEvent) Facility() int {
	return FacilityAuth
}

func (e AnalyticsEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDAction: {
			"operation": e.Operation,
			"results":   strconv.Itoa(e.ResultCount),
		},
		SDIDClient: {
			"ip": e.ClientIP,
		},
	}
	if e.AccountID != "" {
		sd[SDIDSubject] = map[string]string{"account": e.AccountID}
	}
	if e.Success {
		sd[SDIDAction]["result"] = "success"
	} else {
		sd[SDIDAction]["result"] = "failure"
	}
	return sd
}
