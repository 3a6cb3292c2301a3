package audit

import "fmt"

// ComputationEvent records an internal fault absorbed by a fail-open
// listing operation. The operation returned an empty result to its
// caller; this event is the only trace of the underlying error.
type ComputationEvent struct {
	UserID    string
	Operation string
	Err       error
}

func (e ComputationEvent) MessageID() string {
	return "computation"
}

func (e ComputationEvent) Message() string {
	return fmt.Sprintf("%s for %s degraded to empty result: %v", e.Operation, e.UserID, e.Err)
}

func (e ComputationEvent) Severity() Severity {
	return SeverityWarning
}

func (e ComputationEvent) Facility() int {
	return FacilityAuth
}

func (e ComputationEvent) StructuredData() map[string]map[string]string {
	sd := map[string]map[string]string{
		SDIDAuth: {
			"user": e.UserID,
		},
		SDIDAction: {
			"operation": e.Operation,
			"result":    "degraded",
		},
	}
	if e.Err != nil {
		sd[SDIDAction]["error"] = e.Err.Error()
	}
	return sd
}
