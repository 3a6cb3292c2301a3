package analytics

import "time"

// DormantAccount describes an account with no recent activity.
type DormantAccount struct {
	AccountID        string    `json:"accountId"`
	AccountName      string    `json:"accountName"`
	SafeID           string    `json:"safeId"`
	Platform         string    `json:"platform"`
	LastActivityAt   time.Time `json:"lastActivityAt"`
	DaysSinceLastUse int       `json:"daysSinceLastUse"`
	RiskScore        int       `json:"riskScore"`
	Recommendation   string    `json:"recommendation"`
}

// OverPrivilegedAccount describes a high-privilege-platform account with
// disproportionately low usage.
type OverPrivilegedAccount struct {
	AccountID      string `json:"accountId"`
	AccountName    string `json:"accountName"`
	SafeID         string `json:"safeId"`
	Platform       string `json:"platform"`
	Username       string `json:"username"`
	ActivityCount  int    `json:"activityCount"`
	PrivilegeScore int    `json:"privilegeScore"`
	Recommendation string `json:"recommendation"`
}

// UserCheckoutCount pairs a user with their checkout count for an account.
type UserCheckoutCount struct {
	UserID    string `json:"userId"`
	Checkouts int    `json:"checkouts"`
}

// UsagePattern aggregates an account's checkout/session activity over a
// window.
type UsagePattern struct {
	AccountID          string              `json:"accountId"`
	WindowDays         int                 `json:"windowDays"`
	TotalCheckouts     int                 `json:"totalCheckouts"`
	TotalSessions      int                 `json:"totalSessions"`
	TotalCommands      int                 `json:"totalCommands"`
	AvgSessionDuration time.Duration       `json:"avgSessionDuration"`
	CheckoutsByHour    [24]int             `json:"checkoutsByHour"`
	CheckoutsByWeekday [7]int              `json:"checkoutsByWeekday"`
	TopUsers           []UserCheckoutCount `json:"topUsers"`
	Anomalous          bool                `json:"anomalous"`
	AnomalyReasons     []string            `json:"anomalyReasons,omitempty"`
}

// Anomaly types.
const (
	AnomalyUnusualTime      = "UnusualTime"
	AnomalyUnusualFrequency = "UnusualFrequency"
	AnomalyUnusualDuration  = "UnusualDuration"
)

// AnomalyStatusOpen is the status every freshly detected anomaly carries.
const AnomalyStatusOpen = "open"

// Anomaly describes one detected abnormal access.
type Anomaly struct {
	AnomalyID   string    `json:"anomalyId"`
	Type        string    `json:"type"`
	AccountID   string    `json:"accountId"`
	UserID      string    `json:"userId"`
	OccurredAt  time.Time `json:"occurredAt"`
	DetectedAt  time.Time `json:"detectedAt"`
	Severity    int       `json:"severity"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

// RiskFactor is one independently capped contribution to a risk score.
type RiskFactor struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Max    int    `json:"max"`
	Detail string `json:"detail"`
}

// RiskScore is the additive 0-100 risk assessment of one account.
type RiskScore struct {
	AccountID       string       `json:"accountId"`
	AccountName     string       `json:"accountName"`
	SafeID          string       `json:"safeId"`
	Total           int          `json:"total"`
	Level           RiskLevel    `json:"level"`
	Factors         []RiskFactor `json:"factors"`
	Recommendations []string     `json:"recommendations"`
	ComputedAt      time.Time    `json:"computedAt"`
}

// Violation types and severities.
const (
	ViolationExcessiveDuration = "ExcessiveDuration"
	ViolationMissingApproval   = "MissingApproval"

	ViolationSeverityMedium = "medium"
	ViolationSeverityHigh   = "high"
)

// PolicyViolation describes one checkout that breached checkout policy.
type PolicyViolation struct {
	ViolationID string    `json:"violationId"`
	Type        string    `json:"type"`
	Severity    string    `json:"severity"`
	AccountID   string    `json:"accountId"`
	UserID      string    `json:"userId"`
	CheckoutID  string    `json:"checkoutId"`
	DetectedAt  time.Time `json:"detectedAt"`
	Description string    `json:"description"`
}

// ViolationCount is a named count for dashboard ranking.
type ViolationCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ComplianceDashboard aggregates control coverage across all reachable
// accounts into a single 0-100 compliance score.
type ComplianceDashboard struct {
	TotalAccounts        int              `json:"totalAccounts"`
	MFACovered           int              `json:"mfaCovered"`
	ApprovalCovered      int              `json:"approvalCovered"`
	DormantCount         int              `json:"dormantCount"`
	RotationExpiredCount int              `json:"rotationExpiredCount"`
	HighRiskCount        int              `json:"highRiskCount"`
	OpenAnomalies        int              `json:"openAnomalies"`
	ComplianceScore      int              `json:"complianceScore"`
	TopViolations        []ViolationCount `json:"topViolations"`
	GeneratedAt          time.Time        `json:"generatedAt"`
}

// Summary is the tenant-wide analytics report.
type Summary struct {
	GeneratedAt      time.Time               `json:"generatedAt"`
	TotalAccounts    int                     `json:"totalAccounts"`
	AverageRiskScore float64                 `json:"averageRiskScore"`
	SampledAccounts  int                     `json:"sampledAccounts"`
	DormantAccounts  []DormantAccount        `json:"dormantAccounts"`
	OverPrivileged   []OverPrivilegedAccount `json:"overPrivileged"`
	HighRiskAccounts []RiskScore             `json:"highRiskAccounts"`
	Anomalies        []Anomaly               `json:"anomalies"`
	Violations       []PolicyViolation       `json:"violations"`
	Dashboard        ComplianceDashboard     `json:"dashboard"`
}
