package model

import "time"

// PrivilegedAccount represents a managed credential inside a safe.
// The safe reference is immutable after creation.
type PrivilegedAccount struct {
	AccountID            string     `gorm:"column:account_id;primaryKey"`
	SafeID               string     `gorm:"column:safe_id;not null;index"`
	Name                 string     `gorm:"column:name;not null"`
	Username             string     `gorm:"column:username;not null"`
	Platform             string     `gorm:"column:platform;not null"`
	CreatedAt            time.Time  `gorm:"column:created_at;autoCreateTime"`
	LastRotatedAt        *time.Time `gorm:"column:last_rotated_at"`
	NextRotationAt       *time.Time `gorm:"column:next_rotation_at"`
	RequiresMFA          bool       `gorm:"column:requires_mfa"`
	RequiresDualApproval bool       `gorm:"column:requires_dual_approval"`
}

func (PrivilegedAccount) TableName() string {
	return "privileged_accounts"
}

// RotationOverdue returns true if the account's next scheduled rotation
// time has passed.
func (a *PrivilegedAccount) RotationOverdue(now time.Time) bool {
	if a.NextRotationAt == nil {
		return false
	}
	return now.After(*a.NextRotationAt)
}

// RotationOverdueBy returns how long the account's rotation has been
// overdue, or zero if it is not overdue.
func (a *PrivilegedAccount) RotationOverdueBy(now time.Time) time.Duration {
	if !a.RotationOverdue(now) {
		return 0
	}
	return now.Sub(*a.NextRotationAt)
}
