package model

import "time"

// Safe represents an access-controlled container grouping privileged accounts.
type Safe struct {
	SafeID    string    `gorm:"column:safe_id;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	PolicyID  string    `gorm:"column:policy_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Safe) TableName() string {
	return "safes"
}

// SafePermission represents a user's access grant on a safe.
type SafePermission struct {
	SafeID     string    `gorm:"column:safe_id;primaryKey"`
	UserID     string    `gorm:"column:user_id;primaryKey"`
	AccessMode string    `gorm:"column:access_mode;primaryKey"`
	GrantedAt  time.Time `gorm:"column:granted_at;autoCreateTime"`
}

func (SafePermission) TableName() string {
	return "safe_permissions"
}
