package models

import (
	"time"
)

const (
	ActionCreateCategory   = "CREATE_CATEGORY"
	ActionUpdateCategory   = "UPDATE_CATEGORY"
	ActionDeleteCategory   = "DELETE_CATEGORY"
	ActionCreateUser       = "CREATE_USER"
	ActionUpdateUser       = "UPDATE_USER"
	ActionDeleteUser       = "DELETE_USER"
	ActionCreateVideo      = "CREATE_VIDEO"
	ActionUpdateVideo      = "UPDATE_VIDEO"
	ActionDeleteVideo      = "DELETE_VIDEO"
	ActionLogin            = "LOGIN"
	ActionLoginFailed      = "LOGIN_FAILED"
	ActionPasswordMigrated = "PASSWORD_MIGRATED"
)

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *string   `gorm:"size:36;index" json:"user_id"`   // Nullable for failed logins
	Action    string    `gorm:"size:50;not null" json:"action"` // e.g., "LOGIN", "CREATE_VIDEO", "DELETE_VIDEO"
	EntityID  string    `gorm:"size:255" json:"entity_id"`      // ID of the object affected, or the login name on failures
	Details   string    `gorm:"type:text" json:"details"`
	IPAddress string    `gorm:"size:45" json:"ip_address"`
	Timestamp time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"timestamp"`
}
