package models

import (
	"time"

	"gorm.io/datatypes"
)

// Action categories recorded in the audit trail.
const (
	AuditCategorySystem       = "SYSTEM"
	AuditCategoryRegistration = "REGISTRATION"
	AuditCategoryYearLevel    = "YEAR_LEVEL"
	AuditCategoryPolicy       = "POLICY"
	AuditCategoryReport       = "REPORT"
	AuditCategoryAccessCode   = "ACCESS_CODE"
)

// Action types recorded in the audit trail.
const (
	AuditActionView    = "VIEW"
	AuditActionCreate  = "CREATE"
	AuditActionUpdate  = "UPDATE"
	AuditActionDelete  = "DELETE"
	AuditActionApprove = "APPROVE"
	AuditActionReject  = "REJECT"
)

// Terminal statuses for audit entries.
const (
	AuditStatusSuccess = "SUCCESS"
	AuditStatusFailed  = "FAILED"
	AuditStatusWarning = "WARNING"
)

// Severity levels attached to audit entries.
const (
	AuditSeverityInfo    = "INFO"
	AuditSeverityWarning = "WARNING"
	AuditSeverityError   = "ERROR"
)

// AuditLog is one append-only record of a system action. Rows are never
// updated or deleted; the ID doubles as the log number shown to operators.
type AuditLog struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	User           string            `gorm:"size:255;not null;default:System" json:"user"`
	Role           string            `gorm:"size:64;not null;default:System" json:"role"`
	ActionCategory string            `gorm:"size:32;not null;index" json:"action_category"`
	ActionType     string            `gorm:"size:16;not null" json:"action_type"`
	Description    string            `gorm:"type:text;not null" json:"description"`
	TargetType     string            `gorm:"size:64;not null" json:"target_type"`
	TargetID       string            `gorm:"size:64" json:"target_id"`
	Status         string            `gorm:"size:16;not null;index" json:"status"`
	SeverityLevel  string            `gorm:"size:16;not null" json:"severity_level"`
	ErrorMessage   string            `gorm:"type:text" json:"error_message,omitempty"`
	Metadata       datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	OldValues      datatypes.JSONMap `gorm:"type:json" json:"old_values"`
	NewValues      datatypes.JSONMap `gorm:"type:json" json:"new_values"`
	CreatedAt      time.Time         `gorm:"index" json:"created_at"`
}
