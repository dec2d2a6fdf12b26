package dto

import (
	"strings"
	"time"

	"github.com/scholaris/sis-portal-api/internal/models"
)

// SystemLogListRequest filters the system log listing.
type SystemLogListRequest struct {
	Category string
	Status   string
	Limit    int
}

// SystemLogResponse is one row of the operator-facing log view. Timestamps
// are pre-formatted as MM/DD/YYYY, HH:MM:SS in 24-hour local time.
type SystemLogResponse struct {
	LogNumber      uint                   `json:"log_number"`
	Timestamp      string                 `json:"timestamp"`
	User           string                 `json:"user"`
	Action         string                 `json:"action"`
	Status         string                 `json:"status"`
	Role           string                 `json:"role"`
	ActionCategory string                 `json:"action_category"`
	ActionType     string                 `json:"action_type"`
	TargetType     string                 `json:"target_type"`
	TargetID       string                 `json:"target_id,omitempty"`
	SeverityLevel  string                 `json:"severity_level"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// SystemLogListResponse wraps the listed rows.
type SystemLogListResponse struct {
	Items []SystemLogResponse `json:"items"`
	Total int64               `json:"total"`
}

// AuditLogResponse serializes a persisted audit entry for API callers.
type AuditLogResponse struct {
	ID             uint                   `json:"id"`
	User           string                 `json:"user"`
	Role           string                 `json:"role"`
	ActionCategory string                 `json:"action_category"`
	ActionType     string                 `json:"action_type"`
	Description    string                 `json:"description"`
	TargetType     string                 `json:"target_type"`
	TargetID       string                 `json:"target_id,omitempty"`
	Status         string                 `json:"status"`
	SeverityLevel  string                 `json:"severity_level"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
	OldValues      map[string]interface{} `json:"old_values,omitempty"`
	NewValues      map[string]interface{} `json:"new_values,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

// NewAuditLogResponse converts an audit model into a DTO.
func NewAuditLogResponse(entry models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:             entry.ID,
		User:           entry.User,
		Role:           entry.Role,
		ActionCategory: entry.ActionCategory,
		ActionType:     entry.ActionType,
		Description:    entry.Description,
		TargetType:     entry.TargetType,
		TargetID:       entry.TargetID,
		Status:         entry.Status,
		SeverityLevel:  entry.SeverityLevel,
		ErrorMessage:   entry.ErrorMessage,
		Metadata:       entry.Metadata,
		OldValues:      entry.OldValues,
		NewValues:      entry.NewValues,
		CreatedAt:      entry.CreatedAt,
	}
}

// NewSystemLogResponse converts an audit model into a log-view row using the
// provided display location for timestamp formatting.
func NewSystemLogResponse(entry models.AuditLog, loc *time.Location) SystemLogResponse {
	if loc == nil {
		loc = time.UTC
	}

	return SystemLogResponse{
		LogNumber:      entry.ID,
		Timestamp:      entry.CreatedAt.In(loc).Format("01/02/2006, 15:04:05"),
		User:           entry.User,
		Action:         entry.Description,
		Status:         titleStatus(entry.Status),
		Role:           entry.Role,
		ActionCategory: entry.ActionCategory,
		ActionType:     entry.ActionType,
		TargetType:     entry.TargetType,
		TargetID:       entry.TargetID,
		SeverityLevel:  entry.SeverityLevel,
		ErrorMessage:   entry.ErrorMessage,
		Metadata:       entry.Metadata,
	}
}

// titleStatus renders stored SUCCESS/FAILED/WARNING values the way the log
// view displays them: Success, Failed, Warning.
func titleStatus(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return ""
	}
	lower := strings.ToLower(status)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
