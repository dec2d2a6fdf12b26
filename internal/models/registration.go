package models

import (
	"time"

	"gorm.io/gorm"
)

// Registration statuses. Transitions are one-way out of PENDING; both
// APPROVED and REJECTED are terminal.
const (
	RegistrationStatusPending  = "PENDING"
	RegistrationStatusApproved = "APPROVED"
	RegistrationStatusRejected = "REJECTED"
)

// Registration is a student registration request submitted through the
// public forms surface.
type Registration struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	ReferenceNo     string         `gorm:"size:32;uniqueIndex;not null" json:"reference_no"`
	FirstName       string         `gorm:"size:100;not null" json:"first_name"`
	MiddleName      string         `gorm:"size:100" json:"middle_name"`
	LastName        string         `gorm:"size:100;not null" json:"last_name"`
	Email           string         `gorm:"size:255;not null" json:"email"`
	BirthDate       *time.Time     `json:"birth_date"`
	YearLevelID     uint           `gorm:"not null;index" json:"year_level_id"`
	SchoolYearID    uint           `gorm:"index" json:"school_year_id"`
	AccessCode      string         `gorm:"size:32" json:"access_code"`
	Status          string         `gorm:"size:16;not null;default:PENDING;index" json:"status"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	DecidedBy       string         `gorm:"size:255" json:"decided_by,omitempty"`
	DecidedAt       *time.Time     `json:"decided_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	YearLevel  YearLevel  `gorm:"foreignKey:YearLevelID" json:"year_level,omitempty"`
	SchoolYear SchoolYear `gorm:"foreignKey:SchoolYearID" json:"school_year,omitempty"`
}
