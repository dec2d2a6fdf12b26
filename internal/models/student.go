package models

import (
	"time"

	"gorm.io/gorm"
)

// Student lifecycle statuses.
const (
	StudentStatusActive   = "active"
	StudentStatusInactive = "inactive"
)

// Student is an enrolled learner. Rows are created when a registration is
// approved, inside the same transaction as the status change.
type Student struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	StudentNo    string         `gorm:"size:32;uniqueIndex;not null" json:"student_no"`
	FirstName    string         `gorm:"size:100;not null" json:"first_name"`
	MiddleName   string         `gorm:"size:100" json:"middle_name"`
	LastName     string         `gorm:"size:100;not null" json:"last_name"`
	Email        string         `gorm:"size:255;not null" json:"email"`
	YearLevelID  uint           `gorm:"not null;index" json:"year_level_id"`
	SchoolYearID uint           `gorm:"index" json:"school_year_id"`
	Status       string         `gorm:"size:16;not null;default:active;index" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	YearLevel YearLevel `gorm:"foreignKey:YearLevelID" json:"year_level,omitempty"`
}
