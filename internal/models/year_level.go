package models

import (
	"time"

	"gorm.io/gorm"
)

// YearLevel is a grade level students enrol into. Names must be unique among
// non-deleted rows; deletion is always a soft delete so historical
// registrations keep their reference.
type YearLevel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
