package models

import (
	"time"

	"gorm.io/gorm"
)

// SchoolYear is an academic year registrations and students are attached to.
type SchoolYear struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:32;not null" json:"name"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Active    bool           `gorm:"not null;default:false;index" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
