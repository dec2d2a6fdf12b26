package models

import (
	"time"

	"gorm.io/gorm"
)

// GeneralPolicy is the portal's policy document. Logically a singleton:
// saving updates the most recent non-deleted row or creates the first one.
type GeneralPolicy struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
