package models

import (
	"time"

	"gorm.io/gorm"
)

// AccessCode gates entry to the public registration form. Codes are stored
// normalized (trimmed, uppercase) and compared exactly.
type AccessCode struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Code      string         `gorm:"size:32;uniqueIndex;not null" json:"code"`
	Active    bool           `gorm:"not null;default:true;index" json:"active"`
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`
	UseCount  int64          `gorm:"not null;default:0" json:"use_count"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
