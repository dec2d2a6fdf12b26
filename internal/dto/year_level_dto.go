package dto

import (
	"time"

	"github.com/scholaris/sis-portal-api/internal/models"
)

// YearLevelCreateRequest carries the payload for adding a year level.
type YearLevelCreateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// YearLevelUpdateRequest carries the payload for renaming a year level.
type YearLevelUpdateRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// YearLevelResponse serializes a year level.
type YearLevelResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// YearLevelListResponse wraps the year level listing.
type YearLevelListResponse struct {
	Items []YearLevelResponse `json:"items"`
}

// NewYearLevelResponse converts a year level model into a DTO.
func NewYearLevelResponse(level models.YearLevel) YearLevelResponse {
	return YearLevelResponse{
		ID:        level.ID,
		Name:      level.Name,
		CreatedAt: level.CreatedAt,
		UpdatedAt: level.UpdatedAt,
	}
}
