package dto

import (
	"time"

	"github.com/scholaris/sis-portal-api/internal/models"
)

// PolicySaveRequest carries the payload for saving the policy document.
type PolicySaveRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"required,min=1"`
}

// PolicyResponse serializes the policy document.
type PolicyResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPolicyResponse converts a policy model into a DTO.
func NewPolicyResponse(policy models.GeneralPolicy) PolicyResponse {
	return PolicyResponse{
		ID:        policy.ID,
		Title:     policy.Title,
		Content:   policy.Content,
		CreatedAt: policy.CreatedAt,
		UpdatedAt: policy.UpdatedAt,
	}
}
