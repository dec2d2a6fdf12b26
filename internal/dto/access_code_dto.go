package dto

import (
	"time"

	"github.com/scholaris/sis-portal-api/internal/models"
)

// AccessCodeValidateRequest is the public form payload for code validation.
type AccessCodeValidateRequest struct {
	Code string `json:"code" validate:"required"`
}

// AccessCodeValidateResponse reports a successful validation. RedirectPath
// is the forms route the client should navigate to, carrying the normalized
// code as a query parameter.
type AccessCodeValidateResponse struct {
	Code         string `json:"code"`
	RedirectPath string `json:"redirect_path"`
}

// AccessCodeCreateRequest carries admin options for minting a code.
type AccessCodeCreateRequest struct {
	ExpiresAt string `json:"expires_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// AccessCodeResponse serializes an access code for admin listings.
type AccessCodeResponse struct {
	ID        uint       `json:"id"`
	Code      string     `json:"code"`
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	UseCount  int64      `json:"use_count"`
	CreatedAt time.Time  `json:"created_at"`
}

// AccessCodeListResponse wraps the admin code listing.
type AccessCodeListResponse struct {
	Items []AccessCodeResponse `json:"items"`
}

// NewAccessCodeResponse converts an access code model into a DTO.
func NewAccessCodeResponse(code models.AccessCode) AccessCodeResponse {
	return AccessCodeResponse{
		ID:        code.ID,
		Code:      code.Code,
		Active:    code.Active,
		ExpiresAt: code.ExpiresAt,
		UseCount:  code.UseCount,
		CreatedAt: code.CreatedAt,
	}
}
