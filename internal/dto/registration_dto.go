package dto

import (
	"time"

	"github.com/scholaris/sis-portal-api/internal/models"
)

// RegistrationSubmitRequest is the public form payload for a new
// registration request.
type RegistrationSubmitRequest struct {
	AccessCode  string `json:"access_code" validate:"required"`
	FirstName   string `json:"first_name" validate:"required,min=1,max=100"`
	MiddleName  string `json:"middle_name" validate:"omitempty,max=100"`
	LastName    string `json:"last_name" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email"`
	BirthDate   string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	YearLevelID uint   `json:"year_level_id" validate:"required,gt=0"`
}

// RegistrationListRequest filters the registrar listing.
type RegistrationListRequest struct {
	Status   string
	Page     int
	PageSize int
}

// RegistrationRejectRequest carries the rejection reason.
type RegistrationRejectRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=2000"`
}

// RegistrationResponse serializes a registration request.
type RegistrationResponse struct {
	ID              uint       `json:"id"`
	ReferenceNo     string     `json:"reference_no"`
	FirstName       string     `json:"first_name"`
	MiddleName      string     `json:"middle_name,omitempty"`
	LastName        string     `json:"last_name"`
	Email           string     `json:"email"`
	BirthDate       *time.Time `json:"birth_date,omitempty"`
	YearLevelID     uint       `json:"year_level_id"`
	YearLevelName   string     `json:"year_level_name,omitempty"`
	SchoolYearID    uint       `json:"school_year_id,omitempty"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	DecidedBy       string     `json:"decided_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// RegistrationListResponse wraps a paginated registration listing.
type RegistrationListResponse struct {
	Items      []RegistrationResponse `json:"items"`
	Pagination PaginationMeta         `json:"pagination"`
}

// RegistrationDecisionResponse is returned by approve/reject operations.
type RegistrationDecisionResponse struct {
	Registration RegistrationResponse `json:"registration"`
	Student      *StudentResponse     `json:"student,omitempty"`
}

// StudentResponse serializes an enrolled student.
type StudentResponse struct {
	ID           uint      `json:"id"`
	StudentNo    string    `json:"student_no"`
	FirstName    string    `json:"first_name"`
	MiddleName   string    `json:"middle_name,omitempty"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	YearLevelID  uint      `json:"year_level_id"`
	SchoolYearID uint      `json:"school_year_id,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewRegistrationResponse converts a registration model into a DTO.
func NewRegistrationResponse(registration models.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:              registration.ID,
		ReferenceNo:     registration.ReferenceNo,
		FirstName:       registration.FirstName,
		MiddleName:      registration.MiddleName,
		LastName:        registration.LastName,
		Email:           registration.Email,
		BirthDate:       registration.BirthDate,
		YearLevelID:     registration.YearLevelID,
		YearLevelName:   registration.YearLevel.Name,
		SchoolYearID:    registration.SchoolYearID,
		Status:          registration.Status,
		RejectionReason: registration.RejectionReason,
		DecidedBy:       registration.DecidedBy,
		DecidedAt:       registration.DecidedAt,
		CreatedAt:       registration.CreatedAt,
	}
}

// NewStudentResponse converts a student model into a DTO.
func NewStudentResponse(student models.Student) StudentResponse {
	return StudentResponse{
		ID:           student.ID,
		StudentNo:    student.StudentNo,
		FirstName:    student.FirstName,
		MiddleName:   student.MiddleName,
		LastName:     student.LastName,
		Email:        student.Email,
		YearLevelID:  student.YearLevelID,
		SchoolYearID: student.SchoolYearID,
		Status:       student.Status,
		CreatedAt:    student.CreatedAt,
	}
}
