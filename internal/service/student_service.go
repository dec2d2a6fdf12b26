package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/models"
	"github.com/scholaris/sis-portal-api/internal/repository"
)

// ErrStudentNotFound indicates the student does not exist or is deleted.
var ErrStudentNotFound = errors.New("student not found")

// StudentListRequest filters admin student listings.
type StudentListRequest struct {
	YearLevelID uint
	Status      string
	Page        int
	PageSize    int
}

// StudentListResponse wraps a paginated student listing.
type StudentListResponse struct {
	Items      []dto.StudentResponse `json:"items"`
	Pagination dto.PaginationMeta    `json:"pagination"`
}

// StudentService exposes enrolled-student lookups for the admin dashboard.
type StudentService interface {
	Get(ctx context.Context, id uint) (dto.StudentResponse, error)
	List(ctx context.Context, req StudentListRequest, actor AuditActor) (StudentListResponse, error)
}

type studentService struct {
	repo   repository.StudentRepository
	audit  AuditRecorder
	logger zerolog.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, audit AuditRecorder, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:   repo,
		audit:  audit,
		logger: logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) Get(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}

	return dto.NewStudentResponse(student), nil
}

func (s *studentService) List(ctx context.Context, req StudentListRequest, actor AuditActor) (StudentListResponse, error) {
	filter := repository.StudentFilter{
		YearLevelID: req.YearLevelID,
		Status:      strings.ToLower(strings.TrimSpace(req.Status)),
		Page:        req.Page,
		PageSize:    req.PageSize,
	}

	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return StudentListResponse{}, err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.NewStudentResponse(student))
	}

	if _, auditErr := s.audit.Record(ctx, AuditEntry{
		Actor:       actor,
		Category:    models.AuditCategorySystem,
		ActionType:  models.AuditActionView,
		Description: "Viewed students by grade level",
		TargetType:  "Student",
	}, models.AuditStatusSuccess, ""); auditErr != nil {
		s.logger.Warn().Err(auditErr).Msg("student view left no audit entry")
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   req.PageSize,
		TotalItems: total,
		TotalPages: calculateTotalPages(total, req.PageSize),
	}

	return StudentListResponse{Items: items, Pagination: pagination}, nil
}
