package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/models"
	"github.com/scholaris/sis-portal-api/internal/repository"
)

// Decision errors carry the exact messages shown to registrars.
var (
	ErrRegistrationNotFound        = errors.New("Registration not found")
	ErrRegistrationAlreadyApproved = errors.New("Registration is already approved")
	ErrRegistrationAlreadyRejected = errors.New("Registration is already rejected")
)

// RegistrationService orchestrates student registration flows: public
// submission and registrar decisions.
type RegistrationService interface {
	Submit(ctx context.Context, payload dto.RegistrationSubmitRequest) (dto.RegistrationResponse, error)
	List(ctx context.Context, req dto.RegistrationListRequest) (dto.RegistrationListResponse, error)
	Approve(ctx context.Context, id uint, actor AuditActor) (dto.RegistrationDecisionResponse, error)
	Reject(ctx context.Context, id uint, reason string, actor AuditActor) (dto.RegistrationDecisionResponse, error)
}

type registrationService struct {
	repo        repository.RegistrationRepository
	yearLevels  repository.YearLevelRepository
	schoolYears repository.SchoolYearRepository
	accessCodes repository.AccessCodeRepository
	validator   *validator.Validate
	audit       AuditRecorder
	events      RegistrationEventPublisher
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewRegistrationService constructs the registration service.
func NewRegistrationService(
	repo repository.RegistrationRepository,
	yearLevels repository.YearLevelRepository,
	schoolYears repository.SchoolYearRepository,
	accessCodes repository.AccessCodeRepository,
	validate *validator.Validate,
	audit AuditRecorder,
	events RegistrationEventPublisher,
	logger zerolog.Logger,
) RegistrationService {
	return &registrationService{
		repo:        repo,
		yearLevels:  yearLevels,
		schoolYears: schoolYears,
		accessCodes: accessCodes,
		validator:   validate,
		audit:       audit,
		events:      events,
		logger:      logger.With().Str("component", "registration_service").Logger(),
		tracer:      otel.Tracer("github.com/scholaris/sis-portal-api/internal/service/registration"),
		now:         time.Now,
	}
}

func (s *registrationService) Submit(ctx context.Context, payload dto.RegistrationSubmitRequest) (dto.RegistrationResponse, error) {
	payload.FirstName = strings.TrimSpace(payload.FirstName)
	payload.MiddleName = strings.TrimSpace(payload.MiddleName)
	payload.LastName = strings.TrimSpace(payload.LastName)
	payload.Email = strings.TrimSpace(payload.Email)
	if err := s.validator.Struct(payload); err != nil {
		return dto.RegistrationResponse{}, err
	}

	code := NormalizeAccessCode(payload.AccessCode)
	accessCode, err := s.accessCodes.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RegistrationResponse{}, ErrAccessCodeInvalid
		}
		return dto.RegistrationResponse{}, err
	}
	if !accessCodeUsable(accessCode, s.now()) {
		return dto.RegistrationResponse{}, ErrAccessCodeInvalid
	}

	if _, err := s.yearLevels.GetByID(ctx, payload.YearLevelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.RegistrationResponse{}, ErrYearLevelNotFound
		}
		return dto.RegistrationResponse{}, err
	}

	var schoolYearID uint
	if year, err := s.schoolYears.GetActive(ctx); err == nil {
		schoolYearID = year.ID
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.RegistrationResponse{}, err
	}

	var birthDate *time.Time
	if payload.BirthDate != "" {
		parsed, parseErr := time.Parse("2006-01-02", payload.BirthDate)
		if parseErr != nil {
			return dto.RegistrationResponse{}, parseErr
		}
		birthDate = &parsed
	}

	registration := models.Registration{
		ReferenceNo:  generateReferenceNo(),
		FirstName:    payload.FirstName,
		MiddleName:   payload.MiddleName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		BirthDate:    birthDate,
		YearLevelID:  payload.YearLevelID,
		SchoolYearID: schoolYearID,
		AccessCode:   code,
		Status:       models.RegistrationStatusPending,
	}

	err = s.audit.RunLogged(ctx, AuditEntry{
		Category:    models.AuditCategoryRegistration,
		ActionType:  models.AuditActionCreate,
		Description: fmt.Sprintf("Submitted registration for %s %s", payload.FirstName, payload.LastName),
		TargetType:  "Registration",
		TargetID:    registration.ReferenceNo,
		Metadata:    map[string]interface{}{"access_code": code},
	}, func(ctx context.Context) (map[string]interface{}, map[string]interface{}, error) {
		if err := s.repo.Create(ctx, &registration); err != nil {
			return nil, nil, err
		}
		return nil, map[string]interface{}{
			"reference_no": registration.ReferenceNo,
			"status":       registration.Status,
		}, nil
	})
	if err != nil {
		return dto.RegistrationResponse{}, err
	}

	if err := s.accessCodes.IncrementUse(ctx, accessCode.ID); err != nil {
		s.logger.Warn().Err(err).Str("code", code).Msg("failed to bump access code use count")
	}

	if s.events != nil {
		s.events.Publish(RegistrationEvent{
			Type:           RegistrationEventSubmitted,
			RegistrationID: registration.ID,
			ReferenceNo:    registration.ReferenceNo,
			Status:         registration.Status,
			OccurredAt:     s.now(),
		})
	}

	return dto.NewRegistrationResponse(registration), nil
}

func (s *registrationService) List(ctx context.Context, req dto.RegistrationListRequest) (dto.RegistrationListResponse, error) {
	filter := repository.RegistrationFilter{
		Status:   strings.ToUpper(strings.TrimSpace(req.Status)),
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	registrations, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.RegistrationListResponse{}, err
	}

	items := make([]dto.RegistrationResponse, 0, len(registrations))
	for _, registration := range registrations {
		items = append(items, dto.NewRegistrationResponse(registration))
	}

	pagination := dto.PaginationMeta{
		Page:       maxInt(req.Page, 1),
		PageSize:   req.PageSize,
		TotalItems: total,
	}
	pagination.TotalPages = calculateTotalPages(total, req.PageSize)

	return dto.RegistrationListResponse{Items: items, Pagination: pagination}, nil
}

func (s *registrationService) Approve(ctx context.Context, id uint, actor AuditActor) (dto.RegistrationDecisionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "registration.approve",
		trace.WithAttributes(attribute.Int64("registration.id", int64(id))))
	defer span.End()

	var (
		approved models.Registration
		student  models.Student
	)

	err := s.audit.RunLogged(ctx, AuditEntry{
		Actor:       actor,
		Category:    models.AuditCategoryRegistration,
		ActionType:  models.AuditActionApprove,
		Description: fmt.Sprintf("Approved registration %d", id),
		TargetType:  "Registration",
		TargetID:    fmt.Sprintf("%d", id),
	}, func(ctx context.Context) (map[string]interface{}, map[string]interface{}, error) {
		registration, err := s.getPending(ctx, id)
		if err != nil {
			return nil, nil, err
		}

		decidedAt := s.now()
		student = models.Student{
			StudentNo:    generateStudentNo(decidedAt),
			FirstName:    registration.FirstName,
			MiddleName:   registration.MiddleName,
			LastName:     registration.LastName,
			Email:        registration.Email,
			YearLevelID:  registration.YearLevelID,
			SchoolYearID: registration.SchoolYearID,
			Status:       models.StudentStatusActive,
		}

		if err := s.repo.Approve(ctx, id, actorName(actor), decidedAt, &student); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Lost a race: re-read for the accurate conflict error.
				_, guardErr := s.getPending(ctx, id)
				if guardErr != nil {
					return nil, nil, guardErr
				}
				return nil, nil, err
			}
			return nil, nil, err
		}

		approved, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}

		return map[string]interface{}{"status": models.RegistrationStatusPending},
			map[string]interface{}{
				"status":     models.RegistrationStatusApproved,
				"student_no": student.StudentNo,
			}, nil
	})
	if err != nil {
		span.RecordError(err)
		return dto.RegistrationDecisionResponse{}, err
	}

	if s.events != nil {
		s.events.Publish(RegistrationEvent{
			Type:           RegistrationEventApproved,
			RegistrationID: approved.ID,
			ReferenceNo:    approved.ReferenceNo,
			Status:         approved.Status,
			DecidedBy:      actorName(actor),
			OccurredAt:     s.now(),
		})
	}

	studentResponse := dto.NewStudentResponse(student)
	return dto.RegistrationDecisionResponse{
		Registration: dto.NewRegistrationResponse(approved),
		Student:      &studentResponse,
	}, nil
}

func (s *registrationService) Reject(ctx context.Context, id uint, reason string, actor AuditActor) (dto.RegistrationDecisionResponse, error) {
	ctx, span := s.tracer.Start(ctx, "registration.reject",
		trace.WithAttributes(attribute.Int64("registration.id", int64(id))))
	defer span.End()

	reason = strings.TrimSpace(reason)
	if err := s.validator.Struct(dto.RegistrationRejectRequest{Reason: reason}); err != nil {
		return dto.RegistrationDecisionResponse{}, err
	}

	var rejected models.Registration
	err := s.audit.RunLogged(ctx, AuditEntry{
		Actor:       actor,
		Category:    models.AuditCategoryRegistration,
		ActionType:  models.AuditActionReject,
		Description: fmt.Sprintf("Rejected registration %d", id),
		TargetType:  "Registration",
		TargetID:    fmt.Sprintf("%d", id),
		Metadata:    map[string]interface{}{"reason": reason},
	}, func(ctx context.Context) (map[string]interface{}, map[string]interface{}, error) {
		if _, err := s.getPending(ctx, id); err != nil {
			return nil, nil, err
		}

		if err := s.repo.Reject(ctx, id, reason, actorName(actor), s.now()); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				_, guardErr := s.getPending(ctx, id)
				if guardErr != nil {
					return nil, nil, guardErr
				}
				return nil, nil, err
			}
			return nil, nil, err
		}

		var err error
		rejected, err = s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, nil, err
		}

		return map[string]interface{}{"status": models.RegistrationStatusPending},
			map[string]interface{}{
				"status": models.RegistrationStatusRejected,
				"reason": reason,
			}, nil
	})
	if err != nil {
		span.RecordError(err)
		return dto.RegistrationDecisionResponse{}, err
	}

	if s.events != nil {
		s.events.Publish(RegistrationEvent{
			Type:           RegistrationEventRejected,
			RegistrationID: rejected.ID,
			ReferenceNo:    rejected.ReferenceNo,
			Status:         rejected.Status,
			DecidedBy:      actorName(actor),
			OccurredAt:     s.now(),
		})
	}

	return dto.RegistrationDecisionResponse{Registration: dto.NewRegistrationResponse(rejected)}, nil
}

// getPending loads the registration and maps terminal states to their
// decision guard errors.
func (s *registrationService) getPending(ctx context.Context, id uint) (models.Registration, error) {
	registration, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Registration{}, ErrRegistrationNotFound
		}
		return models.Registration{}, err
	}

	switch registration.Status {
	case models.RegistrationStatusApproved:
		return models.Registration{}, ErrRegistrationAlreadyApproved
	case models.RegistrationStatusRejected:
		return models.Registration{}, ErrRegistrationAlreadyRejected
	}

	return registration, nil
}

func actorName(actor AuditActor) string {
	return normalizeActorName(actor.Name)
}

func generateReferenceNo() string {
	compact := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "APP-" + compact[:10]
}

func generateStudentNo(now time.Time) string {
	compact := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("S%d-%s", now.Year(), compact[:8])
}
