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
	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/models"
	"github.com/scholaris/sis-portal-api/internal/repository"
)

// ErrAccessCodeInvalid covers unknown, inactive, and expired codes alike so
// the public surface never reveals which one it was.
var ErrAccessCodeInvalid = errors.New("Invalid access code")

// ErrAccessCodeNotFound indicates an admin operation targeted a missing code.
var ErrAccessCodeNotFound = errors.New("access code not found")

// RegistrationFormPath is the forms route a validated code redirects to.
const RegistrationFormPath = "/forms/student-registration"

// AccessCodeService validates codes for the public forms surface and lets
// admins mint and retire them.
type AccessCodeService interface {
	Validate(ctx context.Context, raw string) (dto.AccessCodeValidateResponse, error)
	Create(ctx context.Context, payload dto.AccessCodeCreateRequest, actor AuditActor) (dto.AccessCodeResponse, error)
	List(ctx context.Context, actor AuditActor) (dto.AccessCodeListResponse, error)
	Deactivate(ctx context.Context, id uint, actor AuditActor) error
}

type accessCodeService struct {
	repo      repository.AccessCodeRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAccessCodeService constructs the access code service.
func NewAccessCodeService(repo repository.AccessCodeRepository, validate *validator.Validate, audit AuditRecorder, logger zerolog.Logger) AccessCodeService {
	return &accessCodeService{
		repo:      repo,
		validator: validate,
		audit:     audit,
		logger:    logger.With().Str("component", "access_code_service").Logger(),
		now:       time.Now,
	}
}

// NormalizeAccessCode applies the canonical form used for storage and
// comparison: trimmed and uppercased.
func NormalizeAccessCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func (s *accessCodeService) Validate(ctx context.Context, raw string) (dto.AccessCodeValidateResponse, error) {
	code := NormalizeAccessCode(raw)
	if code == "" {
		return dto.AccessCodeValidateResponse{}, ErrAccessCodeInvalid
	}

	record, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AccessCodeValidateResponse{}, ErrAccessCodeInvalid
		}
		return dto.AccessCodeValidateResponse{}, err
	}

	if !accessCodeUsable(record, s.now()) {
		return dto.AccessCodeValidateResponse{}, ErrAccessCodeInvalid
	}

	return dto.AccessCodeValidateResponse{
		Code:         code,
		RedirectPath: fmt.Sprintf("%s?code=%s", RegistrationFormPath, code),
	}, nil
}

func (s *accessCodeService) Create(ctx context.Context, payload dto.AccessCodeCreateRequest, actor AuditActor) (dto.AccessCodeResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AccessCodeResponse{}, err
	}

	var expiresAt *time.Time
	if strings.TrimSpace(payload.ExpiresAt) != "" {
		parsed, err := time.Parse(time.RFC3339, payload.ExpiresAt)
		if err != nil {
			return dto.AccessCodeResponse{}, err
		}
		expiresAt = &parsed
	}

	record := models.AccessCode{
		Code:      generateAccessCode(),
		Active:    true,
		ExpiresAt: expiresAt,
	}

	err := s.audit.RunLogged(ctx, AuditEntry{
		Actor:       actor,
		Category:    models.AuditCategoryAccessCode,
		ActionType:  models.AuditActionCreate,
		Description: "Generated registration access code",
		TargetType:  "AccessCode",
		TargetID:    record.Code,
	}, func(ctx context.Context) (map[string]interface{}, map[string]interface{}, error) {
		if err := s.repo.Create(ctx, &record); err != nil {
			return nil, nil, err
		}
		return nil, map[string]interface{}{"code": record.Code, "active": true}, nil
	})
	if err != nil {
		return dto.AccessCodeResponse{}, err
	}

	return dto.NewAccessCodeResponse(record), nil
}

func (s *accessCodeService) List(ctx context.Context, actor AuditActor) (dto.AccessCodeListResponse, error) {
	codes, err := s.repo.List(ctx)
	if err != nil {
		return dto.AccessCodeListResponse{}, err
	}

	items := make([]dto.AccessCodeResponse, 0, len(codes))
	for _, code := range codes {
		items = append(items, dto.NewAccessCodeResponse(code))
	}

	if _, auditErr := s.audit.Record(ctx, AuditEntry{
		Actor:       actor,
		Category:    models.AuditCategoryAccessCode,
		ActionType:  models.AuditActionView,
		Description: "Viewed access codes",
		TargetType:  "AccessCode",
	}, models.AuditStatusSuccess, ""); auditErr != nil {
		s.logger.Warn().Err(auditErr).Msg("access code view left no audit entry")
	}

	return dto.AccessCodeListResponse{Items: items}, nil
}

func (s *accessCodeService) Deactivate(ctx context.Context, id uint, actor AuditActor) error {
	return s.audit.RunLogged(ctx, AuditEntry{
		Actor:       actor,
		Category:    models.AuditCategoryAccessCode,
		ActionType:  models.AuditActionUpdate,
		Description: fmt.Sprintf("Deactivated access code %d", id),
		TargetType:  "AccessCode",
		TargetID:    fmt.Sprintf("%d", id),
	}, func(ctx context.Context) (map[string]interface{}, map[string]interface{}, error) {
		if err := s.repo.Deactivate(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrAccessCodeNotFound
			}
			return nil, nil, err
		}
		return map[string]interface{}{"active": true}, map[string]interface{}{"active": false}, nil
	})
}

func accessCodeUsable(code models.AccessCode, now time.Time) bool {
	if !code.Active {
		return false
	}
	if code.ExpiresAt != nil && now.After(*code.ExpiresAt) {
		return false
	}
	return true
}

func generateAccessCode() string {
	compact := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "REG-" + compact[:8]
}
