package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/models"
	"github.com/scholaris/sis-portal-api/internal/repository"
)

var (
	// ErrYearLevelNotFound indicates the year level does not exist or is deleted.
	ErrYearLevelNotFound = errors.New("year level not found")
	// ErrYearLevelNameTaken indicates another non-deleted year level already uses the name.
	ErrYearLevelNameTaken = errors.New("year level name already exists")
)

// YearLevelService orchestrates year level management.
type YearLevelService interface {
	List(ctx context.Context, actor AuditActor) (dto.YearLevelListResponse, error)
	Add(ctx context.Context, payload dto.YearLevelCreateRequest, actor AuditActor) (dto.YearLevelResponse, error)
	Update(ctx context.Context, id uint, payload dto.YearLevelUpdateRequest, actor AuditActor) (dto.YearLevelResponse, error)
	Delete(ctx context.Context, id uint, actor AuditActor) error
}

type yearLevelService struct {
	repo      repository.YearLevelRepository
	validator *validator.Validate
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewYearLevelService constructs the year level service.
func NewYearLevelService(repo repository.YearLevelRepository, validate *validator.Validate, audit AuditRecorder, logger zerolog.Logger) YearLevelService {
	return &yearLevelService{
		repo:      repo,
		validator: validate,
		audit:     audit,
		logger:    logger.With().Str("component", "year_level_service").Logger(),
	}
}

func (s *yearLevelService) List(ctx context.Context, actor AuditActor) (dto.YearLevelListResponse, error) {
	levels, err := s.repo.List(ctx)
	if err != nil {
		return dto.YearLevelListResponse{}, err
	}

	items := make([]dto.YearLevelResponse, 0, len(levels))
	for _, level := range levels {
		items = append(items, dto.NewYearLevelResponse(level))
	}

	if _, auditErr := s.audit.Record(ctx, AuditEntry{
		Actor:       actor,
		Category:    models.AuditCategoryYearLevel,
		ActionType:  models.AuditActionView,
		Description: "Viewed year levels",
		TargetType:  "YearLevel",
	}, models.AuditStatusSuccess, ""); auditErr != nil {
		s.logger.Warn().Err(auditErr).Msg("year level view left no audit entry")
	}

	return dto.YearLevelListResponse{Items: items}, nil
}

func (s *yearLevelService) Add(ctx context.Context, payload dto.YearLevelCreateRequest, actor AuditActor) (dto.YearLevelResponse, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	if err := s.validator.Struct(payload); err != nil {
		return dto.YearLevelResponse{}, err
	}

	var created models.YearLevel
	err := s.audit.RunLogged(ctx, AuditEntry{
		Actor:       actor,
		Category:    models.AuditCategoryYearLevel,
		ActionType:  models.AuditActionCreate,
		Description: fmt.Sprintf("Added year level %q", payload.Name),
		TargetType:  "YearLevel",
		TargetID:    payload.Name,
	}, func(ctx context.Context) (map[string]interface{}, map[string]interface{}, error) {
		taken, err := s.repo.ExistsByName(ctx, payload.Name, 0)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			return nil, nil, ErrYearLevelNameTaken
		}

		created = models.YearLevel{Name: payload.Name}
		if err := s.repo.Create(ctx, &created); err != nil {
			return nil, nil, err
		}

		return nil, map[string]interface{}{"name": created.Name}, nil
	})
	if err != nil {
		return dto.YearLevelResponse{}, err
	}

	return dto.NewYearLevelResponse(created), nil
}

func (s *yearLevelService) Update(ctx context.Context, id uint, payload dto.YearLevelUpdateRequest, actor AuditActor) (dto.YearLevelResponse, error) {
	payload.Name = strings.TrimSpace(payload.Name)
	if err := s.validator.Struct(payload); err != nil {
		return dto.YearLevelResponse{}, err
	}

	var updated models.YearLevel
	err := s.audit.RunLogged(ctx, AuditEntry{
		Actor:       actor,
		Category:    models.AuditCategoryYearLevel,
		ActionType:  models.AuditActionUpdate,
		Description: fmt.Sprintf("Renamed year level %d to %q", id, payload.Name),
		TargetType:  "YearLevel",
		TargetID:    fmt.Sprintf("%d", id),
	}, func(ctx context.Context) (map[string]interface{}, map[string]interface{}, error) {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrYearLevelNotFound
			}
			return nil, nil, err
		}

		// Self-exclusion: renaming a level to its own name is allowed.
		taken, err := s.repo.ExistsByName(ctx, payload.Name, id)
		if err != nil {
			return nil, nil, err
		}
		if taken {
			return nil, nil, ErrYearLevelNameTaken
		}

		updated, err = s.repo.UpdateName(ctx, id, payload.Name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrYearLevelNotFound
			}
			return nil, nil, err
		}

		return map[string]interface{}{"name": current.Name},
			map[string]interface{}{"name": updated.Name}, nil
	})
	if err != nil {
		return dto.YearLevelResponse{}, err
	}

	return dto.NewYearLevelResponse(updated), nil
}

func (s *yearLevelService) Delete(ctx context.Context, id uint, actor AuditActor) error {
	return s.audit.RunLogged(ctx, AuditEntry{
		Actor:       actor,
		Category:    models.AuditCategoryYearLevel,
		ActionType:  models.AuditActionDelete,
		Description: fmt.Sprintf("Deleted year level %d", id),
		TargetType:  "YearLevel",
		TargetID:    fmt.Sprintf("%d", id),
	}, func(ctx context.Context) (map[string]interface{}, map[string]interface{}, error) {
		current, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrYearLevelNotFound
			}
			return nil, nil, err
		}

		if err := s.repo.SoftDelete(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrYearLevelNotFound
			}
			return nil, nil, err
		}

		return map[string]interface{}{"name": current.Name}, nil, nil
	})
}
