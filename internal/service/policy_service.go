package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/models"
	"github.com/scholaris/sis-portal-api/internal/repository"
)

// ErrPolicyNotFound indicates no policy document has been saved yet.
var ErrPolicyNotFound = errors.New("policy not found")

// ErrPolicyContentEmpty indicates the content was empty after sanitization.
var ErrPolicyContentEmpty = errors.New("policy content is empty")

// PolicyService manages the portal's policy document.
type PolicyService interface {
	Get(ctx context.Context) (dto.PolicyResponse, error)
	Save(ctx context.Context, payload dto.PolicySaveRequest, actor AuditActor) (dto.PolicyResponse, error)
}

type policyService struct {
	repo      repository.PolicyRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	audit     AuditRecorder
	logger    zerolog.Logger
}

// NewPolicyService constructs the policy service.
func NewPolicyService(repo repository.PolicyRepository, validate *validator.Validate, audit AuditRecorder, logger zerolog.Logger) PolicyService {
	return &policyService{
		repo:      repo,
		validator: validate,
		sanitizer: bluemonday.UGCPolicy(),
		audit:     audit,
		logger:    logger.With().Str("component", "policy_service").Logger(),
	}
}

func (s *policyService) Get(ctx context.Context) (dto.PolicyResponse, error) {
	policy, err := s.repo.GetLatest(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PolicyResponse{}, ErrPolicyNotFound
		}
		return dto.PolicyResponse{}, err
	}

	return dto.NewPolicyResponse(policy), nil
}

// Save updates the most recent non-deleted policy row or creates the first
// one, so at most one document is ever active.
func (s *policyService) Save(ctx context.Context, payload dto.PolicySaveRequest, actor AuditActor) (dto.PolicyResponse, error) {
	payload.Title = strings.TrimSpace(payload.Title)
	if err := s.validator.Struct(payload); err != nil {
		return dto.PolicyResponse{}, err
	}

	content := strings.TrimSpace(s.sanitizer.Sanitize(payload.Content))
	if content == "" {
		return dto.PolicyResponse{}, ErrPolicyContentEmpty
	}

	current, err := s.repo.GetLatest(ctx)
	creating := false
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.PolicyResponse{}, err
		}
		creating = true
	}

	actionType := models.AuditActionUpdate
	if creating {
		actionType = models.AuditActionCreate
	}

	var saved models.GeneralPolicy
	err = s.audit.RunLogged(ctx, AuditEntry{
		Actor:       actor,
		Category:    models.AuditCategoryPolicy,
		ActionType:  actionType,
		Description: "Saved general policy",
		TargetType:  "GeneralPolicy",
	}, func(ctx context.Context) (map[string]interface{}, map[string]interface{}, error) {
		if creating {
			saved = models.GeneralPolicy{Title: payload.Title, Content: content}
			if err := s.repo.Create(ctx, &saved); err != nil {
				return nil, nil, err
			}
			return nil, map[string]interface{}{"title": saved.Title}, nil
		}

		var updateErr error
		saved, updateErr = s.repo.Update(ctx, current.ID, payload.Title, content)
		if updateErr != nil {
			return nil, nil, updateErr
		}

		return map[string]interface{}{"title": current.Title},
			map[string]interface{}{"title": saved.Title}, nil
	})
	if err != nil {
		return dto.PolicyResponse{}, err
	}

	return dto.NewPolicyResponse(saved), nil
}
