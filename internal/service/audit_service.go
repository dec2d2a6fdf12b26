package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/datatypes"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/models"
	"github.com/scholaris/sis-portal-api/internal/repository"
)

// ErrAuditWrite indicates the mutation itself committed but the audit entry
// could not be persisted. Callers see this as a distinct failure so
// audit-trail gaps are detectable instead of silently swallowed.
var ErrAuditWrite = errors.New("audit entry could not be written")

// SystemActor is recorded when no authenticated actor is available.
const SystemActor = "System"

// AuditActor identifies who performed an action.
type AuditActor struct {
	Name string
	Role string
}

// AuditEntry describes one auditable action. Status and error message are
// filled in by the recorder based on the outcome.
type AuditEntry struct {
	Actor       AuditActor
	Category    string
	ActionType  string
	Description string
	TargetType  string
	TargetID    string
	Severity    string
	Metadata    map[string]interface{}
	OldValues   map[string]interface{}
	NewValues   map[string]interface{}
}

// MutationFunc is a state change wrapped by RunLogged. It returns the
// before/after snapshots to attach to the audit entry.
type MutationFunc func(ctx context.Context) (oldValues, newValues map[string]interface{}, err error)

// AuditRecorder is the write side of the audit trail, consumed by every
// service with auditable operations.
type AuditRecorder interface {
	Record(ctx context.Context, entry AuditEntry, status, errorMessage string) (dto.AuditLogResponse, error)
	RunLogged(ctx context.Context, entry AuditEntry, fn MutationFunc) error
}

// AuditService exposes the audit trail: recording entries, wrapping
// mutations, and the operator log view.
type AuditService interface {
	AuditRecorder
	List(ctx context.Context, req dto.SystemLogListRequest) (dto.SystemLogListResponse, error)
}

type auditService struct {
	repo     repository.AuditLogRepository
	location *time.Location
	logger   zerolog.Logger
	now      func() time.Time
}

// NewAuditService constructs the audit service. Timestamps in the log view
// are formatted in the supplied location.
func NewAuditService(repo repository.AuditLogRepository, location *time.Location, logger zerolog.Logger) AuditService {
	if location == nil {
		location = time.UTC
	}

	return &auditService{
		repo:     repo,
		location: location,
		logger:   logger.With().Str("component", "audit_service").Logger(),
		now:      time.Now,
	}
}

func (s *auditService) Record(ctx context.Context, entry AuditEntry, status, errorMessage string) (dto.AuditLogResponse, error) {
	if strings.TrimSpace(entry.Category) == "" {
		return dto.AuditLogResponse{}, fmt.Errorf("action category is required")
	}
	if strings.TrimSpace(entry.ActionType) == "" {
		return dto.AuditLogResponse{}, fmt.Errorf("action type is required")
	}
	if strings.TrimSpace(entry.TargetType) == "" {
		return dto.AuditLogResponse{}, fmt.Errorf("target type is required")
	}

	model := models.AuditLog{
		User:           normalizeActorName(entry.Actor.Name),
		Role:           normalizeActorRole(entry.Actor.Role),
		ActionCategory: strings.ToUpper(strings.TrimSpace(entry.Category)),
		ActionType:     strings.ToUpper(strings.TrimSpace(entry.ActionType)),
		Description:    strings.TrimSpace(entry.Description),
		TargetType:     strings.TrimSpace(entry.TargetType),
		TargetID:       strings.TrimSpace(entry.TargetID),
		Status:         normalizeAuditStatus(status),
		SeverityLevel:  severityFor(entry.Severity, status),
		ErrorMessage:   strings.TrimSpace(errorMessage),
		Metadata:       jsonMap(entry.Metadata),
		OldValues:      jsonMap(entry.OldValues),
		NewValues:      jsonMap(entry.NewValues),
		CreatedAt:      s.now().In(s.location),
	}

	if err := s.repo.Create(ctx, &model); err != nil {
		s.logger.Error().Err(err).
			Str("category", model.ActionCategory).
			Str("action", model.ActionType).
			Msg("failed to persist audit entry")
		return dto.AuditLogResponse{}, fmt.Errorf("%w: %v", ErrAuditWrite, err)
	}

	return dto.NewAuditLogResponse(model), nil
}

// RunLogged executes the mutation and writes exactly one terminal audit
// entry for the attempt. The mutation's own error is always returned
// unchanged; a SUCCESS entry that fails to persist surfaces as ErrAuditWrite
// so operators can detect the audit gap.
func (s *auditService) RunLogged(ctx context.Context, entry AuditEntry, fn MutationFunc) error {
	oldValues, newValues, mutationErr := fn(ctx)
	entry.OldValues = oldValues
	entry.NewValues = newValues

	if mutationErr != nil {
		if _, auditErr := s.Record(ctx, entry, models.AuditStatusFailed, mutationErr.Error()); auditErr != nil {
			s.logger.Error().Err(auditErr).Msg("failed mutation left no audit entry")
		}
		return mutationErr
	}

	if _, auditErr := s.Record(ctx, entry, models.AuditStatusSuccess, ""); auditErr != nil {
		return auditErr
	}

	return nil
}

func (s *auditService) List(ctx context.Context, req dto.SystemLogListRequest) (dto.SystemLogListResponse, error) {
	filter := repository.AuditLogFilter{
		Category: strings.ToUpper(strings.TrimSpace(req.Category)),
		Status:   strings.ToUpper(strings.TrimSpace(req.Status)),
		Limit:    req.Limit,
	}

	entries, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.SystemLogListResponse{}, err
	}

	items := make([]dto.SystemLogResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewSystemLogResponse(entry, s.location))
	}

	return dto.SystemLogListResponse{Items: items, Total: total}, nil
}

func normalizeActorName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return SystemActor
	}
	return name
}

func normalizeActorRole(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return SystemActor
	}
	return role
}

func normalizeAuditStatus(status string) string {
	switch strings.ToUpper(strings.TrimSpace(status)) {
	case models.AuditStatusFailed:
		return models.AuditStatusFailed
	case models.AuditStatusWarning:
		return models.AuditStatusWarning
	default:
		return models.AuditStatusSuccess
	}
}

func severityFor(severity, status string) string {
	if s := strings.ToUpper(strings.TrimSpace(severity)); s != "" {
		return s
	}
	switch normalizeAuditStatus(status) {
	case models.AuditStatusFailed:
		return models.AuditSeverityError
	case models.AuditStatusWarning:
		return models.AuditSeverityWarning
	default:
		return models.AuditSeverityInfo
	}
}

func jsonMap(values map[string]interface{}) datatypes.JSONMap {
	if values == nil {
		return nil
	}
	data := datatypes.JSONMap{}
	for key, value := range values {
		data[key] = value
	}
	return data
}
