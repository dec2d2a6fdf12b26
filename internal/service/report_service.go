package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/models"
	"github.com/scholaris/sis-portal-api/internal/repository"
)

// ReportService aggregates dashboard figures: active student count,
// grade-level distribution, and the school-year lookup.
type ReportService interface {
	Summary(ctx context.Context, actor AuditActor) (dto.ReportSummaryResponse, error)
}

type reportService struct {
	repo     repository.ReportRepository
	cache    *redis.Client
	cacheTTL time.Duration
	audit    AuditRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

// NewReportService constructs the report service.
func NewReportService(repo repository.ReportRepository, cache *redis.Client, ttl time.Duration, audit AuditRecorder, logger zerolog.Logger) ReportService {
	return &reportService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		audit:    audit,
		logger:   logger.With().Str("component", "report_service").Logger(),
		now:      time.Now,
	}
}

func (s *reportService) Summary(ctx context.Context, actor AuditActor) (dto.ReportSummaryResponse, error) {
	const cacheKey = "reports:summary"
	tracer := otel.Tracer("github.com/scholaris/sis-portal-api/internal/service/report")
	ctx, span := tracer.Start(ctx, "reports.aggregate")
	span.SetAttributes(attribute.String("reports.cache_key", cacheKey))
	defer span.End()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var response dto.ReportSummaryResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				response.CacheHit = true
				span.SetAttributes(attribute.Bool("reports.cache_hit", true))
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read report cache")
			span.RecordError(err)
		}
	}

	activeCount, err := s.repo.CountActiveStudents(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "count_active_students_failed")
		return dto.ReportSummaryResponse{}, err
	}

	distributionRows, err := s.repo.GradeLevelDistribution(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grade_distribution_failed")
		return dto.ReportSummaryResponse{}, err
	}

	schoolYears, err := s.repo.ListSchoolYears(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list_school_years_failed")
		return dto.ReportSummaryResponse{}, err
	}

	summary := s.buildSummary(activeCount, distributionRows, schoolYears)
	span.SetAttributes(
		attribute.Int64("reports.active_students", activeCount),
		attribute.Int("reports.year_levels", len(distributionRows)),
	)

	// A recomputation is the auditable read; cache hits are not re-logged.
	if _, auditErr := s.audit.Record(ctx, AuditEntry{
		Actor:       actor,
		Category:    models.AuditCategoryReport,
		ActionType:  models.AuditActionView,
		Description: "Generated dashboard report summary",
		TargetType:  "Report",
	}, models.AuditStatusSuccess, ""); auditErr != nil {
		s.logger.Warn().Err(auditErr).Msg("report view left no audit entry")
	}

	if s.cache != nil {
		payload, err := json.Marshal(summary)
		if err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store report cache")
				span.RecordError(err)
			}
		}
	}

	return summary, nil
}

func (s *reportService) buildSummary(activeCount int64, rows []repository.GradeLevelRow, years []models.SchoolYear) dto.ReportSummaryResponse {
	distribution := make([]dto.GradeLevelCount, 0, len(rows))
	for _, row := range rows {
		distribution = append(distribution, dto.GradeLevelCount{
			YearLevelID: row.YearLevelID,
			YearLevel:   row.Name,
			Students:    row.Students,
		})
	}

	yearResponses := make([]dto.SchoolYearResponse, 0, len(years))
	for _, year := range years {
		yearResponses = append(yearResponses, dto.NewSchoolYearResponse(year))
	}

	return dto.ReportSummaryResponse{
		ActiveStudents:         activeCount,
		GradeLevelDistribution: distribution,
		SchoolYears:            yearResponses,
		GeneratedAt:            s.now(),
		CacheHit:               false,
	}
}
