package dto

import (
	"time"

	"github.com/scholaris/sis-portal-api/internal/models"
)

// GradeLevelCount is the active-student count for one year level.
type GradeLevelCount struct {
	YearLevelID uint   `json:"year_level_id"`
	YearLevel   string `json:"year_level"`
	Students    int64  `json:"students"`
}

// SchoolYearResponse serializes a school year for report lookups.
type SchoolYearResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Active    bool      `json:"active"`
}

// ReportSummaryResponse aggregates the admin dashboard report.
type ReportSummaryResponse struct {
	ActiveStudents         int64                `json:"active_students"`
	GradeLevelDistribution []GradeLevelCount    `json:"grade_level_distribution"`
	SchoolYears            []SchoolYearResponse `json:"school_years"`
	GeneratedAt            time.Time            `json:"generated_at"`
	CacheHit               bool                 `json:"cache_hit"`
}

// NewSchoolYearResponse converts a school year model into a DTO.
func NewSchoolYearResponse(year models.SchoolYear) SchoolYearResponse {
	return SchoolYearResponse{
		ID:        year.ID,
		Name:      year.Name,
		StartDate: year.StartDate,
		EndDate:   year.EndDate,
		Active:    year.Active,
	}
}
