package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/models"
)

// GradeLevelRow is one aggregation row of the grade-level distribution.
type GradeLevelRow struct {
	YearLevelID uint
	Name        string
	Students    int64
}

// ReportRepository supplies aggregates for the admin dashboard reports.
type ReportRepository interface {
	CountActiveStudents(ctx context.Context) (int64, error)
	GradeLevelDistribution(ctx context.Context) ([]GradeLevelRow, error)
	ListSchoolYears(ctx context.Context) ([]models.SchoolYear, error)
}

type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository constructs the report repository.
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CountActiveStudents(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("status = ?", models.StudentStatusActive).
		Count(&count).Error
	return count, err
}

func (r *reportRepository) GradeLevelDistribution(ctx context.Context) ([]GradeLevelRow, error) {
	var rows []GradeLevelRow
	err := r.db.WithContext(ctx).
		Model(&models.YearLevel{}).
		Select("year_levels.id AS year_level_id, year_levels.name AS name, COUNT(students.id) AS students").
		Joins("LEFT JOIN students ON students.year_level_id = year_levels.id AND students.status = ? AND students.deleted_at IS NULL", models.StudentStatusActive).
		Where("year_levels.deleted_at IS NULL").
		Group("year_levels.id, year_levels.name").
		Order("year_levels.name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepository) ListSchoolYears(ctx context.Context) ([]models.SchoolYear, error) {
	var years []models.SchoolYear
	err := r.db.WithContext(ctx).Order("start_date DESC").Find(&years).Error
	return years, err
}
