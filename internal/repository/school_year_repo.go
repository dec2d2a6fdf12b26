package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/models"
)

// SchoolYearRepository exposes school year lookups.
type SchoolYearRepository interface {
	List(ctx context.Context) ([]models.SchoolYear, error)
	GetActive(ctx context.Context) (models.SchoolYear, error)
}

type schoolYearRepository struct {
	db *gorm.DB
}

// NewSchoolYearRepository constructs the school year repository.
func NewSchoolYearRepository(db *gorm.DB) SchoolYearRepository {
	return &schoolYearRepository{db: db}
}

func (r *schoolYearRepository) List(ctx context.Context) ([]models.SchoolYear, error) {
	var years []models.SchoolYear
	err := r.db.WithContext(ctx).Order("start_date DESC").Find(&years).Error
	return years, err
}

func (r *schoolYearRepository) GetActive(ctx context.Context) (models.SchoolYear, error) {
	var year models.SchoolYear
	if err := r.db.WithContext(ctx).Where("active = ?", true).First(&year).Error; err != nil {
		return models.SchoolYear{}, err
	}
	return year, nil
}
