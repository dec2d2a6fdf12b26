package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/models"
)

// YearLevelRepository exposes persistence helpers for year level management.
// Soft-deleted rows are excluded from every query through gorm's default
// scope, including the name uniqueness checks.
type YearLevelRepository interface {
	List(ctx context.Context) ([]models.YearLevel, error)
	GetByID(ctx context.Context, id uint) (models.YearLevel, error)
	ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error)
	Create(ctx context.Context, level *models.YearLevel) error
	UpdateName(ctx context.Context, id uint, name string) (models.YearLevel, error)
	SoftDelete(ctx context.Context, id uint) error
}

type yearLevelRepository struct {
	db *gorm.DB
}

// NewYearLevelRepository constructs the year level repository.
func NewYearLevelRepository(db *gorm.DB) YearLevelRepository {
	return &yearLevelRepository{db: db}
}

func (r *yearLevelRepository) List(ctx context.Context) ([]models.YearLevel, error) {
	var levels []models.YearLevel
	err := r.db.WithContext(ctx).Order("name ASC").Find(&levels).Error
	return levels, err
}

func (r *yearLevelRepository) GetByID(ctx context.Context, id uint) (models.YearLevel, error) {
	var level models.YearLevel
	if err := r.db.WithContext(ctx).First(&level, id).Error; err != nil {
		return models.YearLevel{}, err
	}
	return level, nil
}

func (r *yearLevelRepository) ExistsByName(ctx context.Context, name string, excludeID uint) (bool, error) {
	query := r.db.WithContext(ctx).Model(&models.YearLevel{}).Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *yearLevelRepository) Create(ctx context.Context, level *models.YearLevel) error {
	return r.db.WithContext(ctx).Create(level).Error
}

func (r *yearLevelRepository) UpdateName(ctx context.Context, id uint, name string) (models.YearLevel, error) {
	update := r.db.WithContext(ctx).Model(&models.YearLevel{}).
		Where("id = ?", id).
		Update("name", name)
	if update.Error != nil {
		return models.YearLevel{}, update.Error
	}
	if update.RowsAffected == 0 {
		return models.YearLevel{}, gorm.ErrRecordNotFound
	}

	return r.GetByID(ctx, id)
}

func (r *yearLevelRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.YearLevel{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
