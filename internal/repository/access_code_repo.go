package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/models"
)

// AccessCodeRepository persists registration access codes.
type AccessCodeRepository interface {
	Create(ctx context.Context, code *models.AccessCode) error
	GetByCode(ctx context.Context, code string) (models.AccessCode, error)
	List(ctx context.Context) ([]models.AccessCode, error)
	IncrementUse(ctx context.Context, id uint) error
	Deactivate(ctx context.Context, id uint) error
}

type accessCodeRepository struct {
	db *gorm.DB
}

// NewAccessCodeRepository constructs the access code repository.
func NewAccessCodeRepository(db *gorm.DB) AccessCodeRepository {
	return &accessCodeRepository{db: db}
}

func (r *accessCodeRepository) Create(ctx context.Context, code *models.AccessCode) error {
	return r.db.WithContext(ctx).Create(code).Error
}

func (r *accessCodeRepository) GetByCode(ctx context.Context, code string) (models.AccessCode, error) {
	var record models.AccessCode
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&record).Error; err != nil {
		return models.AccessCode{}, err
	}
	return record, nil
}

func (r *accessCodeRepository) List(ctx context.Context) ([]models.AccessCode, error) {
	var codes []models.AccessCode
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&codes).Error
	return codes, err
}

func (r *accessCodeRepository) IncrementUse(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.AccessCode{}).
		Where("id = ?", id).
		UpdateColumn("use_count", gorm.Expr("use_count + 1")).Error
}

func (r *accessCodeRepository) Deactivate(ctx context.Context, id uint) error {
	update := r.db.WithContext(ctx).Model(&models.AccessCode{}).
		Where("id = ?", id).
		Where("active = ?", true).
		Update("active", false)
	if update.Error != nil {
		return update.Error
	}
	if update.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
