package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/models"
)

// PolicyRepository persists the portal's policy document.
type PolicyRepository interface {
	GetLatest(ctx context.Context) (models.GeneralPolicy, error)
	Create(ctx context.Context, policy *models.GeneralPolicy) error
	Update(ctx context.Context, id uint, title, content string) (models.GeneralPolicy, error)
}

type policyRepository struct {
	db *gorm.DB
}

// NewPolicyRepository constructs the policy repository.
func NewPolicyRepository(db *gorm.DB) PolicyRepository {
	return &policyRepository{db: db}
}

func (r *policyRepository) GetLatest(ctx context.Context) (models.GeneralPolicy, error) {
	var policy models.GeneralPolicy
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").First(&policy).Error
	if err != nil {
		return models.GeneralPolicy{}, err
	}
	return policy, nil
}

func (r *policyRepository) Create(ctx context.Context, policy *models.GeneralPolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *policyRepository) Update(ctx context.Context, id uint, title, content string) (models.GeneralPolicy, error) {
	update := r.db.WithContext(ctx).Model(&models.GeneralPolicy{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "content": content})
	if update.Error != nil {
		return models.GeneralPolicy{}, update.Error
	}
	if update.RowsAffected == 0 {
		return models.GeneralPolicy{}, gorm.ErrRecordNotFound
	}

	var policy models.GeneralPolicy
	if err := r.db.WithContext(ctx).First(&policy, id).Error; err != nil {
		return models.GeneralPolicy{}, err
	}
	return policy, nil
}
