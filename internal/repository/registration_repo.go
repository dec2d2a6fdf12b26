package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/models"
)

// RegistrationFilter narrows registrar listings.
type RegistrationFilter struct {
	Status   string
	Page     int
	PageSize int
}

// RegistrationRepository exposes persistence helpers for registration
// requests. The decision methods re-verify the PENDING status inside the
// write so two concurrent decisions cannot both land.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	GetByID(ctx context.Context, id uint) (models.Registration, error)
	List(ctx context.Context, filter RegistrationFilter) ([]models.Registration, int64, error)
	Approve(ctx context.Context, id uint, decidedBy string, decidedAt time.Time, student *models.Student) error
	Reject(ctx context.Context, id uint, reason, decidedBy string, decidedAt time.Time) error
}

type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository constructs the registration repository.
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *registrationRepository) GetByID(ctx context.Context, id uint) (models.Registration, error) {
	var registration models.Registration
	err := r.db.WithContext(ctx).
		Preload("YearLevel").
		First(&registration, id).Error
	if err != nil {
		return models.Registration{}, err
	}
	return registration, nil
}

func (r *registrationRepository) List(ctx context.Context, filter RegistrationFilter) ([]models.Registration, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Registration{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var registrations []models.Registration
	if err := query.Preload("YearLevel").Find(&registrations).Error; err != nil {
		return nil, 0, err
	}

	return registrations, total, nil
}

func (r *registrationRepository) Approve(ctx context.Context, id uint, decidedBy string, decidedAt time.Time, student *models.Student) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&models.Registration{}).
			Where("id = ?", id).
			Where("status = ?", models.RegistrationStatusPending).
			Updates(map[string]interface{}{
				"status":     models.RegistrationStatusApproved,
				"decided_by": decidedBy,
				"decided_at": decidedAt,
			})
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Create(student).Error
	})
}

func (r *registrationRepository) Reject(ctx context.Context, id uint, reason, decidedBy string, decidedAt time.Time) error {
	update := r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("id = ?", id).
		Where("status = ?", models.RegistrationStatusPending).
		Updates(map[string]interface{}{
			"status":           models.RegistrationStatusRejected,
			"rejection_reason": reason,
			"decided_by":       decidedBy,
			"decided_at":       decidedAt,
		})
	if update.Error != nil {
		return update.Error
	}
	if update.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
