package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/models"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.SchoolYear{},
		&models.YearLevel{},
		&models.AccessCode{},
		&models.Registration{},
		&models.Student{},
		&models.GeneralPolicy{},
		&models.AuditLog{},
	))
	return db
}

func seedPendingRegistration(t *testing.T, db *gorm.DB) models.Registration {
	t.Helper()

	level := models.YearLevel{Name: "Grade 7"}
	require.NoError(t, db.Create(&level).Error)

	registration := models.Registration{
		ReferenceNo: "APP-" + time.Now().Format("150405.000000000"),
		FirstName:   "Maria",
		LastName:    "Santos",
		Email:       "maria.santos@example.com",
		YearLevelID: level.ID,
		Status:      models.RegistrationStatusPending,
	}
	require.NoError(t, db.Create(&registration).Error)
	return registration
}

func TestRegistrationRepositoryApproveIsAtomic(t *testing.T) {
	db := setupTestDB(t, "registration_repo_approve")
	repo := NewRegistrationRepository(db)
	registration := seedPendingRegistration(t, db)

	student := models.Student{
		StudentNo:   "S2026-ABCD1234",
		FirstName:   registration.FirstName,
		LastName:    registration.LastName,
		Email:       registration.Email,
		YearLevelID: registration.YearLevelID,
		Status:      models.StudentStatusActive,
	}
	decidedAt := time.Now()
	require.NoError(t, repo.Approve(context.Background(), registration.ID, "Rico Dalisay", decidedAt, &student))

	stored, err := repo.GetByID(context.Background(), registration.ID)
	require.NoError(t, err)
	require.Equal(t, models.RegistrationStatusApproved, stored.Status)
	require.Equal(t, "Rico Dalisay", stored.DecidedBy)
	require.NotNil(t, stored.DecidedAt)

	var count int64
	require.NoError(t, db.Model(&models.Student{}).Count(&count).Error)
	require.Equal(t, int64(1), count)

	// A second decision must find zero pending rows and create nothing.
	second := models.Student{StudentNo: "S2026-EFGH5678", FirstName: "Maria", LastName: "Santos", Email: "maria.santos@example.com", YearLevelID: registration.YearLevelID, Status: models.StudentStatusActive}
	err = repo.Approve(context.Background(), registration.ID, "Rico Dalisay", time.Now(), &second)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, db.Model(&models.Student{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestRegistrationRepositoryRejectOnlyPending(t *testing.T) {
	db := setupTestDB(t, "registration_repo_reject")
	repo := NewRegistrationRepository(db)
	registration := seedPendingRegistration(t, db)

	require.NoError(t, repo.Reject(context.Background(), registration.ID, "incomplete documents", "Rico Dalisay", time.Now()))

	stored, err := repo.GetByID(context.Background(), registration.ID)
	require.NoError(t, err)
	require.Equal(t, models.RegistrationStatusRejected, stored.Status)
	require.Equal(t, "incomplete documents", stored.RejectionReason)

	err = repo.Reject(context.Background(), registration.ID, "again", "Rico Dalisay", time.Now())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRegistrationRepositoryListFiltersByStatus(t *testing.T) {
	db := setupTestDB(t, "registration_repo_list")
	repo := NewRegistrationRepository(db)

	first := seedPendingRegistration(t, db)
	require.NoError(t, db.Model(&models.Registration{}).Where("id = ?", first.ID).Update("status", models.RegistrationStatusApproved).Error)
	seedPendingRegistration(t, db)
	seedPendingRegistration(t, db)

	pending, total, err := repo.List(context.Background(), RegistrationFilter{Status: models.RegistrationStatusPending, PageSize: 10})
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, pending, 2)

	all, total, err := repo.List(context.Background(), RegistrationFilter{PageSize: 1, Page: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, all, 1)
}
