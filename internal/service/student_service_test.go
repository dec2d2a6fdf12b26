package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/models"
	"github.com/scholaris/sis-portal-api/internal/repository"
)

func setupStudentFixture(t *testing.T) (StudentService, []models.YearLevel) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:student_svc?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.YearLevel{}, &models.Student{}, &models.AuditLog{}))
	require.NoError(t, db.Exec("DELETE FROM students").Error)
	require.NoError(t, db.Exec("DELETE FROM year_levels").Error)

	grade7 := models.YearLevel{Name: "Grade 7"}
	grade8 := models.YearLevel{Name: "Grade 8"}
	require.NoError(t, db.Create(&grade7).Error)
	require.NoError(t, db.Create(&grade8).Error)

	students := []models.Student{
		{StudentNo: "S2026-AAAA0001", FirstName: "Ana", LastName: "Lim", Email: "ana.lim@example.com", YearLevelID: grade7.ID, Status: models.StudentStatusActive},
		{StudentNo: "S2026-AAAA0002", FirstName: "Ben", LastName: "Cruz", Email: "ben.cruz@example.com", YearLevelID: grade7.ID, Status: models.StudentStatusInactive},
		{StudentNo: "S2026-AAAA0003", FirstName: "Carla", LastName: "Reyes", Email: "carla.reyes@example.com", YearLevelID: grade8.ID, Status: models.StudentStatusActive},
	}
	for i := range students {
		require.NoError(t, db.Create(&students[i]).Error)
	}

	audit := NewAuditService(&memAuditRepo{}, time.UTC, testLogger())
	svc := NewStudentService(repository.NewStudentRepository(db), audit, testLogger())
	return svc, []models.YearLevel{grade7, grade8}
}

func TestStudentServiceListByYearLevel(t *testing.T) {
	svc, levels := setupStudentFixture(t)

	response, err := svc.List(context.Background(), StudentListRequest{YearLevelID: levels[0].ID, PageSize: 10}, AuditActor{Name: "Dana Cruz", Role: "admin"})
	require.NoError(t, err)
	require.Equal(t, int64(2), response.Pagination.TotalItems)
	require.Len(t, response.Items, 2)
	for _, item := range response.Items {
		require.Equal(t, levels[0].ID, item.YearLevelID)
	}

	response, err = svc.List(context.Background(), StudentListRequest{Status: "ACTIVE", PageSize: 10}, AuditActor{Name: "Dana Cruz", Role: "admin"})
	require.NoError(t, err)
	require.Equal(t, int64(2), response.Pagination.TotalItems, "status filter is case-insensitive")
}

func TestStudentServiceGet(t *testing.T) {
	svc, _ := setupStudentFixture(t)

	listing, err := svc.List(context.Background(), StudentListRequest{PageSize: 1}, AuditActor{})
	require.NoError(t, err)
	require.Len(t, listing.Items, 1)

	student, err := svc.Get(context.Background(), listing.Items[0].ID)
	require.NoError(t, err)
	require.Equal(t, listing.Items[0].StudentNo, student.StudentNo)

	_, err = svc.Get(context.Background(), 999999)
	require.ErrorIs(t, err, ErrStudentNotFound)
}
