package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/scholaris/sis-portal-api/internal/dto"
	"github.com/scholaris/sis-portal-api/internal/models"
)

type fakeYearLevelRepo struct {
	levels map[uint]models.YearLevel
	nextID uint
}

func newFakeYearLevelRepo(names ...string) *fakeYearLevelRepo {
	repo := &fakeYearLevelRepo{levels: map[uint]models.YearLevel{}, nextID: 1}
	for _, name := range names {
		level := models.YearLevel{ID: repo.nextID, Name: name}
		repo.levels[level.ID] = level
		repo.nextID++
	}
	return repo
}

func (f *fakeYearLevelRepo) List(context.Context) ([]models.YearLevel, error) {
	var levels []models.YearLevel
	for _, level := range f.levels {
		levels = append(levels, level)
	}
	return levels, nil
}

func (f *fakeYearLevelRepo) GetByID(_ context.Context, id uint) (models.YearLevel, error) {
	level, ok := f.levels[id]
	if !ok {
		return models.YearLevel{}, gorm.ErrRecordNotFound
	}
	return level, nil
}

func (f *fakeYearLevelRepo) ExistsByName(_ context.Context, name string, excludeID uint) (bool, error) {
	for _, level := range f.levels {
		if level.Name == name && level.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeYearLevelRepo) Create(_ context.Context, level *models.YearLevel) error {
	level.ID = f.nextID
	f.nextID++
	f.levels[level.ID] = *level
	return nil
}

func (f *fakeYearLevelRepo) UpdateName(_ context.Context, id uint, name string) (models.YearLevel, error) {
	level, ok := f.levels[id]
	if !ok {
		return models.YearLevel{}, gorm.ErrRecordNotFound
	}
	level.Name = name
	f.levels[id] = level
	return level, nil
}

func (f *fakeYearLevelRepo) SoftDelete(_ context.Context, id uint) error {
	if _, ok := f.levels[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.levels, id)
	return nil
}

func newYearLevelFixture(names ...string) (*fakeYearLevelRepo, *memAuditRepo, YearLevelService) {
	repo := newFakeYearLevelRepo(names...)
	auditRepo := &memAuditRepo{}
	audit := NewAuditService(auditRepo, time.UTC, testLogger())
	validate := validator.New(validator.WithRequiredStructEnabled())
	return repo, auditRepo, NewYearLevelService(repo, validate, audit, testLogger())
}

func TestYearLevelServiceAddTrimsName(t *testing.T) {
	repo, auditRepo, svc := newYearLevelFixture()

	level, err := svc.Add(context.Background(), dto.YearLevelCreateRequest{Name: "  Grade 7  "}, AuditActor{Name: "Dana Cruz", Role: "admin"})
	require.NoError(t, err)
	require.Equal(t, "Grade 7", level.Name)
	require.Len(t, repo.levels, 1)

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	require.Equal(t, models.AuditCategoryYearLevel, entry.ActionCategory)
	require.Equal(t, models.AuditActionCreate, entry.ActionType)
	require.Equal(t, models.AuditStatusSuccess, entry.Status)
}

func TestYearLevelServiceAddDuplicateName(t *testing.T) {
	repo, auditRepo, svc := newYearLevelFixture("Grade 7")

	_, err := svc.Add(context.Background(), dto.YearLevelCreateRequest{Name: "Grade 7"}, AuditActor{Name: "Dana Cruz"})
	require.ErrorIs(t, err, ErrYearLevelNameTaken)
	require.Len(t, repo.levels, 1, "duplicate must not create a row")

	require.Len(t, auditRepo.entries, 1)
	require.Equal(t, models.AuditStatusFailed, auditRepo.entries[0].Status)
}

func TestYearLevelServiceUpdateAllowsOwnName(t *testing.T) {
	_, _, svc := newYearLevelFixture("Grade 7", "Grade 8")

	level, err := svc.Update(context.Background(), 1, dto.YearLevelUpdateRequest{Name: "Grade 7"}, AuditActor{Name: "Dana Cruz"})
	require.NoError(t, err)
	require.Equal(t, "Grade 7", level.Name)

	_, err = svc.Update(context.Background(), 1, dto.YearLevelUpdateRequest{Name: "Grade 8"}, AuditActor{Name: "Dana Cruz"})
	require.ErrorIs(t, err, ErrYearLevelNameTaken)
}

func TestYearLevelServiceUpdateMissing(t *testing.T) {
	_, _, svc := newYearLevelFixture()

	_, err := svc.Update(context.Background(), 99, dto.YearLevelUpdateRequest{Name: "Grade 9"}, AuditActor{})
	require.ErrorIs(t, err, ErrYearLevelNotFound)
}

func TestYearLevelServiceDelete(t *testing.T) {
	repo, auditRepo, svc := newYearLevelFixture("Grade 7")

	require.NoError(t, svc.Delete(context.Background(), 1, AuditActor{Name: "Dana Cruz"}))
	require.Empty(t, repo.levels)
	require.Len(t, auditRepo.entries, 1)
	require.Equal(t, models.AuditActionDelete, auditRepo.entries[0].ActionType)

	err := svc.Delete(context.Background(), 1, AuditActor{Name: "Dana Cruz"})
	require.ErrorIs(t, err, ErrYearLevelNotFound)
}
