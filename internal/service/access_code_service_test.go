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

type fakeAccessCodeRepo struct {
	codes  map[uint]models.AccessCode
	nextID uint
}

func newFakeAccessCodeRepo(codes ...models.AccessCode) *fakeAccessCodeRepo {
	repo := &fakeAccessCodeRepo{codes: map[uint]models.AccessCode{}, nextID: 1}
	for _, code := range codes {
		code.ID = repo.nextID
		repo.codes[code.ID] = code
		repo.nextID++
	}
	return repo
}

func (f *fakeAccessCodeRepo) Create(_ context.Context, code *models.AccessCode) error {
	code.ID = f.nextID
	f.nextID++
	f.codes[code.ID] = *code
	return nil
}

func (f *fakeAccessCodeRepo) GetByCode(_ context.Context, value string) (models.AccessCode, error) {
	for _, code := range f.codes {
		if code.Code == value {
			return code, nil
		}
	}
	return models.AccessCode{}, gorm.ErrRecordNotFound
}

func (f *fakeAccessCodeRepo) List(context.Context) ([]models.AccessCode, error) {
	var codes []models.AccessCode
	for _, code := range f.codes {
		codes = append(codes, code)
	}
	return codes, nil
}

func (f *fakeAccessCodeRepo) IncrementUse(_ context.Context, id uint) error {
	code, ok := f.codes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	code.UseCount++
	f.codes[id] = code
	return nil
}

func (f *fakeAccessCodeRepo) Deactivate(_ context.Context, id uint) error {
	code, ok := f.codes[id]
	if !ok || !code.Active {
		return gorm.ErrRecordNotFound
	}
	code.Active = false
	f.codes[id] = code
	return nil
}

func newAccessCodeFixture(codes ...models.AccessCode) (*fakeAccessCodeRepo, AccessCodeService) {
	repo := newFakeAccessCodeRepo(codes...)
	audit := NewAuditService(&memAuditRepo{}, time.UTC, testLogger())
	validate := validator.New(validator.WithRequiredStructEnabled())
	return repo, NewAccessCodeService(repo, validate, audit, testLogger())
}

func TestNormalizeAccessCode(t *testing.T) {
	require.Equal(t, "REG-ABC12345", NormalizeAccessCode("  reg-abc12345 "))
	require.Equal(t, "", NormalizeAccessCode("   "))
}

func TestAccessCodeServiceValidate(t *testing.T) {
	_, svc := newAccessCodeFixture(models.AccessCode{Code: "REG-ABC12345", Active: true})

	response, err := svc.Validate(context.Background(), "  reg-abc12345 ")
	require.NoError(t, err)
	require.Equal(t, "REG-ABC12345", response.Code)
	require.Equal(t, "/forms/student-registration?code=REG-ABC12345", response.RedirectPath)
}

func TestAccessCodeServiceValidateRejects(t *testing.T) {
	expired := time.Now().Add(-time.Hour)
	_, svc := newAccessCodeFixture(
		models.AccessCode{Code: "REG-INACTIVE", Active: false},
		models.AccessCode{Code: "REG-EXPIRED1", Active: true, ExpiresAt: &expired},
	)

	for _, raw := range []string{"", "REG-UNKNOWN9", "REG-INACTIVE", "REG-EXPIRED1"} {
		_, err := svc.Validate(context.Background(), raw)
		require.ErrorIs(t, err, ErrAccessCodeInvalid, "code %q must not validate", raw)
	}
}

func TestAccessCodeServiceCreate(t *testing.T) {
	repo, svc := newAccessCodeFixture()

	created, err := svc.Create(context.Background(), dto.AccessCodeCreateRequest{}, AuditActor{Name: "Dana Cruz", Role: "admin"})
	require.NoError(t, err)
	require.True(t, created.Active)
	require.Regexp(t, `^REG-[0-9A-F]{8}$`, created.Code)
	require.Len(t, repo.codes, 1)
}

func TestAccessCodeServiceDeactivate(t *testing.T) {
	repo, svc := newAccessCodeFixture(models.AccessCode{Code: "REG-ABC12345", Active: true})

	require.NoError(t, svc.Deactivate(context.Background(), 1, AuditActor{Name: "Dana Cruz"}))
	require.False(t, repo.codes[1].Active)

	err := svc.Deactivate(context.Background(), 1, AuditActor{Name: "Dana Cruz"})
	require.ErrorIs(t, err, ErrAccessCodeNotFound)
}
