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

type fakePolicyRepo struct {
	policies []models.GeneralPolicy
}

func (f *fakePolicyRepo) GetLatest(context.Context) (models.GeneralPolicy, error) {
	if len(f.policies) == 0 {
		return models.GeneralPolicy{}, gorm.ErrRecordNotFound
	}
	return f.policies[len(f.policies)-1], nil
}

func (f *fakePolicyRepo) Create(_ context.Context, policy *models.GeneralPolicy) error {
	policy.ID = uint(len(f.policies) + 1)
	f.policies = append(f.policies, *policy)
	return nil
}

func (f *fakePolicyRepo) Update(_ context.Context, id uint, title, content string) (models.GeneralPolicy, error) {
	for i, policy := range f.policies {
		if policy.ID == id {
			policy.Title = title
			policy.Content = content
			f.policies[i] = policy
			return policy, nil
		}
	}
	return models.GeneralPolicy{}, gorm.ErrRecordNotFound
}

func newPolicyFixture() (*fakePolicyRepo, *memAuditRepo, PolicyService) {
	repo := &fakePolicyRepo{}
	auditRepo := &memAuditRepo{}
	audit := NewAuditService(auditRepo, time.UTC, testLogger())
	validate := validator.New(validator.WithRequiredStructEnabled())
	return repo, auditRepo, NewPolicyService(repo, validate, audit, testLogger())
}

func TestPolicyServiceSaveSanitizesContent(t *testing.T) {
	repo, _, svc := newPolicyFixture()

	saved, err := svc.Save(context.Background(), dto.PolicySaveRequest{
		Title:   "Enrollment Policy",
		Content: `<p>Bring valid ID.</p><script>alert("x")</script>`,
	}, AuditActor{Name: "Dana Cruz", Role: "admin"})
	require.NoError(t, err)
	require.Contains(t, saved.Content, "<p>Bring valid ID.</p>")
	require.NotContains(t, saved.Content, "<script>")
	require.Len(t, repo.policies, 1)
}

func TestPolicyServiceSaveRejectsEmptyAfterSanitize(t *testing.T) {
	repo, _, svc := newPolicyFixture()

	_, err := svc.Save(context.Background(), dto.PolicySaveRequest{
		Title:   "Enrollment Policy",
		Content: `<script>alert("x")</script>`,
	}, AuditActor{Name: "Dana Cruz"})
	require.ErrorIs(t, err, ErrPolicyContentEmpty)
	require.Empty(t, repo.policies)
}

func TestPolicyServiceSaveUpdatesSingleton(t *testing.T) {
	repo, auditRepo, svc := newPolicyFixture()
	actor := AuditActor{Name: "Dana Cruz", Role: "admin"}

	first, err := svc.Save(context.Background(), dto.PolicySaveRequest{Title: "Policy v1", Content: "Initial terms."}, actor)
	require.NoError(t, err)

	second, err := svc.Save(context.Background(), dto.PolicySaveRequest{Title: "Policy v2", Content: "Revised terms."}, actor)
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID, "saving again must update the same document")
	require.Len(t, repo.policies, 1)

	require.Len(t, auditRepo.entries, 2)
	require.Equal(t, models.AuditActionCreate, auditRepo.entries[0].ActionType)
	require.Equal(t, models.AuditActionUpdate, auditRepo.entries[1].ActionType)
}

func TestPolicyServiceGetMissing(t *testing.T) {
	_, _, svc := newPolicyFixture()

	_, err := svc.Get(context.Background())
	require.ErrorIs(t, err, ErrPolicyNotFound)
}
