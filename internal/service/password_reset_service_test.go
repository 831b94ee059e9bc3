package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/admin-portal-service/internal/domain"
	apperrors "github.com/spec-kit/admin-portal-service/pkg/util"
)

func newTestResetService(t *testing.T) (*PasswordResetService, *memAdminRepo, *memResetRepo) {
	t.Helper()
	admins := newMemAdminRepo()
	resets := newMemResetRepo()
	svc := NewPasswordResetService(admins, resets, nil, testLogger(), 5*time.Minute, bcrypt.MinCost)
	return svc, admins, resets
}

func TestIssueReturnsUsableSecret(t *testing.T) {
	svc, admins, _ := newTestResetService(t)
	owner := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	secret, err := svc.Issue(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Len(t, secret, 64, "32 random bytes hex-encoded")

	require.NoError(t, svc.Consume(context.Background(), owner.ID, secret))
}

func TestConsumeIsSingleUse(t *testing.T) {
	svc, admins, _ := newTestResetService(t)
	owner := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	secret, err := svc.Issue(context.Background(), owner.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Consume(context.Background(), owner.ID, secret))

	err = svc.Consume(context.Background(), owner.ID, secret)
	require.Error(t, err)
	assert.Equal(t, "RESET_TOKEN_INVALID", apperrors.ToDomainError(err).Code)
	assert.Equal(t, apperrors.StatusInvalidToken, apperrors.ToDomainError(err).HTTPStatus)
}

func TestReissueInvalidatesPriorToken(t *testing.T) {
	svc, admins, _ := newTestResetService(t)
	owner := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	first, err := svc.Issue(context.Background(), owner.ID)
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), owner.ID)
	require.NoError(t, err)

	err = svc.Consume(context.Background(), owner.ID, first)
	require.Error(t, err)
	assert.Equal(t, "RESET_TOKEN_INVALID", apperrors.ToDomainError(err).Code)

	require.NoError(t, svc.Consume(context.Background(), owner.ID, second))
}

func TestConsumeMismatchAllowsRetry(t *testing.T) {
	svc, admins, _ := newTestResetService(t)
	owner := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	secret, err := svc.Issue(context.Background(), owner.ID)
	require.NoError(t, err)

	err = svc.Consume(context.Background(), owner.ID, "wrong-secret")
	require.Error(t, err)
	assert.Equal(t, "RESET_TOKEN_INVALID", apperrors.ToDomainError(err).Code)

	// The mismatch must not burn the stored token.
	require.NoError(t, svc.Consume(context.Background(), owner.ID, secret))
}

func TestConsumeExpiredToken(t *testing.T) {
	svc, admins, resets := newTestResetService(t)
	owner := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	token := &domain.ResetPasswordToken{
		OwnerID:   owner.ID,
		TokenHash: "$2a$04$invalidhashinvalidhashinvalidhashinvalidhashinvalidha",
		ExpiresAt: time.Now().Add(-time.Minute),
		Valid:     true,
	}
	require.NoError(t, resets.Create(context.Background(), token))

	err := svc.Consume(context.Background(), owner.ID, "anything")
	require.Error(t, err)
	assert.Equal(t, "RESET_TOKEN_INVALID", apperrors.ToDomainError(err).Code)
}

func TestRequestIsEnumerationSafe(t *testing.T) {
	svc, admins, resets := newTestResetService(t)
	owner := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	require.NoError(t, svc.Request(context.Background(), "a@x.com"))
	require.NoError(t, svc.Request(context.Background(), "nobody@x.com"), "unknown email must not error")

	// Only the known account got a token.
	_, err := resets.GetUsableByOwner(context.Background(), owner.ID)
	require.NoError(t, err)
}

func TestSetNewPasswordReplacesHash(t *testing.T) {
	svc, admins, _ := newTestResetService(t)
	owner := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	secret, err := svc.Issue(context.Background(), owner.ID)
	require.NoError(t, err)

	require.NoError(t, svc.SetNewPassword(context.Background(), owner.ID, secret, "NewSecret456!"))

	stored, err := admins.GetByID(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("NewSecret456!")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Secret123!")))

	// The token was consumed by the successful set.
	err = svc.SetNewPassword(context.Background(), owner.ID, secret, "Another789!")
	require.Error(t, err)
	assert.Equal(t, "RESET_TOKEN_INVALID", apperrors.ToDomainError(err).Code)
}
