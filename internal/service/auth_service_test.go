package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/admin-portal-service/internal/domain"
	apperrors "github.com/spec-kit/admin-portal-service/pkg/util"
)

func newTestAuthService(t *testing.T) (*AuthService, *memAdminRepo, *memSessionRepo) {
	t.Helper()
	admins := newMemAdminRepo()
	sessions := newMemSessionRepo()
	svc := NewAuthService(AuthDependencies{
		AdminRepo:   admins,
		SessionRepo: sessions,
		TokenMgr:    testTokenManager(t),
		Logger:      testLogger(),
	})
	return svc, admins, sessions
}

func seedAdmin(t *testing.T, admins *memAdminRepo, email, password string, role domain.AdminRole, active bool) *domain.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &domain.Admin{
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       active,
	}
	require.NoError(t, admins.Create(context.Background(), admin))
	return admin
}

func TestAuthenticate(t *testing.T) {
	svc, admins, _ := newTestAuthService(t)
	seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, errWrong := svc.Authenticate(context.Background(), "a@x.com", "wrong")
		_, errMissing := svc.Authenticate(context.Background(), "nobody@x.com", "anything")

		require.Error(t, errWrong)
		require.Error(t, errMissing)
		assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(errWrong).Code)
		assert.Equal(t, apperrors.ToDomainError(errWrong).Code, apperrors.ToDomainError(errMissing).Code)
	})

	t.Run("correct password returns account", func(t *testing.T) {
		admin, err := svc.Authenticate(context.Background(), "a@x.com", "Secret123!")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", admin.Email)
	})

	t.Run("disabled account cannot authenticate", func(t *testing.T) {
		seedAdmin(t, admins, "gone@x.com", "Secret123!", domain.RoleAdmin, false)
		_, err := svc.Authenticate(context.Background(), "gone@x.com", "Secret123!")
		require.Error(t, err)
		assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)
	})
}

func TestLoginSingleActiveSession(t *testing.T) {
	svc, admins, sessions := newTestAuthService(t)
	admin := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	var lastSessionID string
	for i := 0; i < 3; i++ {
		result, err := svc.Login(context.Background(), "a@x.com", "Secret123!", "test-agent")
		require.NoError(t, err)
		require.NotEmpty(t, result.Session.ID)
		assert.True(t, result.Session.Active)
		lastSessionID = result.Session.ID
	}

	assert.Equal(t, 1, sessions.activeCount(admin.ID), "exactly one session stays active after repeated logins")

	active, err := sessions.GetActiveByOwner(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.Equal(t, lastSessionID, active.ID)
}

func TestLoginResultTokens(t *testing.T) {
	svc, admins, _ := newTestAuthService(t)
	seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	result, err := svc.Login(context.Background(), "a@x.com", "Secret123!", "test-agent")
	require.NoError(t, err)

	assert.NotEmpty(t, result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.NotEqual(t, result.AccessToken, result.RefreshToken)
	assert.NotEmpty(t, result.Account.ID)
	assert.Equal(t, "a@x.com", result.Account.Email)
	require.NotNil(t, result.Session.UserAgent)
	assert.Equal(t, "test-agent", *result.Session.UserAgent)
}

func TestLoginBadCredentials(t *testing.T) {
	svc, admins, sessions := newTestAuthService(t)
	admin := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	_, err := svc.Login(context.Background(), "a@x.com", "wrong", "")
	require.Error(t, err)
	assert.Equal(t, "INVALID_CREDENTIALS", apperrors.ToDomainError(err).Code)
	assert.Equal(t, 0, sessions.activeCount(admin.ID), "failed login must not open a session")
}

func TestLogoutIdempotent(t *testing.T) {
	svc, admins, sessions := newTestAuthService(t)
	admin := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	_, err := svc.Login(context.Background(), "a@x.com", "Secret123!", "")
	require.NoError(t, err)
	require.Equal(t, 1, sessions.activeCount(admin.ID))

	require.NoError(t, svc.Logout(context.Background(), admin.ID))
	assert.Equal(t, 0, sessions.activeCount(admin.ID))

	// Second logout is a no-op, not an error.
	require.NoError(t, svc.Logout(context.Background(), admin.ID))
	assert.Equal(t, 0, sessions.activeCount(admin.ID))
}

func TestRefresh(t *testing.T) {
	svc, admins, sessions := newTestAuthService(t)
	admin := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	result, err := svc.Login(context.Background(), "a@x.com", "Secret123!", "")
	require.NoError(t, err)

	t.Run("valid refresh token mints a new access token", func(t *testing.T) {
		token, ok := svc.Refresh(context.Background(), result.RefreshToken)
		require.True(t, ok)
		assert.NotEmpty(t, token)
	})

	t.Run("snapshot is re-read from persistence", func(t *testing.T) {
		stored, err := admins.GetByID(context.Background(), admin.ID)
		require.NoError(t, err)
		stored.Role = domain.RoleSuperAdmin
		require.NoError(t, admins.Update(context.Background(), stored))

		token, ok := svc.Refresh(context.Background(), result.RefreshToken)
		require.True(t, ok)

		account := verifyAccessAccount(t, svc, token)
		require.NotNil(t, account)
		assert.Equal(t, domain.RoleSuperAdmin, account.Role)
	})

	t.Run("garbage token fails closed", func(t *testing.T) {
		_, ok := svc.Refresh(context.Background(), "not.a.token")
		assert.False(t, ok)
	})

	t.Run("inactive session fails closed", func(t *testing.T) {
		_, err := sessions.DeactivateByOwner(context.Background(), admin.ID)
		require.NoError(t, err)
		_, ok := svc.Refresh(context.Background(), result.RefreshToken)
		assert.False(t, ok)
	})
}

func TestRefreshDisabledAccountFailsClosed(t *testing.T) {
	svc, admins, _ := newTestAuthService(t)
	admin := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	result, err := svc.Login(context.Background(), "a@x.com", "Secret123!", "")
	require.NoError(t, err)

	require.NoError(t, admins.SetActive(context.Background(), admin.ID, false))
	_, ok := svc.Refresh(context.Background(), result.RefreshToken)
	assert.False(t, ok)
}

func TestSessionMaintenance(t *testing.T) {
	svc, admins, sessions := newTestAuthService(t)
	admin := seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	// Three logins leave two inactive sessions behind.
	for i := 0; i < 3; i++ {
		_, err := svc.Login(context.Background(), "a@x.com", "Secret123!", "")
		require.NoError(t, err)
	}

	all, err := svc.ListSessions(context.Background(), admin.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)

	deleted, err := svc.DeleteInactiveSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Equal(t, 1, sessions.activeCount(admin.ID), "live session untouched by the sweep")
}

func TestDeleteSession(t *testing.T) {
	svc, admins, _ := newTestAuthService(t)
	seedAdmin(t, admins, "a@x.com", "Secret123!", domain.RoleAdmin, true)

	result, err := svc.Login(context.Background(), "a@x.com", "Secret123!", "")
	require.NoError(t, err)

	deleted, err := svc.DeleteSession(context.Background(), result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Session.ID, deleted.ID)

	_, err = svc.DeleteSession(context.Background(), result.Session.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

// verifyAccessAccount decodes an access token through the service's own
// token manager and returns the embedded account snapshot.
func verifyAccessAccount(t *testing.T, svc *AuthService, token string) *domain.AccountSnapshot {
	t.Helper()
	result := svc.tokens.Verify(token)
	require.True(t, result.Valid)
	require.NotNil(t, result.Claims)
	return result.Claims.Account
}
