package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/admin-portal-service/internal/auth"
	"github.com/spec-kit/admin-portal-service/internal/domain"
	apperrors "github.com/spec-kit/admin-portal-service/pkg/util"
)

func newTestAdminService(t *testing.T) (*AdminService, *memAdminRepo) {
	t.Helper()
	admins := newMemAdminRepo()
	svc := NewAdminService(admins, auth.NewRolePolicy(domain.RoleUser), bcrypt.MinCost)
	return svc, admins
}

func TestCreateElevationGuard(t *testing.T) {
	svc, admins := newTestAdminService(t)
	caller := seedAdmin(t, admins, "admin@x.com", "Secret123!", domain.RoleAdmin, true)

	cases := []struct {
		name      string
		requested domain.AdminRole
		want      domain.AdminRole
	}{
		{"admin requesting superadmin is downgraded", domain.RoleSuperAdmin, domain.RoleUser},
		{"admin requesting admin is downgraded", domain.RoleAdmin, domain.RoleUser},
		{"admin granting user passes through", domain.RoleUser, domain.RoleUser},
		{"admin granting guest passes through", domain.RoleGuest, domain.RoleGuest},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			created, err := svc.Create(context.Background(), caller.Snapshot(), CreateAdminInput{
				Firstname: "New",
				Lastname:  "Account",
				Email:     "new" + string(rune('a'+i)) + "@x.com",
				Password:  "Secret123!",
				Role:      tc.requested,
			})
			require.NoError(t, err, "downgrade must not fail the create")
			assert.Equal(t, tc.want, created.Role)
			assert.True(t, created.Active)
		})
	}
}

func TestCreateBySuperadminKeepsRequestedRole(t *testing.T) {
	svc, admins := newTestAdminService(t)
	caller := seedAdmin(t, admins, "root@x.com", "Secret123!", domain.RoleSuperAdmin, true)

	created, err := svc.Create(context.Background(), caller.Snapshot(), CreateAdminInput{
		Firstname: "Second",
		Lastname:  "Root",
		Email:     "root2@x.com",
		Password:  "Secret123!",
		Role:      domain.RoleSuperAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSuperAdmin, created.Role)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, admins := newTestAdminService(t)
	caller := seedAdmin(t, admins, "root@x.com", "Secret123!", domain.RoleSuperAdmin, true)
	seedAdmin(t, admins, "taken@x.com", "Secret123!", domain.RoleUser, true)

	_, err := svc.Create(context.Background(), caller.Snapshot(), CreateAdminInput{
		Firstname: "Dup",
		Lastname:  "Licate",
		Email:     "taken@x.com",
		Password:  "Secret123!",
		Role:      domain.RoleUser,
	})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestUpdateRoleElevationGuard(t *testing.T) {
	svc, admins := newTestAdminService(t)
	admin := seedAdmin(t, admins, "admin@x.com", "Secret123!", domain.RoleAdmin, true)
	target := seedAdmin(t, admins, "user@x.com", "Secret123!", domain.RoleUser, true)

	updated, err := svc.UpdateRole(context.Background(), admin.Snapshot(), target.ID, domain.RoleSuperAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, updated.Role, "elevation attempt falls back silently")

	root := seedAdmin(t, admins, "root@x.com", "Secret123!", domain.RoleSuperAdmin, true)
	updated, err = svc.UpdateRole(context.Background(), root.Snapshot(), target.ID, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, updated.Role)
}

func TestDisableTargetProtection(t *testing.T) {
	svc, admins := newTestAdminService(t)
	admin := seedAdmin(t, admins, "admin@x.com", "Secret123!", domain.RoleAdmin, true)
	peer := seedAdmin(t, admins, "peer@x.com", "Secret123!", domain.RoleAdmin, true)
	user := seedAdmin(t, admins, "user@x.com", "Secret123!", domain.RoleUser, true)

	_, err := svc.Disable(context.Background(), admin.Snapshot(), peer.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
	untouched, err := admins.GetByID(context.Background(), peer.ID)
	require.NoError(t, err)
	assert.True(t, untouched.Active, "rejected disable must not touch the target")

	disabled, err := svc.Disable(context.Background(), admin.Snapshot(), user.ID)
	require.NoError(t, err)
	assert.False(t, disabled.Active)

	stored, err := admins.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
}

func TestDeleteTargetProtection(t *testing.T) {
	svc, admins := newTestAdminService(t)
	admin := seedAdmin(t, admins, "admin@x.com", "Secret123!", domain.RoleAdmin, true)
	root := seedAdmin(t, admins, "root@x.com", "Secret123!", domain.RoleSuperAdmin, true)
	user := seedAdmin(t, admins, "user@x.com", "Secret123!", domain.RoleUser, true)

	_, err := svc.Delete(context.Background(), admin.Snapshot(), root.ID)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)

	// Superadmin may act on anyone, including peers.
	_, err = svc.Delete(context.Background(), root.Snapshot(), admin.ID)
	require.NoError(t, err)
	_, err = admins.GetByID(context.Background(), admin.ID)
	require.Error(t, err)

	_, err = svc.Delete(context.Background(), root.Snapshot(), user.ID)
	require.NoError(t, err)
}

func TestUpdateOwnPassword(t *testing.T) {
	svc, admins := newTestAdminService(t)
	admin := seedAdmin(t, admins, "admin@x.com", "Secret123!", domain.RoleAdmin, true)

	require.NoError(t, svc.UpdateOwnPassword(context.Background(), admin.ID, "NewSecret456!"))

	stored, err := admins.GetByID(context.Background(), admin.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("NewSecret456!")))
}

func TestGetMissingAdmin(t *testing.T) {
	svc, _ := newTestAdminService(t)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
