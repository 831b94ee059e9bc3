package service

import (
	"context"

	"github.com/spec-kit/admin-portal-service/internal/auth"
	"github.com/spec-kit/admin-portal-service/internal/domain"
	"github.com/spec-kit/admin-portal-service/internal/repository"
	apperrors "github.com/spec-kit/admin-portal-service/pkg/util"
)

// AdminService handles admin account management with the role policy
// applied to every privileged mutation.
type AdminService struct {
	admins     repository.AdminRepository
	policy     auth.RolePolicy
	bcryptCost int
}

// NewAdminService builds the service.
func NewAdminService(admins repository.AdminRepository, policy auth.RolePolicy, bcryptCost int) *AdminService {
	return &AdminService{admins: admins, policy: policy, bcryptCost: bcryptCost}
}

// CreateAdminInput carries validated fields for account creation.
type CreateAdminInput struct {
	Firstname string
	Lastname  string
	Email     string
	Password  string
	Role      domain.AdminRole
}

// Create registers a new admin account. The elevation guard silently
// downgrades a privileged role requested by an ADMIN caller; the create
// still succeeds.
func (s *AdminService) Create(ctx context.Context, caller domain.AccountSnapshot, input CreateAdminInput) (*domain.Admin, error) {
	if _, err := s.admins.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	role := s.policy.Apply(caller.Role, input.Role)
	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	admin := &domain.Admin{
		Firstname:    input.Firstname,
		Lastname:     input.Lastname,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Get returns one admin account.
func (s *AdminService) Get(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("admin", map[string]any{"id": id})
		}
		return nil, err
	}
	return admin, nil
}

// List returns all admin accounts.
func (s *AdminService) List(ctx context.Context) ([]*domain.Admin, error) {
	return s.admins.List(ctx)
}

// UpdateProfile changes the caller's own name fields.
func (s *AdminService) UpdateProfile(ctx context.Context, id, firstname, lastname string) (*domain.Admin, error) {
	admin, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	admin.Firstname = firstname
	admin.Lastname = lastname
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// UpdateEmail changes the caller's own email.
func (s *AdminService) UpdateEmail(ctx context.Context, id, email string) (*domain.Admin, error) {
	admin, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	admin.Email = email
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// UpdateOwnPassword replaces the caller's password hash.
func (s *AdminService) UpdateOwnPassword(ctx context.Context, id, newPassword string) error {
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.admins.UpdatePassword(ctx, id, hash)
}

// UpdateRole changes another account's role with the elevation guard
// applied.
func (s *AdminService) UpdateRole(ctx context.Context, caller domain.AccountSnapshot, id string, role domain.AdminRole) (*domain.Admin, error) {
	admin, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	admin.Role = s.policy.Apply(caller.Role, role)
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// Disable soft-deletes an account. ADMIN callers may not disable ADMIN or
// SUPERADMIN targets.
func (s *AdminService) Disable(ctx context.Context, caller domain.AccountSnapshot, id string) (*domain.Admin, error) {
	admin, err := s.guardTarget(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.admins.SetActive(ctx, id, false); err != nil {
		return nil, err
	}
	admin.Active = false
	return admin, nil
}

// Delete hard-deletes an account under the same target protection as
// Disable.
func (s *AdminService) Delete(ctx context.Context, caller domain.AccountSnapshot, id string) (*domain.Admin, error) {
	admin, err := s.guardTarget(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.admins.Delete(ctx, id); err != nil {
		return nil, err
	}
	return admin, nil
}

func (s *AdminService) guardTarget(ctx context.Context, caller domain.AccountSnapshot, id string) (*domain.Admin, error) {
	admin, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanActOnTarget(caller.Role, admin.Role) {
		return nil, apperrors.NewForbidden("insufficient clearance for target account")
	}
	return admin, nil
}
