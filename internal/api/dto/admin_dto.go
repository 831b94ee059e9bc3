package dto

import (
	"time"

	"github.com/spec-kit/admin-portal-service/internal/domain"
)

// CreateAdminRequest payload for account creation.
type CreateAdminRequest struct {
	Firstname            string           `json:"firstname"`
	Lastname             string           `json:"lastname"`
	Email                string           `json:"email"`
	Password             string           `json:"password"`
	PasswordConfirmation string           `json:"passwordConfirmation"`
	Role                 domain.AdminRole `json:"role"`
}

// UpdateProfileRequest payload for the caller's own name fields.
type UpdateProfileRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// UpdateEmailRequest payload for the caller's own email.
type UpdateEmailRequest struct {
	Email string `json:"email"`
}

// UpdatePasswordRequest payload for the caller's own password.
type UpdatePasswordRequest struct {
	NewPassword             string `json:"newPassword"`
	NewPasswordConfirmation string `json:"newPasswordConfirmation"`
}

// UpdateRoleRequest payload for changing another account's role.
type UpdateRoleRequest struct {
	Role domain.AdminRole `json:"role"`
}

// AdminResponse is the credential-free account view.
type AdminResponse struct {
	ID        string           `json:"id"`
	Firstname string           `json:"firstname"`
	Lastname  string           `json:"lastname"`
	Email     string           `json:"email"`
	Role      domain.AdminRole `json:"role"`
	Active    bool             `json:"isActive"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewAdminResponse maps an admin to its response shape, stripping the
// password hash.
func NewAdminResponse(admin *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:        admin.ID,
		Firstname: admin.Firstname,
		Lastname:  admin.Lastname,
		Email:     admin.Email,
		Role:      admin.Role,
		Active:    admin.Active,
		CreatedAt: admin.CreatedAt,
		UpdatedAt: admin.UpdatedAt,
	}
}
