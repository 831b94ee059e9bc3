package domain

import "time"

// AdminRole enumerates portal operator roles.
type AdminRole string

const (
	RoleSuperAdmin AdminRole = "SUPERADMIN"
	RoleAdmin      AdminRole = "ADMIN"
	RoleUser       AdminRole = "USER"
	RoleGuest      AdminRole = "GUEST"
)

// ValidRole reports whether the value is one of the known roles.
func ValidRole(role AdminRole) bool {
	switch role {
	case RoleSuperAdmin, RoleAdmin, RoleUser, RoleGuest:
		return true
	}
	return false
}

// Admin models a portal account.
type Admin struct {
	ID           string
	Firstname    string
	Lastname     string
	Email        string
	PasswordHash string
	Role         AdminRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Snapshot strips credentials for token claims and API responses.
func (a *Admin) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		ID:        a.ID,
		Firstname: a.Firstname,
		Lastname:  a.Lastname,
		Email:     a.Email,
		Role:      a.Role,
	}
}

// AccountSnapshot is the credential-free view of an admin carried in access
// tokens and handler responses. It deliberately has no password field.
type AccountSnapshot struct {
	ID        string    `json:"id"`
	Firstname string    `json:"firstname"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Role      AdminRole `json:"role"`
}
