package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal-service/internal/domain"
)

// privilegedRoles are the roles an ADMIN caller may neither grant nor act
// against.
var privilegedRoles = map[domain.AdminRole]struct{}{
	domain.RoleSuperAdmin: {},
	domain.RoleAdmin:      {},
}

// RequireRole ensures the resolved principal carries a complete snapshot and
// holds one of the allowed roles. A snapshot missing name or email fields is
// treated as malformed and denied.
func RequireRole(allowed ...domain.AdminRole) fiber.Handler {
	allowedSet := make(map[domain.AdminRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		account := principal.Account
		if account.Firstname == "" || account.Lastname == "" || account.Email == "" {
			return fiber.NewError(http.StatusForbidden, "incomplete account claims")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[account.Role]; !exists {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// RolePolicy decides role assignment outcomes for account creation and
// promotion.
type RolePolicy struct {
	// Fallback is substituted when an ADMIN caller requests a privileged
	// role for another account.
	Fallback domain.AdminRole
}

// NewRolePolicy builds a policy, defaulting the fallback to USER.
func NewRolePolicy(fallback domain.AdminRole) RolePolicy {
	if !domain.ValidRole(fallback) {
		fallback = domain.RoleUser
	}
	return RolePolicy{Fallback: fallback}
}

// Apply returns the role that should actually be assigned. An ADMIN caller
// asking for SUPERADMIN or ADMIN gets the fallback role instead of an error;
// the operation itself still succeeds. SUPERADMIN callers are unrestricted.
func (p RolePolicy) Apply(caller domain.AdminRole, requested domain.AdminRole) domain.AdminRole {
	if requested == "" {
		return p.Fallback
	}
	if caller != domain.RoleAdmin {
		return requested
	}
	if _, privileged := privilegedRoles[requested]; privileged {
		return p.Fallback
	}
	return requested
}

// CanActOnTarget reports whether caller may disable or delete an account
// holding the target role. ADMIN callers cannot act on ADMIN or SUPERADMIN
// accounts.
func CanActOnTarget(caller domain.AdminRole, target domain.AdminRole) bool {
	if caller == domain.RoleSuperAdmin {
		return true
	}
	if caller != domain.RoleAdmin {
		return false
	}
	_, privileged := privilegedRoles[target]
	return !privileged
}
