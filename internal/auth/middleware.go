package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal-service/internal/domain"
	apperrors "github.com/spec-kit/admin-portal-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal is the identity resolved once per request. It is stored in the
// request locals and never mutated afterwards.
type Principal struct {
	Account   domain.AccountSnapshot
	SessionID string
}

// AccessReissuer mints a replacement access token from a refresh token.
// Implementations fail closed: ok is false whenever the refresh token or its
// session cannot be validated.
type AccessReissuer interface {
	Refresh(ctx context.Context, refreshToken string) (string, bool)
}

// AuthMiddleware resolves the caller identity from the signed access token,
// falling back to the refresh token when the access token has expired.
type AuthMiddleware struct {
	tokens   *TokenManager
	reissuer AccessReissuer
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, reissuer AccessReissuer) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, reissuer: reissuer}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	accessToken := TokenFromRequest(c, AccessCookieName)
	if accessToken == "" {
		return apperrors.NewUnauthorized("missing access token")
	}

	result := m.tokens.Verify(accessToken)
	if result.Valid {
		return m.continueWith(c, result.Claims)
	}

	if !result.Expired || m.reissuer == nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	// Expired access token: try to mint a replacement off the refresh token.
	refreshToken := TokenFromRequest(c, RefreshCookieName)
	if refreshToken == "" {
		return apperrors.NewUnauthorized("token expired")
	}
	newAccess, ok := m.reissuer.Refresh(c.UserContext(), refreshToken)
	if !ok {
		return apperrors.NewUnauthorized("token expired")
	}

	reissued := m.tokens.Verify(newAccess)
	if !reissued.Valid {
		return apperrors.NewUnauthorized("token expired")
	}
	SetTokenCookie(c, AccessCookieName, newAccess, m.tokens.AccessTTL())
	c.Set("X-Access-Token", newAccess)
	return m.continueWith(c, reissued.Claims)
}

func (m *AuthMiddleware) continueWith(c *fiber.Ctx, claims *Claims) error {
	if claims.Account == nil || claims.SessionID == "" {
		return apperrors.NewUnauthorized("incomplete token claims")
	}
	c.Locals(principalKey, &Principal{
		Account:   *claims.Account,
		SessionID: claims.SessionID,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated identity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
