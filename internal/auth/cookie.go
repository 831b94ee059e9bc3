package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// Cookie names for the two credentials.
const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// SetTokenCookie writes an http-only, cross-site-capable, secure cookie.
func SetTokenCookie(c *fiber.Ctx, name, value string, ttl time.Duration) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	})
}

// ClearTokenCookies overwrites both credentials with immediately-expiring
// empty values.
func ClearTokenCookies(c *fiber.Ctx) {
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			Expires:  time.Unix(0, 0),
			HTTPOnly: true,
			Secure:   true,
			SameSite: fiber.CookieSameSiteNoneMode,
		})
	}
}

// TokenFromRequest pulls the named credential from its cookie, falling back
// to the Authorization header for the access token.
func TokenFromRequest(c *fiber.Ctx, name string) string {
	if value := c.Cookies(name); value != "" {
		return value
	}
	if name != AccessCookieName {
		return ""
	}
	header := c.Get(fiber.HeaderAuthorization)
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}
	return ""
}
