package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal-service/internal/api/dto"
	"github.com/spec-kit/admin-portal-service/internal/auth"
	"github.com/spec-kit/admin-portal-service/internal/service"
)

// SessionsHandler exposes login, logout, session inspection and the
// password-reset endpoints.
type SessionsHandler struct {
	authService  *service.AuthService
	resetService *service.PasswordResetService
}

// NewSessionsHandler constructs handler.
func NewSessionsHandler(authService *service.AuthService, resetService *service.PasswordResetService) *SessionsHandler {
	return &SessionsHandler{authService: authService, resetService: resetService}
}

// Login handles POST /sessions/login.
func (h *SessionsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	result, err := h.authService.Login(c.UserContext(), req.Email, req.Password, c.Get(fiber.HeaderUserAgent))
	if err != nil {
		return err
	}

	auth.SetTokenCookie(c, auth.AccessCookieName, result.AccessToken, time.Until(result.AccessExpiresAt))
	auth.SetTokenCookie(c, auth.RefreshCookieName, result.RefreshToken, time.Until(result.RefreshExpiresAt))

	return c.JSON(fiber.Map{
		"data": dto.NewSessionResponse(result.Session, &result.Account),
	})
}

// Logout handles POST /sessions/logout. Deactivating zero sessions is still
// a success, so calling logout twice is harmless.
func (h *SessionsHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	if err := h.authService.Logout(c.UserContext(), principal.Account.ID); err != nil {
		return err
	}

	auth.ClearTokenCookies(c)
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Logout successful"}})
}

// IsLoggedIn handles GET /sessions/is-logged-in. Returns the caller's
// active session, or 204 when none exists.
func (h *SessionsHandler) IsLoggedIn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	session, err := h.authService.ActiveSession(c.UserContext(), principal.Account.ID)
	if err != nil {
		return err
	}
	if session == nil {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(session, &principal.Account)})
}

// ListOwn handles GET /sessions. Returns every session owned by the caller,
// or 204 when there are none.
func (h *SessionsHandler) ListOwn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	sessions, err := h.authService.ListSessions(c.UserContext(), principal.Account.ID)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		return c.SendStatus(http.StatusNoContent)
	}

	responses := make([]dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, dto.NewSessionResponse(session, nil))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// DeleteSession handles DELETE /sessions/:id.
func (h *SessionsHandler) DeleteSession(c *fiber.Ctx) error {
	session, err := h.authService.DeleteSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSessionResponse(session, nil)})
}

// DeleteInactive handles DELETE /inactive-sessions.
func (h *SessionsHandler) DeleteInactive(c *fiber.Ctx) error {
	deleted, err := h.authService.DeleteInactiveSessions(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": deleted}})
}

// RequestPasswordReset handles POST /passwords/reset-request. The response
// is identical whether or not the email belongs to an account.
func (h *SessionsHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}

	if err := h.resetService.Request(c.UserContext(), req.Email); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{"message": "Password reset email has been sent (if the account exists)"},
	})
}

// SetPassword handles POST /passwords/:id/reset/:token.
func (h *SessionsHandler) SetPassword(c *fiber.Ctx) error {
	var req dto.SetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Password == "" || req.Password != req.PasswordConfirmation {
		return fiber.NewError(http.StatusBadRequest, "password and matching confirmation required")
	}

	if err := h.resetService.SetNewPassword(c.UserContext(), c.Params("id"), c.Params("token"), req.Password); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Successfully updated password"}})
}
