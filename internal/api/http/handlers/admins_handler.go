package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal-service/internal/api/dto"
	"github.com/spec-kit/admin-portal-service/internal/auth"
	"github.com/spec-kit/admin-portal-service/internal/domain"
	"github.com/spec-kit/admin-portal-service/internal/service"
)

// AdminsHandler exposes admin account management endpoints.
type AdminsHandler struct {
	adminService *service.AdminService
}

// NewAdminsHandler constructs handler.
func NewAdminsHandler(adminService *service.AdminService) *AdminsHandler {
	return &AdminsHandler{adminService: adminService}
}

// Create handles POST /admins.
func (h *AdminsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Firstname == "" || req.Lastname == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "firstname, lastname, email, password required")
	}
	if req.Password != req.PasswordConfirmation {
		return fiber.NewError(http.StatusBadRequest, "password confirmation does not match")
	}
	if req.Role != "" && !domain.ValidRole(req.Role) {
		return fiber.NewError(http.StatusBadRequest, "unknown role")
	}

	admin, err := h.adminService.Create(c.UserContext(), principal.Account, service.CreateAdminInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		Password:  req.Password,
		Role:      req.Role,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAdminResponse(admin)})
}

// Get handles GET /admins/:id.
func (h *AdminsHandler) Get(c *fiber.Ctx) error {
	admin, err := h.adminService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminResponse(admin)})
}

// List handles GET /admins. Returns 204 when no accounts exist.
func (h *AdminsHandler) List(c *fiber.Ctx) error {
	admins, err := h.adminService.List(c.UserContext())
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		return c.SendStatus(http.StatusNoContent)
	}

	responses := make([]dto.AdminResponse, 0, len(admins))
	for _, admin := range admins {
		responses = append(responses, dto.NewAdminResponse(admin))
	}
	return c.JSON(fiber.Map{"data": responses})
}

// UpdateProfile handles PATCH /admins/update-profile.
func (h *AdminsHandler) UpdateProfile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Firstname == "" || req.Lastname == "" {
		return fiber.NewError(http.StatusBadRequest, "firstname and lastname required")
	}

	admin, err := h.adminService.UpdateProfile(c.UserContext(), principal.Account.ID, req.Firstname, req.Lastname)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminResponse(admin)})
}

// UpdateEmail handles PATCH /admins/update-email.
func (h *AdminsHandler) UpdateEmail(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.UpdateEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" {
		return fiber.NewError(http.StatusBadRequest, "email required")
	}

	admin, err := h.adminService.UpdateEmail(c.UserContext(), principal.Account.ID, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminResponse(admin)})
}

// UpdatePassword handles PATCH /admins/update-password.
func (h *AdminsHandler) UpdatePassword(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.UpdatePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.NewPassword == "" || req.NewPassword != req.NewPasswordConfirmation {
		return fiber.NewError(http.StatusBadRequest, "new password and matching confirmation required")
	}

	if err := h.adminService.UpdateOwnPassword(c.UserContext(), principal.Account.ID, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// UpdateRole handles PATCH /admins/:id/update-role.
func (h *AdminsHandler) UpdateRole(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	var req dto.UpdateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if !domain.ValidRole(req.Role) {
		return fiber.NewError(http.StatusBadRequest, "unknown role")
	}

	admin, err := h.adminService.UpdateRole(c.UserContext(), principal.Account, c.Params("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminResponse(admin)})
}

// Disable handles PATCH /admins/:id/disable.
func (h *AdminsHandler) Disable(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	admin, err := h.adminService.Disable(c.UserContext(), principal.Account, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminResponse(admin)})
}

// Delete handles DELETE /admins/:id.
func (h *AdminsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
	}

	admin, err := h.adminService.Delete(c.UserContext(), principal.Account, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminResponse(admin)})
}
