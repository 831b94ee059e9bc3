package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal-service/internal/api/dto"
	"github.com/spec-kit/admin-portal-service/internal/service"
)

// SkillsHandler exposes skill endpoints. Reads are public, writes are
// authenticated.
type SkillsHandler struct {
	skillService *service.SkillService
}

// NewSkillsHandler constructs handler.
func NewSkillsHandler(skillService *service.SkillService) *SkillsHandler {
	return &SkillsHandler{skillService: skillService}
}

// Create handles POST /skills.
func (h *SkillsHandler) Create(c *fiber.Ctx) error {
	req, err := parseSkillRequest(c)
	if err != nil {
		return err
	}

	skill, err := h.skillService.Create(c.UserContext(), service.SkillInput{
		Name:     req.Name,
		Level:    req.Level,
		Category: req.Category,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": skill})
}

// Get handles GET /skills/:id.
func (h *SkillsHandler) Get(c *fiber.Ctx) error {
	skill, err := h.skillService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": skill})
}

// List handles GET /skills. Returns 204 when no skills exist.
func (h *SkillsHandler) List(c *fiber.Ctx) error {
	skills, err := h.skillService.List(c.UserContext())
	if err != nil {
		return err
	}
	if len(skills) == 0 {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.JSON(fiber.Map{"data": skills})
}

// Update handles PATCH /skills/:id.
func (h *SkillsHandler) Update(c *fiber.Ctx) error {
	req, err := parseSkillRequest(c)
	if err != nil {
		return err
	}

	skill, err := h.skillService.Update(c.UserContext(), c.Params("id"), service.SkillInput{
		Name:     req.Name,
		Level:    req.Level,
		Category: req.Category,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": skill})
}

// Delete handles DELETE /skills/:id.
func (h *SkillsHandler) Delete(c *fiber.Ctx) error {
	skill, err := h.skillService.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": skill})
}

func parseSkillRequest(c *fiber.Ctx) (*dto.SkillRequest, error) {
	var req dto.SkillRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return nil, fiber.NewError(http.StatusBadRequest, "name required")
	}
	return &req, nil
}
