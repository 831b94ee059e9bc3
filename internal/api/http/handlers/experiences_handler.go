package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/admin-portal-service/internal/api/dto"
	"github.com/spec-kit/admin-portal-service/internal/service"
)

// ExperiencesHandler exposes experience endpoints. Reads are public, writes
// are authenticated.
type ExperiencesHandler struct {
	experienceService *service.ExperienceService
}

// NewExperiencesHandler constructs handler.
func NewExperiencesHandler(experienceService *service.ExperienceService) *ExperiencesHandler {
	return &ExperiencesHandler{experienceService: experienceService}
}

// Create handles POST /experiences.
func (h *ExperiencesHandler) Create(c *fiber.Ctx) error {
	req, err := parseExperienceRequest(c)
	if err != nil {
		return err
	}

	experience, err := h.experienceService.Create(c.UserContext(), service.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		StartedAt:   req.StartedAt,
		EndedAt:     req.EndedAt,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": experience})
}

// Get handles GET /experiences/:id.
func (h *ExperiencesHandler) Get(c *fiber.Ctx) error {
	experience, err := h.experienceService.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": experience})
}

// List handles GET /experiences. Returns 204 when no experiences exist.
func (h *ExperiencesHandler) List(c *fiber.Ctx) error {
	experiences, err := h.experienceService.List(c.UserContext())
	if err != nil {
		return err
	}
	if len(experiences) == 0 {
		return c.SendStatus(http.StatusNoContent)
	}
	return c.JSON(fiber.Map{"data": experiences})
}

// Update handles PATCH /experiences/:id.
func (h *ExperiencesHandler) Update(c *fiber.Ctx) error {
	req, err := parseExperienceRequest(c)
	if err != nil {
		return err
	}

	experience, err := h.experienceService.Update(c.UserContext(), c.Params("id"), service.ExperienceInput{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
		StartedAt:   req.StartedAt,
		EndedAt:     req.EndedAt,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": experience})
}

// Delete handles DELETE /experiences/:id.
func (h *ExperiencesHandler) Delete(c *fiber.Ctx) error {
	experience, err := h.experienceService.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": experience})
}

func parseExperienceRequest(c *fiber.Ctx) (*dto.ExperienceRequest, error) {
	var req dto.ExperienceRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Title == "" || req.Company == "" {
		return nil, fiber.NewError(http.StatusBadRequest, "title and company required")
	}
	return &req, nil
}
