package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hrteam/hr-orchestrator/internal/models"
	"hrteam/hr-orchestrator/internal/services"
)

type QueryHandler struct {
	validate *validator.Validate
}

func NewQueryHandler() *QueryHandler {
	return &QueryHandler{validate: validator.New()}
}

// HandleQuery handles POST /query: sanitizes the free-text query and routes
// it to an assistant mode.
func (h *QueryHandler) HandleQuery(c *fiber.Ctx) error {
	var req models.QueryRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}

	sanitized, err := services.SanitizeQuery(req.Query)
	if err != nil {
		if errors.Is(err, services.ErrUnsafeInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.QueryResponse{
		Mode: string(services.ClassifyQuery(sanitized)),
	})
}
