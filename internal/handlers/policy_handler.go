package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hrteam/hr-orchestrator/internal/models"
	"hrteam/hr-orchestrator/internal/services"
)

type PolicyHandler struct {
	policyAgent services.PolicyAgent
	validate    *validator.Validate
}

func NewPolicyHandler(policyAgent services.PolicyAgent) *PolicyHandler {
	return &PolicyHandler{
		policyAgent: policyAgent,
		validate:    validator.New(),
	}
}

// HandleAsk handles POST /policy/ask.
func (h *PolicyHandler) HandleAsk(c *fiber.Ctx) error {
	var req models.PolicyRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "question is required",
		})
	}

	if _, err := services.SanitizeQuery(req.Question); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	answer, err := h.policyAgent.Answer(c.Context(), req.Question)
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(models.PolicyResponse{Answer: answer})
}
