package handlers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hrteam/hr-orchestrator/internal/models"
	"hrteam/hr-orchestrator/internal/repositories"
	"hrteam/hr-orchestrator/internal/services"
)

type ScreenHandler struct {
	screenRepo repositories.ScreeningRepository
	docRepo    repositories.DocumentRepository
	worker     services.Worker
	validate   *validator.Validate
}

func NewScreenHandler(
	screenRepo repositories.ScreeningRepository,
	docRepo repositories.DocumentRepository,
	worker services.Worker,
) *ScreenHandler {
	return &ScreenHandler{
		screenRepo: screenRepo,
		docRepo:    docRepo,
		worker:     worker,
		validate:   validator.New(),
	}
}

// HandleScreen handles POST /screenings: creates a queued batch over
// previously uploaded documents and hands it to the worker.
func (h *ScreenHandler) HandleScreen(c *fiber.Ctx) error {
	var req models.ScreenRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "role and at least one document_id are required",
		})
	}

	docIDs := make([]uuid.UUID, 0, len(req.DocumentIDs))
	for _, raw := range req.DocumentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid document_id format",
			})
		}

		if _, err := h.docRepo.FindByID(id); err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Document " + raw + " not found",
			})
		}

		docIDs = append(docIDs, id)
	}

	batch := &models.ScreeningBatch{
		ID:        uuid.New(),
		Role:      req.Role,
		Status:    models.StatusQueued,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := h.screenRepo.CreateBatch(batch, docIDs); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create screening batch",
		})
	}

	h.worker.EnqueueBatch(batch.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ScreenResponse{
		ID:     batch.ID.String(),
		Status: string(models.StatusQueued),
	})
}
