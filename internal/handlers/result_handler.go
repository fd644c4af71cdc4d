package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hrteam/hr-orchestrator/internal/models"
	"hrteam/hr-orchestrator/internal/repositories"
	"hrteam/hr-orchestrator/internal/services"
)

type ResultHandler struct {
	screenRepo repositories.ScreeningRepository
	exporter   services.ResultExporter
}

func NewResultHandler(screenRepo repositories.ScreeningRepository, exporter services.ResultExporter) *ResultHandler {
	return &ResultHandler{
		screenRepo: screenRepo,
		exporter:   exporter,
	}
}

// HandleGetResult handles GET /screenings/:id. Results are sorted by
// weighted_average descending; ?limit=N trims to the top N candidates.
func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	batch, err := h.findBatch(c)
	if err != nil {
		return err
	}

	response := models.BatchResultResponse{
		ID:     batch.ID.String(),
		Role:   batch.Role,
		Status: string(batch.Status),
	}

	if batch.Status == models.StatusCompleted {
		sorted := services.SortByScore(toVerdicts(batch.Verdicts))
		if limit := c.QueryInt("limit"); limit > 0 && limit < len(sorted) {
			sorted = sorted[:limit]
		}
		for _, v := range sorted {
			response.Results = append(response.Results, models.VerdictData{
				Filename:        v.Filename,
				WeightedAverage: v.WeightedAverage,
				Verdict:         v.Verdict,
				Reasoning:       v.Reasoning,
			})
		}
	}

	if batch.Status == models.StatusFailed && batch.ErrorMessage != "" {
		response.ErrorMessage = &batch.ErrorMessage
	}

	return c.JSON(response)
}

// HandleExport handles GET /screenings/:id/export?format=csv|xlsx.
func (h *ResultHandler) HandleExport(c *fiber.Ctx) error {
	batch, err := h.findBatch(c)
	if err != nil {
		return err
	}

	if batch.Status != models.StatusCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Screening batch is not completed yet",
		})
	}

	sorted := services.SortByScore(toVerdicts(batch.Verdicts))

	format := c.Query("format", "csv")
	var data []byte
	var contentType string

	switch format {
	case "csv":
		data, err = h.exporter.ExportCSV(sorted)
		contentType = "text/csv"
	case "xlsx":
		data, err = h.exporter.ExportXLSX(sorted)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "format must be csv or xlsx",
		})
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to export results: %v", err),
		})
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="screening_%s.%s"`, batch.ID, format))

	return c.Send(data)
}

// findBatch resolves the :id param; failures surface through the app error
// handler as JSON.
func (h *ResultHandler) findBatch(c *fiber.Ctx) (*models.ScreeningBatch, error) {
	batchID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid screening batch ID format")
	}

	batch, err := h.screenRepo.FindByID(batchID)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Screening batch not found")
	}

	return batch, nil
}

func toVerdicts(records []models.VerdictRecord) []services.Verdict {
	verdicts := make([]services.Verdict, 0, len(records))
	for _, r := range records {
		verdicts = append(verdicts, services.Verdict{
			Filename:        r.Filename,
			WeightedAverage: r.WeightedAverage,
			Verdict:         r.Verdict,
			Reasoning:       r.Reasoning,
		})
	}
	return verdicts
}
