package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"hrteam/hr-orchestrator/internal/models"
	"hrteam/hr-orchestrator/internal/services"
)

type OnboardHandler struct {
	notifier services.OnboardingNotifier
	exporter services.ResultExporter
	logbook  *services.OnboardingLog
	validate *validator.Validate
}

func NewOnboardHandler(
	notifier services.OnboardingNotifier,
	exporter services.ResultExporter,
	logbook *services.OnboardingLog,
) *OnboardHandler {
	return &OnboardHandler{
		notifier: notifier,
		exporter: exporter,
		logbook:  logbook,
		validate: validator.New(),
	}
}

// HandleManual handles POST /onboarding/manual: one invitation for a single
// candidate.
func (h *OnboardHandler) HandleManual(c *fiber.Ctx) error {
	var req models.ManualOnboardRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "name, a valid email, date and time are required",
		})
	}

	if !h.notifier.Configured() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing email credentials. Please set SMTP_HOST, SMTP_USER and SMTP_PASS.",
		})
	}

	entry, err := h.notifier.Notify(c.Context(), services.NotifyRequest{
		Candidate:    req.Name,
		Email:        req.Email,
		Role:         req.Role,
		Date:         req.Date,
		Time:         req.Time,
		Template:     req.Template,
		GeneratePlan: req.GeneratePlan,
	}, "Manual")

	if err != nil {
		status := fiber.StatusBadGateway
		if !strings.HasPrefix(entry.Status, "Failed") {
			// Formatting errors never reached the transport
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
			"entry": entry,
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Email sent successfully to %s (%s)", req.Name, entry.Email),
		"entry":   entry,
	})
}

// HandleBulk handles POST /onboarding/bulk: reads an uploaded screening
// results file (CSV or XLSX) and invites every PASS candidate.
func (h *OnboardHandler) HandleBulk(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("results")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Upload a 'results' file (CSV or XLSX)",
		})
	}

	date := c.FormValue("date")
	timeOfDay := c.FormValue("time")
	if date == "" || timeOfDay == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "date and time are required",
		})
	}

	if !h.notifier.Configured() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing email credentials. Please set SMTP_HOST, SMTP_USER and SMTP_PASS.",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open results file",
		})
	}
	defer file.Close()

	passed, err := h.exporter.ParsePassedRows(fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, services.ErrMissingVerdictColumn) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Error processing file: %v", err),
		})
	}

	if len(passed) == 0 {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "No passed candidates found in this file.",
		})
	}

	template := c.FormValue("template")
	role := c.FormValue("role")
	generatePlan := c.FormValue("generate_plan") == "true"

	response := models.BulkOnboardResponse{
		Sent:   []models.OnboardResult{},
		Failed: []models.OnboardResult{},
	}

	for _, row := range passed {
		candidate := candidateNameFromFilename(row.Filename)

		entry, err := h.notifier.Notify(c.Context(), services.NotifyRequest{
			Candidate:    candidate,
			Email:        row.Email,
			FreeText:     row.RowText,
			Filename:     row.Filename,
			Role:         role,
			Date:         date,
			Time:         timeOfDay,
			Template:     template,
			GeneratePlan: generatePlan,
		}, "Bulk")

		result := models.OnboardResult{
			Candidate: candidate,
			Email:     entry.Email,
			Status:    entry.Status,
		}
		if err != nil {
			if result.Status == "" {
				result.Status = fmt.Sprintf("Failed: %v", err)
			}
			response.Failed = append(response.Failed, result)
		} else {
			response.Sent = append(response.Sent, result)
		}
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Emails sent successfully to %d candidates.", len(response.Sent)),
		"sent":    response.Sent,
		"failed":  response.Failed,
	})
}

// HandleGetLog handles GET /onboarding/log.
func (h *OnboardHandler) HandleGetLog(c *fiber.Ctx) error {
	entries, err := h.logbook.Entries()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to read onboarding log: %v", err),
		})
	}

	return c.JSON(fiber.Map{
		"entries": entries,
	})
}

// candidateNameFromFilename turns "jane_doe.pdf" into "Jane Doe".
func candidateNameFromFilename(filename string) string {
	name := strings.SplitN(filename, ".", 2)[0]
	name = strings.ReplaceAll(name, "_", " ")

	words := strings.Fields(name)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	if len(words) == 0 {
		return "Candidate"
	}

	return strings.Join(words, " ")
}
