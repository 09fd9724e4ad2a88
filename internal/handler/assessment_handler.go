package handler

import (
	"learnbyte/internal/dto"
	"learnbyte/internal/ingest"
	"learnbyte/internal/logger"
	"learnbyte/internal/service"
	"learnbyte/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AssessmentHandler handles quiz generation HTTP requests
type AssessmentHandler struct {
	service   service.AssessmentService
	validator *validation.Validator
}

// NewAssessmentHandler creates a new AssessmentHandler instance
func NewAssessmentHandler(svc service.AssessmentService, validator *validation.Validator) *AssessmentHandler {
	return &AssessmentHandler{service: svc, validator: validator}
}

// GenerateQuiz handles POST /api/quiz
func (h *AssessmentHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = 5
	}
	if errs := h.validator.ValidateGenerateRequest(&req); len(errs) > 0 {
		return errs
	}

	sourceText := ingest.NormalizeExtracted(req.Text)
	if ingest.LooksMangled(sourceText) {
		logger.Get().Warn("Source text looks mangled; generation quality may suffer",
			zap.Int("length", len(sourceText)))
	}

	batch, err := h.service.GenerateAssessment(c.Context(), sourceText, req.NumQuestions)
	if err != nil {
		return err
	}

	status := "success"
	if batch.Provider != "generated" {
		status = "fallback"
	}
	return c.JSON(dto.GenerateAssessmentResponse{
		Status:   status,
		Provider: string(batch.Provider),
		Items:    batch.Items,
	})
}
