package handler

import (
	"learnbyte/internal/dto"
	"learnbyte/internal/service"
	"learnbyte/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SummaryHandler handles transcript condensation HTTP requests
type SummaryHandler struct {
	service   service.SummaryService
	validator *validation.Validator
}

// NewSummaryHandler creates a new SummaryHandler instance
func NewSummaryHandler(svc service.SummaryService, validator *validation.Validator) *SummaryHandler {
	return &SummaryHandler{service: svc, validator: validator}
}

// SummarizeTranscript handles POST /api/summaries
func (h *SummaryHandler) SummarizeTranscript(c *fiber.Ctx) error {
	var req dto.SummarizeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.MaxWords == 0 {
		req.MaxWords = 250
	}
	if errs := h.validator.ValidateSummarizeRequest(&req); len(errs) > 0 {
		return errs
	}

	result, err := h.service.Summarize(c.Context(), req.Transcript, req.MaxWords)
	if err != nil {
		return err
	}

	return c.JSON(dto.SummarizeResponse{
		Status:     "success",
		Summary:    result.Summary,
		ChunkCount: result.ChunkCount,
		Provider:   string(result.Provider),
	})
}
