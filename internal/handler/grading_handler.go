package handler

import (
	"learnbyte/internal/dto"
	"learnbyte/internal/service"
	"learnbyte/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GradingHandler handles quiz submission HTTP requests
type GradingHandler struct {
	service   service.GradingService
	validator *validation.Validator
}

// NewGradingHandler creates a new GradingHandler instance
func NewGradingHandler(svc service.GradingService, validator *validation.Validator) *GradingHandler {
	return &GradingHandler{service: svc, validator: validator}
}

// SubmitQuiz handles POST /api/quiz/submit
func (h *GradingHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateSubmitRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.GradeSubmission(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetScores handles GET /api/quiz/scores
func (h *GradingHandler) GetScores(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	limit := c.QueryInt("limit", 50)

	resp, err := h.service.GetSessionScores(c.Context(), sessionID, limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
