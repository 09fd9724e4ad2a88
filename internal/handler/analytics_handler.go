package handler

import (
	"learnbyte/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler exposes mastery aggregation snapshots
type AnalyticsHandler struct {
	mastery *service.MasteryService
}

// NewAnalyticsHandler creates a new AnalyticsHandler instance
func NewAnalyticsHandler(mastery *service.MasteryService) *AnalyticsHandler {
	return &AnalyticsHandler{mastery: mastery}
}

// GetOverallStats handles GET /api/analytics/overall
func (h *AnalyticsHandler) GetOverallStats(c *fiber.Ctx) error {
	return c.JSON(h.mastery.OverallSnapshot())
}

// GetUserStats handles GET /api/analytics/users/:session_id
func (h *AnalyticsHandler) GetUserStats(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	stats, found := h.mastery.UserSnapshot(sessionID)
	if !found {
		return c.JSON(fiber.Map{
			"status":    "success",
			"message":   "No data for user",
			"sessionId": sessionID,
		})
	}
	return c.JSON(stats)
}
