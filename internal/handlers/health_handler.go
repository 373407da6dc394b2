package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	aiConfigured   bool
	jobsConfigured bool
}

func NewHealthHandler(aiConfigured, jobsConfigured bool) *HealthHandler {
	return &HealthHandler{aiConfigured: aiConfigured, jobsConfigured: jobsConfigured}
}

// HandleHealth reports liveness plus which optional integrations have
// credentials. The server runs fine without them, features just degrade.
func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":          "healthy",
		"ai_configured":   h.aiConfigured,
		"jobs_configured": h.jobsConfigured,
	})
}
