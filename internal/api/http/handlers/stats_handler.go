package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/storefront-service/internal/api/dto"
	"github.com/spec-kit/storefront-service/internal/service"
)

// StatsHandler serves the admin dashboard summary.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(c *fiber.Ctx) error {
	stats, err := h.stats.ComputeStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewStatsResponse(stats))
}
