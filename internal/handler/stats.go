package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/joonho0410/StellaClip-sub001/internal/middleware"
	"github.com/joonho0410/StellaClip-sub001/internal/service"
)

type StatsHandler struct {
	svc *service.VideoService
}

func NewStatsHandler(svc *service.VideoService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// GetStats handles GET /api/stats
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch statistics")
	}

	return c.JSON(stats)
}
