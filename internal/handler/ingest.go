package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/joonho0410/StellaClip-sub001/internal/middleware"
	"github.com/joonho0410/StellaClip-sub001/internal/service"
)

type IngestHandler struct {
	ingestSvc *service.IngestService
	videoSvc  *service.VideoService
}

func NewIngestHandler(ingestSvc *service.IngestService, videoSvc *service.VideoService) *IngestHandler {
	return &IngestHandler{ingestSvc: ingestSvc, videoSvc: videoSvc}
}

type ingestRequest struct {
	Query string `json:"query"`
}

// Trigger handles POST /api/ingest — runs one ingestion batch for the
// given query and reports per-item outcomes.
func (h *IngestHandler) Trigger(c fiber.Ctx) error {
	var req ingestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON with a query field")
	}

	query, errMsg := middleware.ValidateIngestQuery(req.Query)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_QUERY", errMsg)
	}

	start := time.Now()
	report, err := h.ingestSvc.Run(c.Context(), query)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadGateway, "INGEST_FAILED", "Failed to fetch videos from source")
	}

	Metrics.IngestDuration.Observe(time.Since(start).Seconds())
	Metrics.VideosIngested.Add(float64(report.Upserted))

	return c.JSON(report)
}

type reclassifyRequest struct {
	OfficialChannelIDs []string `json:"officialChannelIds"`
}

// Reclassify handles POST /api/admin/reclassify — the explicit migration
// operation that recomputes the official flag against a new allow-list.
func (h *IngestHandler) Reclassify(c fiber.Ctx) error {
	var req reclassifyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Request body must be JSON with an officialChannelIds field")
	}

	changed, err := h.videoSvc.Reclassify(c.Context(), req.OfficialChannelIDs)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reclassify videos")
	}

	return c.JSON(fiber.Map{"changed": changed})
}
