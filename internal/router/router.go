package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/joonho0410/StellaClip-sub001/internal/handler"
	"github.com/joonho0410/StellaClip-sub001/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Video  *handler.VideoHandler
	Member *handler.MemberHandler
	Stats  *handler.StatsHandler
	Ingest *handler.IngestHandler
	Health *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Probes and metrics (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// API routes
	api := app.Group("/api")

	searchLimit := middleware.NewSearchRateLimiter().Handler()
	statsLimit := middleware.NewStatsRateLimiter().Handler()
	ingestLimit := middleware.NewIngestRateLimiter().Handler()
	adminLimit := middleware.NewAdminRateLimiter().Handler()

	// Video routes
	api.Get("/videos", h.Video.Search, searchLimit)
	api.Get("/videos/:videoId/appearances", h.Video.Appearances, searchLimit)

	// Taxonomy routes
	api.Get("/members", h.Member.List)

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, statsLimit)

	// Ingestion routes
	api.Post("/ingest", h.Ingest.Trigger, ingestLimit)
	api.Post("/admin/reclassify", h.Ingest.Reclassify, adminLimit)
}
