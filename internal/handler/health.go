package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	pool    *pgxpool.Pool
	rdb     *redis.Client
	startAt time.Time
}

func NewHealthHandler(pool *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{
		pool:    pool,
		rdb:     rdb,
		startAt: time.Now(),
	}
}

// Live handles GET /health/live — liveness probe.
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready — readiness probe. Postgres and the seeded
// member roster are required; Redis is optional (the cache degrades to
// no-op), so a disabled cache never marks the service unready.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	dbCheck := h.checkDB(ctx)
	rosterCheck := h.checkRoster(ctx)
	redisCheck := checkRedis(ctx, h.rdb)

	status := "healthy"
	if dbCheck["status"] != "up" || rosterCheck["status"] != "up" {
		status = "degraded"
	}
	if s := redisCheck["status"]; s != "up" && s != "disabled" {
		status = "degraded"
	}

	httpStatus := fiber.StatusOK
	if status != "healthy" {
		httpStatus = fiber.StatusServiceUnavailable
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status": status,
		"checks": fiber.Map{
			"database": dbCheck,
			"roster":   rosterCheck,
			"redis":    redisCheck,
		},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
	})
}

func (h *HealthHandler) checkDB(ctx context.Context) fiber.Map {
	start := time.Now()
	err := h.pool.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}

// checkRoster verifies that the member taxonomy was seeded; search results
// cannot carry appearance tags without it.
func (h *HealthHandler) checkRoster(ctx context.Context) fiber.Map {
	var n int
	if err := h.pool.QueryRow(ctx, `SELECT COUNT(*) FROM members`).Scan(&n); err != nil {
		return fiber.Map{"status": "down", "error": "query failed"}
	}
	if n == 0 {
		return fiber.Map{"status": "empty", "members": 0}
	}
	return fiber.Map{"status": "up", "members": n}
}

func checkRedis(ctx context.Context, rdb *redis.Client) fiber.Map {
	if rdb == nil {
		return fiber.Map{"status": "disabled"}
	}

	start := time.Now()
	err := rdb.Ping(ctx).Err()
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return fiber.Map{
			"status":     "down",
			"latency_ms": latency,
			"error":      "connection failed",
		}
	}
	return fiber.Map{
		"status":     "up",
		"latency_ms": latency,
	}
}
