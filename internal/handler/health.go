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

// Ready handles GET /health/ready — readiness probe with dependency checks.
// The database is required; the cache is optional and only degrades status.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	dbCheck := checkDependency(ctx, func(ctx context.Context) error {
		return h.pool.Ping(ctx)
	})

	var cacheCheck fiber.Map
	if h.rdb == nil {
		cacheCheck = fiber.Map{"status": "disabled"}
	} else {
		cacheCheck = checkDependency(ctx, func(ctx context.Context) error {
			return h.rdb.Ping(ctx).Err()
		})
	}

	overallStatus := "healthy"
	if dbCheck["status"] != "up" {
		overallStatus = "unhealthy"
	} else if cacheCheck["status"] == "down" {
		overallStatus = "degraded"
	}

	status := fiber.StatusOK
	if overallStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbCheck,
			"redis":    cacheCheck,
		},
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
	})
}

func checkDependency(ctx context.Context, ping func(context.Context) error) fiber.Map {
	start := time.Now()
	err := ping(ctx)
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
