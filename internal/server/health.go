package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDisabled  = "disabled"

	readinessTimeout = 5 * time.Second
)

// Root points clients at the versioned API and its docs.
func (s *Server) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Elfatih API",
		"version": appVersion,
		"docs":    "/swagger/index.html",
		"api":     apiPrefix,
	})
}

// LivenessCheck reports that the process is serving.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "up", "time": time.Now()})
}

// ReadinessCheck pings the database and, when configured, Redis. Redis is
// optional, so its absence reads as disabled rather than unhealthy.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
	defer cancel()

	checks := fiber.Map{
		"database": s.databaseStatus(ctx),
		"redis":    s.redisStatus(ctx),
	}

	code, overall := fiber.StatusOK, statusHealthy
	for _, v := range checks {
		if v == statusUnhealthy {
			code, overall = fiber.StatusServiceUnavailable, statusUnhealthy
		}
	}

	return c.Status(code).JSON(fiber.Map{
		"version": appVersion,
		"status":  overall,
		"checks":  checks,
		"time":    time.Now(),
	})
}

func (s *Server) databaseStatus(ctx context.Context) string {
	sqlDB, err := s.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return statusUnhealthy
	}
	return statusHealthy
}

func (s *Server) redisStatus(ctx context.Context) string {
	if s.redis == nil {
		return statusDisabled
	}
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return statusUnhealthy
	}
	return statusHealthy
}
