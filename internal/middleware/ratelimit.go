package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

var errNoRedis = errors.New("rate limit store not configured")

// Rule is a fixed-window quota for one endpoint.
type Rule struct {
	Name   string
	Max    int
	Window time.Duration
	// FailClosed rejects requests with 503 when the counter store is down.
	// The default lets them through.
	FailClosed bool
}

// Limiter counts hits per subject in Redis. Environments listed as exempt
// (test and development by default) are never limited.
type Limiter struct {
	rdb    *redis.Client
	exempt bool
}

// NewLimiter builds a limiter for the given APP_ENV.
func NewLimiter(rdb *redis.Client, env string) *Limiter {
	return &Limiter{rdb: rdb, exempt: env == "" || env == "test" || env == "development"}
}

func rateKey(resource, subject string) string {
	return "rl:" + resource + ":" + subject
}

// Allow records one hit and reports whether subject is still within max
// for the current window.
func (l *Limiter) Allow(ctx context.Context, resource, subject string, max int, window time.Duration) (bool, error) {
	if l.exempt {
		return true, nil
	}
	if l.rdb == nil {
		return false, errNoRedis
	}

	key := rateKey(resource, subject)
	hits, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	// The first hit opens the window.
	if hits == 1 {
		if err := l.rdb.Expire(ctx, key, window).Err(); err != nil {
			return false, err
		}
	}
	return hits <= int64(max), nil
}

// subject keys authenticated callers by user and everyone else by IP.
func subject(c *fiber.Ctx) string {
	if claims, ok := ClaimsFrom(c); ok {
		return fmt.Sprintf("user:%d", claims.UserID)
	}
	return "ip:" + c.IP()
}

// Middleware enforces rule. Without a rule name the request path is used.
func (l *Limiter) Middleware(rule Rule) fiber.Handler {
	retryAfter := strconv.Itoa(int(rule.Window.Seconds()))
	return func(c *fiber.Ctx) error {
		resource := rule.Name
		if resource == "" {
			resource = c.Path()
		}

		allowed, err := l.Allow(c.UserContext(), resource, subject(c), rule.Max, rule.Window)
		switch {
		case err != nil && rule.FailClosed:
			Logger.WarnContext(c.UserContext(), "rate limit store unavailable, rejecting",
				slog.String("resource", resource), slog.String("error", err.Error()))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "rate limit unavailable"})
		case err != nil:
			return c.Next()
		case !allowed:
			c.Set(fiber.HeaderRetryAfter, retryAfter)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded"})
		}
		return c.Next()
	}
}
