package server

import (
	"time"

	"elfatih/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const (
	defaultOrigins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	corsHeaders    = "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version"

	globalRequestsPerMinute = 100
)

// SetupMiddleware installs the global middleware chain. Order matters:
// request IDs exist before logging, and CORS runs before the limiter so
// rejected browser requests still carry CORS headers.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(
		recover.New(),
		requestid.New(),
		middleware.TracingMiddleware(),
		middleware.ContextMiddleware(),
	)
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Media is fetched cross-origin by the frontend.
	app.Use(helmet.New(helmet.Config{CrossOriginResourcePolicy: "cross-origin"}))
	app.Use(middleware.StructuredLogger())
	app.Use(s.corsMiddleware())
	app.Use(s.globalLimiter())
}

func (s *Server) corsMiddleware() fiber.Handler {
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = defaultOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     corsHeaders,
		AllowCredentials: origins != "*",
		MaxAge:           int((24 * time.Hour).Seconds()),
	})
}

// globalLimiter is a per-IP ceiling. Preflights and the test environment
// are exempt.
func (s *Server) globalLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        globalRequestsPerMinute,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || s.config.Env == "test"
		},
		KeyGenerator: func(c *fiber.Ctx) string { return c.IP() },
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	})
}
