package server

import (
	"time"

	"elfatih/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/swagger"
)

// chain prepends guards to a handler.
func chain(guards []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(guards)+1)
	return append(append(out, guards...), h)
}

// SetupRoutes registers every endpoint. Within a group, fixed segments are
// registered ahead of /:id so they are not captured as IDs.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Root)
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group(apiPrefix)
	api.Get("/swagger/*", swagger.HandlerDefault)
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{Title: "Elfatih Metrics"}))
	api.Get("/feature-flags", s.authenticator.Optional(), s.GetFeatureFlags)

	required := s.authenticator.Required()
	signedIn := []fiber.Handler{required}
	active := []fiber.Handler{required, middleware.ActiveRequired}
	admin := []fiber.Handler{required, middleware.ActiveRequired, middleware.AdminRequired}

	s.authRoutes(api.Group("/auth"), signedIn)
	s.userRoutes(api.Group("/users"), active, admin)
	s.adminRoutes(api.Group("/admin", admin...))
	s.postRoutes(api.Group("/posts"), active, admin)
	s.deviceRoutes(api.Group("/devices"), admin)

	api.Get("/ws/posts/:id/feedback", s.websocketAuth(), s.FeedbackFeedUpgrade, s.FeedbackFeedHandler())
}

func (s *Server) authRoutes(r fiber.Router, signedIn []fiber.Handler) {
	r.Post("/login", s.limiter.Middleware(middleware.Rule{Name: "login", Max: 10, Window: 5 * time.Minute}), s.Login)
	r.Post("/test-token", chain(signedIn, s.TestToken)...)
	r.Get("/test-token", chain(signedIn, s.TestToken)...)
	r.Get("/me", chain(signedIn, s.AuthMe)...)
	r.Post("/refresh", chain(signedIn, s.Refresh)...)
	r.Post("/logout", chain(signedIn, s.Logout)...)
}

func (s *Server) userRoutes(r fiber.Router, active, admin []fiber.Handler) {
	r.Post("/", s.limiter.Middleware(middleware.Rule{Name: "register", Max: 5, Window: 10 * time.Minute}), s.Register)
	r.Get("/me", chain(active, s.GetMe)...)
	r.Put("/me", chain(active, s.UpdateMe)...)
	r.Delete("/me", chain(active, s.DeleteMe)...)
	r.Get("/", chain(active, s.ListUsers)...)
	r.Get("/phone/:phone", s.GetUserByPhone)
	r.Get("/:id", s.GetUser)
	r.Put("/:id", chain(active, s.UpdateUser)...)
	r.Delete("/:id", chain(admin, s.DeleteUser)...)
}

func (s *Server) adminRoutes(r fiber.Router) {
	r.Get("/users", s.AdminListUsers)
	r.Post("/users", s.AdminCreateUser)
	r.Put("/users/:id", s.AdminUpdateUser)
	r.Post("/users/:id/make-admin", s.MakeAdmin)
	r.Post("/users/:id/remove-admin", s.RemoveAdmin)
	r.Post("/users/:id/activate", s.ActivateUser)
	r.Post("/users/:id/deactivate", s.DeactivateUser)
	r.Get("/stats", s.AdminStats)
	r.Post("/posts/:id/reconcile-feedback", s.ReconcileFeedback)
}

func (s *Server) postRoutes(r fiber.Router, active, admin []fiber.Handler) {
	r.Get("/", s.ListPosts)
	r.Get("/with-feedback", chain(active, s.ListPostsWithFeedback)...)
	r.Post("/", chain(admin, s.CreatePost)...)
	r.Post("/complete", chain(admin, s.CreateCompletePost)...)

	r.Get("/sections/:id/image", s.GetSectionImage)
	r.Put("/sections/:id/order", chain(admin, s.UpdateSectionOrder)...)
	r.Delete("/sections/:id", chain(admin, s.DeleteSection)...)

	r.Get("/:id/image", s.GetPostImage)
	r.Put("/:id/image", chain(admin, s.SetPostImage)...)
	r.Delete("/:id/image", chain(admin, s.RemovePostImage)...)

	r.Post("/:id/feedback", chain(active, s.UpsertFeedback)...)
	r.Delete("/:id/feedback", chain(active, s.RemoveFeedback)...)
	r.Get("/:id/feedback/check", chain(active, s.CheckFeedback)...)

	r.Post("/:id/sections/text", chain(admin, s.AddTextSection)...)
	r.Post("/:id/sections/image", chain(admin, s.AddImageSection)...)
	r.Post("/:id/sections/video", chain(admin, s.AddVideoSection)...)

	r.Get("/:id", s.GetPost)
	r.Put("/:id", chain(admin, s.UpdatePost)...)
	r.Delete("/:id", chain(admin, s.DeletePost)...)
}

func (s *Server) deviceRoutes(r fiber.Router, admin []fiber.Handler) {
	r.Get("/", s.ListDevices)
	r.Post("/", chain(admin, s.CreateDevice)...)
	r.Post("/with-image", chain(admin, s.CreateDeviceWithImage)...)
	r.Get("/name/:name", s.GetDeviceByName)

	r.Get("/:id/image", s.GetDeviceImage)
	r.Put("/:id/image", chain(admin, s.SetDeviceImage)...)
	r.Delete("/:id/image", chain(admin, s.RemoveDeviceImage)...)
	r.Get("/:id/qr-code/info", s.GetDeviceQRInfo)
	r.Get("/:id/qr-code", s.GetDeviceQRCode)
	r.Post("/:id/regenerate-qr", chain(admin, s.RegenerateDeviceQR)...)

	r.Post("/:id/activate", chain(admin, s.ActivateDevice)...)
	r.Delete("/:id/hard-delete", chain(admin, s.HardDeleteDevice)...)
	r.Get("/:id", s.GetDevice)
	r.Put("/:id", chain(admin, s.UpdateDevice)...)
	r.Delete("/:id", chain(admin, s.SoftDeleteDevice)...)
}
