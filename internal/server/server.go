// Package server exposes the HTTP API and the live feedback websocket feed.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "elfatih/docs" // swagger docs
	"elfatih/internal/auth"
	"elfatih/internal/cache"
	"elfatih/internal/config"
	"elfatih/internal/database"
	"elfatih/internal/featureflags"
	"elfatih/internal/middleware"
	"elfatih/internal/models"
	"elfatih/internal/notifications"
	"elfatih/internal/repository"
	"elfatih/internal/service"
	"elfatih/internal/storage"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	apiPrefix   = "/api/v1"
	serviceName = "elfatih-api"
	appVersion  = "1.0.0"

	bucketCheckTimeout = 10 * time.Second
)

// Server owns the API dependencies. Handlers hang off it as methods.
type Server struct {
	config *config.Config
	db     *gorm.DB
	redis  *redis.Client
	app    *fiber.App

	promMiddleware *fiberprometheus.FiberPrometheus
	tokens         *auth.TokenManager
	revocations    auth.RevocationStore
	authenticator  *middleware.Authenticator
	limiter        *middleware.Limiter
	featureFlags   *featureflags.Manager

	// notifier and feedbackHub are nil without Redis.
	notifier    *notifications.Notifier
	feedbackHub *notifications.FeedbackHub
	stopFeed    context.CancelFunc

	images          *service.ImageService
	userService     *service.UserService
	postService     *service.PostService
	feedbackService *service.FeedbackService
	deviceService   *service.DeviceService
}

// NewServer connects to the database and Redis, then builds the server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	cache.InitRedis(cfg.RedisURL)
	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps builds the server around existing connections. With a
// nil redisClient there is no caching, no token revocation and no live feed.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL())
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	flags := featureflags.NewManager(cfg.FeatureFlags)
	mirror, err := newReplicator(cfg, flags)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics(serviceName),
		tokens:         tokens,
		limiter:        middleware.NewLimiter(redisClient, cfg.Env),
		featureFlags:   flags,
		images:         service.NewImageService(cfg),
	}

	if redisClient != nil {
		s.revocations = auth.NewRedisRevocationStore(redisClient)
		s.notifier = notifications.NewNotifier(redisClient)
		s.feedbackHub = notifications.NewFeedbackHub()
	}
	s.authenticator = middleware.NewAuthenticator(tokens, s.revocations)

	posts := repository.NewPostRepository(db)
	feedback := repository.NewFeedbackRepository(db)

	s.userService = service.NewUserService(repository.NewUserRepository(db))
	s.postService = service.NewPostService(posts, repository.NewSectionRepository(db), feedback, s.images, mirror)
	s.feedbackService = service.NewFeedbackService(posts, feedback, s.notifier, flags)
	s.deviceService = service.NewDeviceService(repository.NewDeviceRepository(db), s.images, service.NewQRCodeService(), mirror)

	return s, nil
}

// newReplicator returns nil when object storage is off. The database copy
// stays authoritative either way.
func newReplicator(cfg *config.Config, flags *featureflags.Manager) (*storage.Replicator, error) {
	if !cfg.ObjectStorageEnabled {
		return nil, nil
	}
	target, err := storage.NewMinIOMirror(cfg)
	if err != nil {
		return nil, fmt.Errorf("object storage: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), bucketCheckTimeout)
	defer cancel()
	if err := target.EnsureBucket(ctx, cfg.ObjectStorageRegion); err != nil {
		middleware.Logger.Warn("object storage bucket check failed",
			"bucket", target.Bucket(), "error", err.Error())
	}

	// An unset flag defers to OBJECT_STORAGE_ENABLED.
	enabled := func() bool {
		return !flags.IsSet(featureflags.ObjectStorageMirror) || flags.Enabled(featureflags.ObjectStorageMirror, 0)
	}
	return storage.NewReplicator(target, enabled, middleware.Logger), nil
}

// NewApp builds a configured Fiber app without starting it.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "Elfatih API",
		BodyLimit:    bodyLimit(s.images.MaxUploadSizeBytes()),
		ErrorHandler: s.handleError,
	})
	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err.Error())
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}

// bodyLimit allows a multipart post carrying several images. Each image is
// still held to the pipeline's own ceiling.
func bodyLimit(maxImageBytes int64) int {
	const floor = 4 << 20
	return max(int(maxImageBytes)*11, floor)
}

// Start wires the live feed to Redis and blocks serving HTTP.
func (s *Server) Start() error {
	s.app = s.NewApp()

	if s.feedbackHub != nil {
		ctx, cancel := context.WithCancel(context.Background())
		s.stopFeed = cancel
		go func() {
			if err := s.feedbackHub.StartWiring(ctx, s.notifier); err != nil {
				middleware.Logger.Error("feedback feed wiring failed", "error", err.Error())
			}
		}()
	}

	middleware.Logger.Info("server starting", "port", s.config.Port, "env", s.config.Env)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown stops accepting requests, closes feed connections and releases
// the database and Redis handles.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.stopFeed != nil {
		s.stopFeed()
	}

	var errs []error
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http: %w", err))
		}
	}
	if s.feedbackHub != nil {
		if err := s.feedbackHub.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("feedback hub: %w", err))
		}
	}
	if sqlDB, err := s.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database: %w", err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		middleware.Logger.Error("server shutdown finished with errors", "error", err.Error())
		return err
	}
	middleware.Logger.Info("server shutdown complete")
	return nil
}
