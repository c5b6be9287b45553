// Package bootstrap prepares the process-wide runtime shared by the server
// and the operational commands.
package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"elfatih/internal/cache"
	"elfatih/internal/config"
	"elfatih/internal/database"
	"elfatih/internal/middleware"
	"elfatih/internal/models"
	"elfatih/internal/repository"
	"elfatih/internal/seed"
	"elfatih/internal/service"
	"elfatih/internal/validation"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemo fills an empty database with demo data.
	SeedDemo bool
}

// InitRuntime connects to the database and Redis, makes sure the root admin
// exists and optionally seeds demo data. A nil Redis client means Redis was
// unreachable and the API runs uncached.
func InitRuntime(ctx context.Context, cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	users := service.NewUserService(repository.NewUserRepository(db))
	if err := EnsureRootAdmin(ctx, cfg, users); err != nil {
		return nil, nil, fmt.Errorf("failed to bootstrap root admin: %w", err)
	}

	if opts.SeedDemo {
		if err := seedIfEmpty(ctx, db, cfg); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

// EnsureRootAdmin creates the configured root account, or promotes it back to
// ADMIN if it already exists. With ForceCredentials the email and password are
// reset to the configured values.
func EnsureRootAdmin(ctx context.Context, cfg *config.Config, users *service.UserService) error {
	if cfg == nil || !cfg.RootAdminBootstrap {
		return nil
	}
	if cfg.RootAdminPassword == "" {
		middleware.Logger.Warn("root admin bootstrap skipped: ROOT_ADMIN_PASSWORD is not set")
		return nil
	}

	username := strings.TrimSpace(cfg.RootAdminUsername)
	if username == "" {
		username = "admin"
	}
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("ROOT_ADMIN_USERNAME: %w", err)
	}
	if err := validation.ValidatePassword(cfg.RootAdminPassword); err != nil {
		return fmt.Errorf("ROOT_ADMIN_PASSWORD: %w", err)
	}
	email := strings.ToLower(strings.TrimSpace(cfg.RootAdminEmail))
	if email == "" {
		email = "admin@elfatih.local"
	}

	user, err := users.SetRoleByUsername(ctx, username, models.RoleAdmin)
	if err != nil && models.CodeOf(err) != models.CodeNotFound {
		return err
	}

	if user == nil {
		user, err = users.AdminCreate(ctx, service.CreateUserInput{
			RegisterInput: service.RegisterInput{
				Username: username,
				Email:    email,
				FullName: "Root Administrator",
				Password: cfg.RootAdminPassword,
			},
			UserType: models.RoleAdmin,
		})
		if err != nil {
			return err
		}
		middleware.Logger.Info("root admin created", "user_id", user.ID, "username", username)
		return nil
	}

	if cfg.RootAdminForceCredentials {
		active := true
		_, err = users.Update(ctx, service.Actor{UserID: user.ID, Role: models.RoleAdmin}, user.ID, service.UpdateUserInput{
			Email:    &email,
			Password: &cfg.RootAdminPassword,
			IsActive: &active,
		})
		if err != nil {
			return err
		}
	}
	middleware.Logger.Info("root admin ensured", "user_id", user.ID, "username", username)
	return nil
}

func seedIfEmpty(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	var posts int64
	if err := db.WithContext(ctx).Model(&models.Post{}).Count(&posts).Error; err != nil {
		return err
	}
	if posts > 0 {
		return nil
	}
	_, err := seed.NewSeeder(db, cfg, 0).Seed(ctx, seed.DefaultOptions)
	return err
}
