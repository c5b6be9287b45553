// Package database opens the GORM connection and manages the schema.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"elfatih/internal/config"
	"elfatih/internal/middleware"
	"elfatih/internal/observability"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	defaultMaxOpenConns = 25
	defaultMaxIdleConns = 5
	defaultConnLifetime = 5 * time.Minute
	defaultSQLitePath   = "elfatih.db"
)

var (
	// DB is the primary connection once Connect succeeds.
	DB *gorm.DB
	// ReadDB is the optional read replica.
	ReadDB *gorm.DB
)

// GetReadDB returns the replica, or nil when DB_READ_HOST is unset.
func GetReadDB() *gorm.DB { return ReadDB }

// ConnectOptions tunes ConnectWithOptions.
type ConnectOptions struct {
	ApplySchema bool
}

// Connect opens the database and brings the schema up to date.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	return ConnectWithOptions(cfg, ConnectOptions{ApplySchema: true})
}

// ConnectWithOptions opens the primary pool and, for postgres with
// DB_READ_HOST set, a read replica. A replica that fails to open is
// logged and skipped.
func ConnectWithOptions(cfg *config.Config, opts ConnectOptions) (*gorm.DB, error) {
	primary, err := open(dialector(cfg), cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := enableForeignKeys(primary, cfg); err != nil {
		return nil, err
	}
	middleware.Logger.Info("database connected", slog.String("driver", driverName(cfg)))

	if opts.ApplySchema {
		if err := ApplySchema(context.Background(), primary, cfg); err != nil {
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}

	if cfg.DBReadHost != "" && driverName(cfg) == "postgres" {
		replica, err := open(postgres.Open(readDSN(cfg)), cfg, false)
		if err != nil {
			middleware.Logger.Warn("read replica unavailable, using primary", slog.String("error", err.Error()))
		} else {
			ReadDB = replica
		}
	}

	DB = primary
	return DB, nil
}

func open(d gorm.Dialector, cfg *config.Config, instrument bool) (*gorm.DB, error) {
	db, err := gorm.Open(d, &gorm.Config{
		Logger:         newGormLogger(middleware.Logger),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if instrument {
		if err := observability.RegisterGormMetrics(db); err != nil {
			return nil, fmt.Errorf("register gorm metrics: %w", err)
		}
	}
	if err := configurePool(db, cfg); err != nil {
		return nil, err
	}
	return db, nil
}

func driverName(cfg *config.Config) string {
	if cfg.DBDriver == "" {
		return "postgres"
	}
	return cfg.DBDriver
}

func dialector(cfg *config.Config) gorm.Dialector {
	if driverName(cfg) == "sqlite" {
		return sqlite.Open(orDefault(cfg.DBSQLitePath, defaultSQLitePath))
	}
	return postgres.Open(primaryDSN(cfg))
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func postgresDSN(host, port, user, password string, cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, cfg.DBName, orDefault(cfg.DBSSLMode, "disable"))
}

func primaryDSN(cfg *config.Config) string {
	return postgresDSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg)
}

// readDSN falls back to the primary credentials when no replica user is set.
func readDSN(cfg *config.Config) string {
	user, password := cfg.DBReadUser, cfg.DBReadPassword
	if user == "" {
		user, password = cfg.DBUser, cfg.DBPassword
	}
	return postgresDSN(cfg.DBReadHost, cfg.DBReadPort, user, password, cfg)
}

func configurePool(db *gorm.DB, cfg *config.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	maxOpen, maxIdle := cfg.DBMaxOpenConns, cfg.DBMaxIdleConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	if maxIdle <= 0 {
		maxIdle = defaultMaxIdleConns
	}
	lifetime := time.Duration(cfg.DBConnMaxLifetimeMinutes) * time.Minute
	if lifetime <= 0 {
		lifetime = defaultConnLifetime
	}
	// sqlite allows one writer; more connections just produce SQLITE_BUSY.
	if driverName(cfg) == "sqlite" {
		maxOpen, maxIdle = 1, 1
	}

	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)
	return nil
}

func enableForeignKeys(db *gorm.DB, cfg *config.Config) error {
	if driverName(cfg) != "sqlite" {
		return nil
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	return nil
}
