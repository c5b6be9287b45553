// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "elfatih-development-secret-change-me"

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Env                      string `mapstructure:"APP_ENV"`
	Port                     string `mapstructure:"PORT"`
	JWTSecret                string `mapstructure:"JWT_SECRET"`
	AccessTokenExpireMinutes int    `mapstructure:"ACCESS_TOKEN_EXPIRE_MINUTES"`

	DBDriver                      string `mapstructure:"DB_DRIVER"`
	DBHost                        string `mapstructure:"DB_HOST"`
	DBPort                        string `mapstructure:"DB_PORT"`
	DBUser                        string `mapstructure:"DB_USER"`
	DBPassword                    string `mapstructure:"DB_PASSWORD"`
	DBName                        string `mapstructure:"DB_NAME"`
	DBSSLMode                     string `mapstructure:"DB_SSLMODE"`
	DBSQLitePath                  string `mapstructure:"DB_SQLITE_PATH"`
	DBMaxOpenConns                int    `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBMaxIdleConns                int    `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBConnMaxLifetimeMinutes      int    `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSchemaMode                  string `mapstructure:"DB_SCHEMA_MODE"`
	DBAutoMigrateAllowDestructive bool   `mapstructure:"DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE"`
	DBReadHost                    string `mapstructure:"DB_READ_HOST"`
	DBReadPort                    string `mapstructure:"DB_READ_PORT"`
	DBReadUser                    string `mapstructure:"DB_READ_USER"`
	DBReadPassword                string `mapstructure:"DB_READ_PASSWORD"`

	RedisURL       string `mapstructure:"REDIS_URL"`
	AllowedOrigins string `mapstructure:"ALLOWED_ORIGINS"`
	FeatureFlags   string `mapstructure:"FEATURE_FLAGS"`

	ImageMaxUploadSizeMB int `mapstructure:"IMAGE_MAX_UPLOAD_SIZE_MB"`

	ObjectStorageEnabled   bool   `mapstructure:"OBJECT_STORAGE_ENABLED"`
	ObjectStorageEndpoint  string `mapstructure:"OBJECT_STORAGE_ENDPOINT"`
	ObjectStorageAccessKey string `mapstructure:"OBJECT_STORAGE_ACCESS_KEY"`
	ObjectStorageSecretKey string `mapstructure:"OBJECT_STORAGE_SECRET_KEY"`
	ObjectStorageBucket    string `mapstructure:"OBJECT_STORAGE_BUCKET"`
	ObjectStorageUseSSL    bool   `mapstructure:"OBJECT_STORAGE_USE_SSL"`
	ObjectStorageRegion    string `mapstructure:"OBJECT_STORAGE_REGION"`

	OTelExporter string `mapstructure:"OTEL_EXPORTER"`
	OTelEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	RootAdminBootstrap        bool   `mapstructure:"ROOT_ADMIN_BOOTSTRAP"`
	RootAdminUsername         string `mapstructure:"ROOT_ADMIN_USERNAME"`
	RootAdminEmail            string `mapstructure:"ROOT_ADMIN_EMAIL"`
	RootAdminPassword         string `mapstructure:"ROOT_ADMIN_PASSWORD"`
	RootAdminForceCredentials bool   `mapstructure:"ROOT_ADMIN_FORCE_CREDENTIALS"`
}

var defaults = map[string]any{
	"APP_ENV":                          "development",
	"PORT":                             "8000",
	"JWT_SECRET":                       defaultJWTSecret,
	"ACCESS_TOKEN_EXPIRE_MINUTES":      30,
	"DB_DRIVER":                        "postgres",
	"DB_HOST":                          "localhost",
	"DB_PORT":                          "5432",
	"DB_USER":                          "elfatih",
	"DB_PASSWORD":                      "password",
	"DB_NAME":                          "elfatih",
	"DB_SSLMODE":                       "disable",
	"DB_SQLITE_PATH":                   "elfatih.db",
	"DB_MAX_OPEN_CONNS":                25,
	"DB_MAX_IDLE_CONNS":                5,
	"DB_CONN_MAX_LIFETIME_MINUTES":     5,
	"DB_SCHEMA_MODE":                   "hybrid",
	"DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE": false,
	"DB_READ_HOST":                     "",
	"DB_READ_PORT":                     "5432",
	"DB_READ_USER":                     "",
	"DB_READ_PASSWORD":                 "",
	"REDIS_URL":                        "localhost:6379",
	"ALLOWED_ORIGINS":                  "*",
	"FEATURE_FLAGS":                    "live_feedback=true",
	"IMAGE_MAX_UPLOAD_SIZE_MB":         5,
	"OBJECT_STORAGE_ENABLED":           false,
	"OBJECT_STORAGE_ENDPOINT":          "localhost:9000",
	"OBJECT_STORAGE_ACCESS_KEY":        "minioadmin",
	"OBJECT_STORAGE_SECRET_KEY":        "minioadmin",
	"OBJECT_STORAGE_BUCKET":            "elfatih-images",
	"OBJECT_STORAGE_USE_SSL":           false,
	"OBJECT_STORAGE_REGION":            "us-east-1",
	"OTEL_EXPORTER":                    "none",
	"OTEL_EXPORTER_OTLP_ENDPOINT":      "localhost:4318",
	"ROOT_ADMIN_BOOTSTRAP":             true,
	"ROOT_ADMIN_USERNAME":              "admin",
	"ROOT_ADMIN_EMAIL":                 "admin@elfatih.local",
	"ROOT_ADMIN_PASSWORD":              "",
	"ROOT_ADMIN_FORCE_CREDENTIALS":     false,
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	// A local .env only fills variables the environment does not already set.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment overrides from .env")
	}

	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The base file is optional.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "test" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("required profile-specific config 'config.%s.yml' not found: %w", env, err)
		}
		log.Printf("Loaded profile-specific configuration: config.%s.yml", env)
	}

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func (c *Config) normalize() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	c.DBDriver = strings.ToLower(strings.TrimSpace(c.DBDriver))
	c.DBSSLMode = strings.ToLower(strings.TrimSpace(c.DBSSLMode))
	c.DBSchemaMode = strings.ToLower(strings.TrimSpace(c.DBSchemaMode))
}

// IsProduction reports whether the config targets a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// AccessTokenTTL is the lifetime of issued access tokens.
func (c *Config) AccessTokenTTL() time.Duration {
	if c.AccessTokenExpireMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// Validate reports every problem with the configuration at once.
// Production adds rules that development tolerates.
func (c *Config) Validate() error {
	var errs []error
	check := func(bad bool, msg string) {
		if bad {
			errs = append(errs, errors.New(msg))
		}
	}

	check(c.Port == "", "PORT is required")
	check(c.JWTSecret == "", "JWT_SECRET is required")
	check(c.ImageMaxUploadSizeMB <= 0, "IMAGE_MAX_UPLOAD_SIZE_MB must be positive")
	check(c.DBConnMaxLifetimeMinutes < 0, "DB_CONN_MAX_LIFETIME_MINUTES cannot be negative")
	switch c.DBDriver {
	case "", "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	switch strings.ToLower(c.OTelExporter) {
	case "", "none", "otlp", "stdout":
	default:
		errs = append(errs, fmt.Errorf("unsupported OTEL_EXPORTER %q", c.OTelExporter))
	}
	if c.ObjectStorageEnabled {
		check(c.ObjectStorageEndpoint == "", "OBJECT_STORAGE_ENDPOINT is required when object storage is enabled")
		check(c.ObjectStorageBucket == "", "OBJECT_STORAGE_BUCKET is required when object storage is enabled")
	}

	if c.IsProduction() {
		check(c.JWTSecret == defaultJWTSecret, "JWT_SECRET must be changed from the default value in production")
		check(len(c.JWTSecret) < 32, "JWT_SECRET must be at least 32 characters in production")
		check(c.DBPassword == "" || c.DBPassword == "password", "a strong DB_PASSWORD is required in production")
		check(c.DBSSLMode == "" || c.DBSSLMode == "disable", "DB_SSLMODE must enable TLS in production")
		check(strings.TrimSpace(c.AllowedOrigins) == "*", "ALLOWED_ORIGINS cannot be '*' in production")
		check(c.RootAdminBootstrap && c.RootAdminPassword == "",
			"ROOT_ADMIN_PASSWORD is required when ROOT_ADMIN_BOOTSTRAP is enabled in production")
	} else if len(c.JWTSecret) < 32 {
		log.Println("WARNING: JWT_SECRET is shorter than 32 characters")
	}

	return errors.Join(errs...)
}
