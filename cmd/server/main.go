// Command server runs the Elfatih HTTP API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"elfatih/internal/bootstrap"
	"elfatih/internal/config"
	"elfatih/internal/middleware"
	"elfatih/internal/observability"
	"elfatih/internal/server"
)

// @title Elfatih API
// @version 1.0
// @description Posts with ordered text, image and video sections, reader feedback, user accounts and QR-tagged devices.
// @contact.email support@elfatih.local
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Send "Bearer <access token>".

const drainTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		middleware.Logger.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

// run serves until ctx is cancelled, then drains the server and flushes
// pending spans.
func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	flushSpans, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:    "elfatih-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Exporter:       cfg.OTelExporter,
		OTLPEndpoint:   cfg.OTelEndpoint,
		SampleRatio:    1.0,
	})
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	db, rdb, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{
		SeedDemo: os.Getenv("SEED_DEMO_DATA") == "true",
	})
	if err != nil {
		return err
	}

	srv, err := server.NewServerWithDeps(cfg, db, rdb)
	if err != nil {
		return err
	}

	served := make(chan error, 1)
	go func() { served <- srv.Start() }()

	select {
	case err := <-served:
		return err
	case <-ctx.Done():
	}

	middleware.Logger.Info("shutdown signal received", "drain_timeout", drainTimeout.String())
	drainCtx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	return errors.Join(srv.Shutdown(drainCtx), flushSpans(drainCtx))
}
