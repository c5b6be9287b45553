// Package observability holds the audit logs, Prometheus collectors and
// OpenTelemetry tracing shared by the service and repository layers.
package observability

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

var base = newBaseLogger()

func newBaseLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	switch strings.ToLower(os.Getenv("APP_ENV")) {
	case "test":
		opts.Level = slog.LevelWarn
	case "production", "prod":
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

// SetBaseLogger replaces the logger the audit and feed loggers write to.
// Loggers created earlier keep the old one.
func SetBaseLogger(l *slog.Logger) {
	if l != nil {
		base = l
	}
}

// AuditLogger records successful writes to one entity and the failures that
// were turned into internal errors.
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger returns an AuditLogger tagged with entity.
func NewAuditLogger(entity string) *AuditLogger {
	return &AuditLogger{logger: base.With(slog.String("entity", entity))}
}

// Created logs a new row. attrs are extra slog key/value pairs.
func (l *AuditLogger) Created(ctx context.Context, id uint, attrs ...any) {
	l.logger.InfoContext(ctx, "entity created", append([]any{slog.Uint64("id", uint64(id))}, attrs...)...)
}

// Deleted logs a removed row.
func (l *AuditLogger) Deleted(ctx context.Context, id uint, attrs ...any) {
	l.logger.InfoContext(ctx, "entity deleted", append([]any{slog.Uint64("id", uint64(id))}, attrs...)...)
}

// Failed logs a storage error that is about to surface as a 500.
func (l *AuditLogger) Failed(ctx context.Context, op string, err error) {
	l.logger.ErrorContext(ctx, "entity write failed", slog.String("op", op), slog.String("error", err.Error()))
}

// FeedLogger traces viewers joining and leaving a post's live feedback feed.
type FeedLogger struct {
	logger *slog.Logger
}

// NewFeedLogger returns a FeedLogger for the named hub.
func NewFeedLogger(hub string) *FeedLogger {
	return &FeedLogger{logger: base.With(slog.String("hub", hub))}
}

// Joined logs a viewer subscribing to postID. viewerID is 0 for anonymous
// viewers.
func (l *FeedLogger) Joined(ctx context.Context, postID, viewerID uint) {
	l.logger.InfoContext(ctx, "feed viewer joined",
		slog.Uint64("post_id", uint64(postID)), slog.Uint64("viewer_id", uint64(viewerID)))
}

// Left logs a viewer leaving postID's feed.
func (l *FeedLogger) Left(ctx context.Context, postID, viewerID uint, reason string) {
	l.logger.InfoContext(ctx, "feed viewer left",
		slog.Uint64("post_id", uint64(postID)), slog.Uint64("viewer_id", uint64(viewerID)), slog.String("reason", reason))
}

// Error logs a delivery problem on postID's feed.
func (l *FeedLogger) Error(ctx context.Context, postID uint, err error) {
	l.logger.WarnContext(ctx, "feed delivery failed",
		slog.Uint64("post_id", uint64(postID)), slog.String("error", err.Error()))
}
