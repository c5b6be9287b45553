package middleware

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the process-wide structured logger.
var Logger = NewLogger(os.Stdout, os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

// RequestInfo identifies the request a log record belongs to. Middleware
// further down the chain fills in fields as they become known.
type RequestInfo struct {
	RequestID string
	TraceID   string
	UserID    uint
}

type requestInfoKey struct{}

// WithRequestInfo attaches info to ctx.
func WithRequestInfo(ctx context.Context, info *RequestInfo) context.Context {
	return context.WithValue(ctx, requestInfoKey{}, info)
}

// RequestInfoFrom returns the info attached by ContextMiddleware.
func RequestInfoFrom(ctx context.Context) (*RequestInfo, bool) {
	info, ok := ctx.Value(requestInfoKey{}).(*RequestInfo)
	return info, ok && info != nil
}

// requestHandler stamps request identifiers onto every record.
type requestHandler struct {
	slog.Handler
}

func (h requestHandler) Handle(ctx context.Context, r slog.Record) error {
	if info, ok := RequestInfoFrom(ctx); ok {
		if info.RequestID != "" {
			r.AddAttrs(slog.String("request_id", info.RequestID))
		}
		if info.TraceID != "" {
			r.AddAttrs(slog.String("trace_id", info.TraceID))
		}
		if info.UserID != 0 {
			r.AddAttrs(slog.Uint64("user_id", uint64(info.UserID)))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h requestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return requestHandler{h.Handler.WithAttrs(attrs)}
}

func (h requestHandler) WithGroup(name string) slog.Handler {
	return requestHandler{h.Handler.WithGroup(name)}
}

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

func parseLevel(raw string) slog.Level {
	if lvl, ok := levels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return lvl
	}
	return slog.LevelInfo
}

// NewLogger writes JSON in production and text elsewhere.
func NewLogger(w io.Writer, env, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if env == "production" || env == "prod" {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(requestHandler{h})
}

// ContextMiddleware seeds the request context with a RequestInfo built from
// the request id and the active span. Authentication adds the user later.
func ContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		info := &RequestInfo{}
		if rid, ok := c.Locals("requestid").(string); ok {
			info.RequestID = rid
		}
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			info.TraceID = sc.TraceID().String()
		}
		c.SetUserContext(WithRequestInfo(ctx, info))
		return c.Next()
	}
}

// StructuredLogger logs one line per request once the handler chain is done.
func StructuredLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		attrs := []slog.Attr{
			slog.Int("status", c.Response().StatusCode()),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
			slog.Duration("latency", time.Since(start)),
			slog.String("user_agent", c.Get(fiber.HeaderUserAgent)),
		}
		lvl, msg := slog.LevelInfo, "request"
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
			lvl, msg = slog.LevelError, "request failed"
		}
		Logger.LogAttrs(c.UserContext(), lvl, msg, attrs...)
		return err
	}
}
