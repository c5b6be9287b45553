// Package cache wraps the shared Redis client used for read-through caching.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"elfatih/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const (
	connectTimeout = 5 * time.Second
	dialTimeout    = 3 * time.Second
	ioTimeout      = 2 * time.Second
)

var client *redis.Client

// errorHook counts failed commands. A cache miss is not a failure.
type errorHook struct{}

func observe(op string, err error) {
	if err == nil || errors.Is(err, redis.Nil) {
		return
	}
	middleware.RedisErrors.WithLabelValues(op).Inc()
}

func (errorHook) DialHook(next redis.DialHook) redis.DialHook { return next }

func (errorHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		observe(cmd.Name(), err)
		return err
	}
}

func (errorHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		observe("pipeline", err)
		return err
	}
}

// NewClient builds an instrumented client for addr, which may be a bare
// host:port or a redis:// URL. It does not dial.
func NewClient(addr string) (*redis.Client, error) {
	opts := &redis.Options{Addr: addr}
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		opts = parsed
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = dialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = ioTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = ioTimeout
	}

	c := redis.NewClient(opts)
	c.AddHook(errorHook{})
	return c, nil
}

// Connect builds a client and pings it once.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	c, err := NewClient(addr)
	if err != nil {
		return nil, err
	}
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// InitRedis installs the package client. Redis is optional: when addr is
// empty or unreachable the client stays nil and callers fall back to the
// database.
func InitRedis(addr string) {
	client = nil
	if addr == "" {
		middleware.Logger.Info("redis disabled")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	c, err := Connect(ctx, addr)
	if err != nil {
		middleware.Logger.Warn("redis unavailable, continuing without cache",
			slog.String("addr", addr), slog.String("error", err.Error()))
		return
	}
	middleware.Logger.Info("redis connected", slog.String("addr", c.Options().Addr))
	client = c
}

// SetClient swaps the package client.
func SetClient(c *redis.Client) { client = c }

// GetClient returns the package client, or nil when Redis is off.
func GetClient() *redis.Client { return client }
