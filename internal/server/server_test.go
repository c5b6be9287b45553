package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"elfatih/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootAndHealth(t *testing.T) {
	ts := newTestServer(t, testOptions{})

	resp := ts.do(t, http.MethodGet, "/", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var root map[string]string
	decodeBody(t, resp, &root)
	assert.Equal(t, "/api/v1", root["api"])

	resp = ts.do(t, http.MethodGet, "/health/live", "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/health/ready", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var ready struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	decodeBody(t, resp, &ready)
	assert.Equal(t, "healthy", ready.Status)
	assert.Equal(t, "healthy", ready.Checks["database"])
	assert.Equal(t, "disabled", ready.Checks["redis"])
}

func TestReadinessWithRedis(t *testing.T) {
	ts := newTestServer(t, testOptions{withRedis: true})

	resp := ts.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ts.redis.Close()
	resp = ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	resp := ts.do(t, http.MethodGet, "/health/live", "", nil)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestCORS(t *testing.T) {
	t.Run("wildcard without credentials", func(t *testing.T) {
		ts := newTestServer(t, testOptions{origins: "*"})
		req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
		req.Header.Set("Origin", "http://anywhere.example")
		resp, err := ts.app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
		assert.Empty(t, resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))
	})

	t.Run("explicit origin with credentials", func(t *testing.T) {
		ts := newTestServer(t, testOptions{origins: "http://localhost:5173"})
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/posts", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPost)
		resp, err := ts.app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		assert.Equal(t, "http://localhost:5173", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
		assert.Equal(t, "true", resp.Header.Get(fiber.HeaderAccessControlAllowCredentials))
	})
}

func TestGlobalLimiterOutsideTests(t *testing.T) {
	srv := &Server{config: &config.Config{Env: "production", AllowedOrigins: "http://localhost:5173"}}
	app := fiber.New()
	srv.SetupMiddleware(app)
	app.Get("/limited", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	for i := 0; i < 100; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil), -1)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestFeatureFlagsEndpoint(t *testing.T) {
	ts := newTestServer(t, testOptions{featureFlags: "live_feedback=on,object_storage_mirror=off"})

	resp := ts.do(t, http.MethodGet, "/api/v1/feature-flags", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body struct {
		Raw       map[string]string `json:"raw"`
		Evaluated map[string]bool   `json:"evaluated"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "on", body.Raw["live_feedback"])
	assert.True(t, body.Evaluated["live_feedback"])
	assert.False(t, body.Evaluated["object_storage_mirror"])
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	resp := ts.do(t, http.MethodGet, "/api/v1/nothing-here", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
