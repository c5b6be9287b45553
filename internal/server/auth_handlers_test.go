package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"elfatih/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	acct := ts.user(t)

	t.Run("wrong password", func(t *testing.T) {
		resp := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": acct.user.Username,
			"password": "nope-nope",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
	})

	t.Run("unknown user", func(t *testing.T) {
		resp := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"username": "ghost_user",
			"password": "secret123",
		})
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing fields", func(t *testing.T) {
		resp := ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "  "})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Username and password are required", errorBody(t, resp).Error)
	})

	t.Run("password form", func(t *testing.T) {
		form := url.Values{"username": {acct.user.Username}, "password": {"secret123"}}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(form.Encode()))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
		resp, err := ts.app.Test(req, -1)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var tok TokenResponse
		decodeBody(t, resp, &tok)
		assert.Equal(t, "bearer", tok.TokenType)
		assert.NotEmpty(t, tok.AccessToken)
		assert.InDelta(t, 30*60, tok.ExpiresIn, 2)
		require.NotNil(t, tok.User)
		assert.Equal(t, acct.user.ID, tok.User.ID)
	})
}

func TestAuthMeAndTestToken(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	acct := ts.admin(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/auth/me"},
		{http.MethodPost, "/api/v1/auth/test-token"},
	} {
		t.Run(tc.path, func(t *testing.T) {
			resp := ts.do(t, tc.method, tc.path, acct.token, nil)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			var me CurrentUserResponse
			decodeBody(t, resp, &me)
			assert.Equal(t, acct.user.ID, me.UserID)
			assert.Equal(t, acct.user.Username, me.Username)
			assert.Equal(t, models.RoleAdmin, me.UserType)
			assert.True(t, me.IsActive)
		})
	}

	t.Run("no token", func(t *testing.T) {
		resp := ts.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token", func(t *testing.T) {
		resp := ts.do(t, http.MethodGet, "/api/v1/auth/me", "not.a.jwt", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRefreshPicksUpRoleChanges(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	acct := ts.user(t)

	_, err := ts.userService.SetRoleByUsername(context.Background(), acct.user.Username, models.RoleAdmin)
	require.NoError(t, err)

	// The old token still says USER.
	resp := ts.do(t, http.MethodGet, "/api/v1/admin/stats", acct.token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/api/v1/auth/refresh", acct.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var tok TokenResponse
	decodeBody(t, resp, &tok)

	resp = ts.do(t, http.MethodGet, "/api/v1/admin/stats", tok.AccessToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRefreshDeletedUser(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)
	acct := ts.user(t)

	resp := ts.do(t, http.MethodDelete, "/api/v1/users/"+itoa(acct.user.ID), admin.token, nil)
	require.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/api/v1/auth/refresh", acct.token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "User no longer exists", errorBody(t, resp).Error)
}

func TestLogoutRevokesToken(t *testing.T) {
	ts := newTestServer(t, testOptions{withRedis: true})
	acct := ts.user(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/auth/logout", acct.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "Successfully logged out", body["message"])

	resp = ts.do(t, http.MethodGet, "/api/v1/auth/me", acct.token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestInactiveUserIsRejected(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)
	acct := ts.user(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/admin/users/"+itoa(acct.user.ID)+"/deactivate", admin.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Tokens carry the status at issue time, so log in again.
	resp = ts.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": acct.user.Username,
		"password": "secret123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var tok TokenResponse
	decodeBody(t, resp, &tok)

	resp = ts.do(t, http.MethodGet, "/api/v1/users/me", tok.AccessToken, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Inactive user", errorBody(t, resp).Error)

	// The token endpoints do not require an active account.
	resp = ts.do(t, http.MethodGet, "/api/v1/auth/me", tok.AccessToken, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
