package server

import (
	"net/http"
	"testing"

	"elfatih/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRequireAdmin(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	acct := ts.user(t)

	resp := ts.do(t, http.MethodGet, "/api/v1/admin/users", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/admin/users", acct.token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorBody(t, resp).Code)
}

func TestAdminUserManagement(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)

	body := registerBody("made_by_admin")
	body["user_type"] = "ADMIN"
	body["is_active"] = false
	resp := ts.do(t, http.MethodPost, "/api/v1/admin/users", admin.token, body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var created models.User
	decodeBody(t, resp, &created)
	assert.Equal(t, models.RoleAdmin, created.UserType)
	assert.False(t, created.IsActive)

	id := itoa(created.ID)

	resp = ts.do(t, http.MethodPost, "/api/v1/admin/users/"+id+"/remove-admin", admin.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var demoted models.User
	decodeBody(t, resp, &demoted)
	assert.Equal(t, models.RoleUser, demoted.UserType)

	resp = ts.do(t, http.MethodPost, "/api/v1/admin/users/"+id+"/make-admin", admin.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/api/v1/admin/users/"+id+"/activate", admin.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var activated models.User
	decodeBody(t, resp, &activated)
	assert.True(t, activated.IsActive)

	resp = ts.do(t, http.MethodPut, "/api/v1/admin/users/"+id, admin.token, map[string]any{"full_name": "Edited By Admin"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/admin/users?limit=1", admin.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var page struct {
		Users []models.User `json:"users"`
		Count int           `json:"count"`
		Skip  int           `json:"skip"`
		Limit int           `json:"limit"`
	}
	decodeBody(t, resp, &page)
	assert.Equal(t, 1, page.Count)
	assert.Equal(t, 1, page.Limit)

	resp = ts.do(t, http.MethodGet, "/api/v1/admin/stats", admin.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var stats models.UserStats
	decodeBody(t, resp, &stats)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, int64(2), stats.AdminUsers)
	assert.Equal(t, int64(2), stats.ActiveUsers)
}

func TestAdminSelfProtection(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)
	id := itoa(admin.user.ID)

	resp := ts.do(t, http.MethodPost, "/api/v1/admin/users/"+id+"/remove-admin", admin.token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot remove admin privileges from yourself", errorBody(t, resp).Error)

	resp = ts.do(t, http.MethodPost, "/api/v1/admin/users/"+id+"/deactivate", admin.token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAdminUnknownUser(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/admin/users/9999/make-admin", admin.token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
