package server

import (
	"net/http"
	"net/url"
	"testing"

	"elfatih/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody(username string) map[string]any {
	return map[string]any{
		"username":  username,
		"email":     gofakeit.Email(),
		"full_name": gofakeit.Name(),
		"password":  "secret123",
	}
}

func TestRegister(t *testing.T) {
	ts := newTestServer(t, testOptions{})

	body := registerBody("new_reader")
	body["phone"] = "+1 (555) 010-2030"
	resp := ts.do(t, http.MethodPost, "/api/v1/users", "", body)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var user models.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "new_reader", user.Username)
	assert.Equal(t, models.RoleUser, user.UserType)
	assert.True(t, user.IsActive)
	require.NotNil(t, user.Phone)
	assert.Equal(t, "+15550102030", *user.Phone)

	t.Run("duplicate username", func(t *testing.T) {
		resp := ts.do(t, http.MethodPost, "/api/v1/users", "", registerBody("new_reader"))
		assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", errorBody(t, resp).Code)
	})

	t.Run("role cannot be chosen", func(t *testing.T) {
		body := registerBody("sneaky_admin")
		body["user_type"] = "ADMIN"
		resp := ts.do(t, http.MethodPost, "/api/v1/users", "", body)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		var n int64
		require.NoError(t, ts.db.Model(&models.User{}).Where("username = ?", "sneaky_admin").Count(&n).Error)
		assert.Zero(t, n)
	})

	t.Run("invalid username", func(t *testing.T) {
		resp := ts.do(t, http.MethodPost, "/api/v1/users", "", registerBody("no spaces!"))
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("lookup by phone", func(t *testing.T) {
		resp := ts.do(t, http.MethodGet, "/api/v1/users/phone/"+url.PathEscape("+1 555 010 2030"), "", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var found models.User
		decodeBody(t, resp, &found)
		assert.Equal(t, user.ID, found.ID)
	})

	t.Run("unknown phone", func(t *testing.T) {
		resp := ts.do(t, http.MethodGet, "/api/v1/users/phone/15550000000", "", nil)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestUserSelfService(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	acct := ts.user(t)

	resp := ts.do(t, http.MethodGet, "/api/v1/users/me", acct.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var me map[string]any
	decodeBody(t, resp, &me)
	assert.Equal(t, acct.user.Username, me["username"])
	assert.NotContains(t, me, "hashed_password")

	resp = ts.do(t, http.MethodPut, "/api/v1/users/me", acct.token, map[string]any{"full_name": "Renamed Person"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated models.User
	decodeBody(t, resp, &updated)
	assert.Equal(t, "Renamed Person", updated.FullName)

	t.Run("cannot promote self", func(t *testing.T) {
		resp := ts.do(t, http.MethodPut, "/api/v1/users/me", acct.token, map[string]any{"user_type": "ADMIN"})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("cannot edit someone else", func(t *testing.T) {
		other := ts.user(t)
		resp := ts.do(t, http.MethodPut, "/api/v1/users/"+itoa(other.user.ID), acct.token, map[string]any{"full_name": "Hijacked"})
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown fields rejected", func(t *testing.T) {
		resp := ts.do(t, http.MethodPut, "/api/v1/users/me", acct.token, map[string]any{"nickname": "x"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	resp = ts.do(t, http.MethodDelete, "/api/v1/users/me", acct.token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/users/"+itoa(acct.user.ID), "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestAdminCannotDeleteSelf(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)

	resp := ts.do(t, http.MethodDelete, "/api/v1/users/me", admin.token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodDelete, "/api/v1/users/"+itoa(admin.user.ID), admin.token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	acct := ts.user(t)
	other := ts.user(t)

	resp := ts.do(t, http.MethodDelete, "/api/v1/users/"+itoa(other.user.ID), acct.token, nil)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestListUsersHidesInactiveFromNonAdmins(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)
	acct := ts.user(t)
	hidden := ts.user(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/admin/users/"+itoa(hidden.user.ID)+"/deactivate", admin.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	ids := func(token string) []uint {
		resp := ts.do(t, http.MethodGet, "/api/v1/users", token, nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var users []models.User
		decodeBody(t, resp, &users)
		out := make([]uint, 0, len(users))
		for _, u := range users {
			out = append(out, u.ID)
		}
		return out
	}

	assert.NotContains(t, ids(acct.token), hidden.user.ID)
	assert.Contains(t, ids(admin.token), hidden.user.ID)
}
