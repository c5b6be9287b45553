package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedSkip  int
		expectedLimit int
	}{
		{"defaults", "", 0, 100},
		{"custom", "?skip=20&limit=5", 20, 5},
		{"limit capped", "?limit=500", 0, 100},
		{"negative skip", "?skip=-3", 0, 100},
		{"zero limit falls back", "?limit=0", 0, 100},
		{"garbage", "?skip=abc&limit=xyz", 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got Pagination
			app.Get("/p", func(c *fiber.Ctx) error {
				got = parsePagination(c, defaultPaginationLimit)
				return c.SendStatus(fiber.StatusOK)
			})
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/p"+tt.query, nil))
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, tt.expectedSkip, got.Skip)
			assert.Equal(t, tt.expectedLimit, got.Limit)
		})
	}
}

func TestQueryBool(t *testing.T) {
	tests := []struct {
		query    string
		def      bool
		expected bool
	}{
		{"", true, true},
		{"", false, false},
		{"?flag=true", false, true},
		{"?flag=1", false, true},
		{"?flag=FALSE", true, false},
		{"?flag=0", true, false},
		{"?flag=maybe", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app := fiber.New()
			var got bool
			app.Get("/q", func(c *fiber.Ctx) error {
				got = queryBool(c, "flag", tt.def)
				return c.SendStatus(fiber.StatusOK)
			})
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/q"+tt.query, nil))
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseIDRejectsBadValues(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	for _, raw := range []string{"abc", "0", "-4"} {
		t.Run(raw, func(t *testing.T) {
			resp := ts.do(t, http.MethodGet, "/api/v1/posts/"+raw, "", nil)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			body := errorBody(t, resp)
			assert.Equal(t, "Invalid ID", body.Error)
			assert.Equal(t, "VALIDATION_ERROR", body.Code)
		})
	}
}

func TestDecodeStrictJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	require.NoError(t, decodeStrictJSON([]byte(`{"name":"x"}`), &dst))
	assert.Equal(t, "x", dst.Name)

	assert.Error(t, decodeStrictJSON([]byte(`{"name":"x","extra":1}`), &dst))
	assert.Error(t, decodeStrictJSON([]byte(`{"name":"x"} {"name":"y"}`), &dst))
}

func TestBodyLimitScalesWithUploadSize(t *testing.T) {
	assert.Equal(t, 4*1024*1024, bodyLimit(1024))
	assert.Equal(t, 110*1024*1024, bodyLimit(10*1024*1024))
}

func TestContentDisposition(t *testing.T) {
	assert.Equal(t, `inline; filename=photo.jpg`, contentDisposition("photo.jpg"))
	assert.Equal(t, `inline; filename="my photo; v2.jpg"`, contentDisposition("my photo; v2.jpg"))
	assert.Equal(t, "inline; filename*=utf-8''%D8%B5%D9%88%D8%B1%D8%A9.png", contentDisposition("صورة.png"))
}
