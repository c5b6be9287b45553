package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"elfatih/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postList struct {
	Posts []PostResponse `json:"posts"`
	Count int            `json:"count"`
	Skip  int            `json:"skip"`
	Limit int            `json:"limit"`
}

func TestPostWritesRequireAdmin(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	acct := ts.user(t)

	resp := ts.do(t, http.MethodPost, "/api/v1/posts", "", map[string]any{"header": "Nope"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = ts.do(t, http.MethodPost, "/api/v1/posts", acct.token, map[string]any{"header": "Nope"})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestPostLifecycle(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)

	first := ts.createPost(t, admin.token, "First post")
	second := ts.createPost(t, admin.token, "Second post")
	assert.True(t, first.IsActive)
	assert.Zero(t, first.PositiveFeedbacks)
	assert.Nil(t, first.ImageURL)

	t.Run("validation", func(t *testing.T) {
		resp := ts.do(t, http.MethodPost, "/api/v1/posts", admin.token, map[string]any{"header": "ab"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	resp := ts.do(t, http.MethodGet, "/api/v1/posts", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list postList
	decodeBody(t, resp, &list)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, second.ID, list.Posts[0].ID, "newest first")
	assert.Equal(t, 100, list.Limit)

	inactive := false
	resp = ts.do(t, http.MethodPut, "/api/v1/posts/"+itoa(first.ID), admin.token, map[string]any{
		"header":    "First post, edited",
		"is_active": inactive,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var updated PostResponse
	decodeBody(t, resp, &updated)
	assert.Equal(t, "First post, edited", updated.Header)
	assert.False(t, updated.IsActive)

	resp = ts.do(t, http.MethodGet, "/api/v1/posts", "", nil)
	decodeBody(t, resp, &list)
	require.Equal(t, 1, list.Count)
	assert.Equal(t, second.ID, list.Posts[0].ID)

	resp = ts.do(t, http.MethodDelete, "/api/v1/posts/"+itoa(second.ID), admin.token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/posts/"+itoa(second.ID), "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorBody(t, resp).Code)
}

func TestPostCoverImage(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)
	post := ts.createPost(t, admin.token, "Post with cover")
	base := "/api/v1/posts/" + itoa(post.ID)

	resp := ts.do(t, http.MethodGet, base+"/image", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	t.Run("rejects wrong type", func(t *testing.T) {
		resp := ts.doMultipart(t, http.MethodPut, base+"/image", admin.token, nil,
			formFile{field: "image", filename: "notes.txt", contentType: "text/plain", data: []byte("hello")})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("requires file", func(t *testing.T) {
		resp := ts.doMultipart(t, http.MethodPut, base+"/image", admin.token, map[string]string{"x": "y"})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "No file uploaded in field 'image'", errorBody(t, resp).Error)
	})

	resp = ts.doMultipart(t, http.MethodPut, base+"/image", admin.token, nil, pngFile(t, "image", "cover.png"))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var withImage PostResponse
	decodeBody(t, resp, &withImage)
	require.NotNil(t, withImage.ImageURL)
	assert.Equal(t, base+"/image", *withImage.ImageURL)
	assert.Nil(t, withImage.ImageData)

	resp = ts.do(t, http.MethodGet, base+"/image", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "public, max-age=3600", resp.Header.Get(fiber.HeaderCacheControl))
	assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentDisposition), "inline"))
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, raw[:2], "served as JPEG")

	resp = ts.do(t, http.MethodGet, base+"?include_images=true", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var full PostResponse
	decodeBody(t, resp, &full)
	require.NotNil(t, full.ImageData)
	assert.True(t, strings.HasPrefix(*full.ImageData, "data:image/jpeg;base64,"))
	require.NotNil(t, full.ImageInfo)
	assert.Equal(t, "JPEG", full.ImageInfo.Format)

	resp = ts.do(t, http.MethodDelete, base+"/image", admin.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var cleared PostResponse
	decodeBody(t, resp, &cleared)
	assert.Nil(t, cleared.ImageURL)
}

func TestPostSections(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)
	post := ts.createPost(t, admin.token, "Post with sections")
	base := "/api/v1/posts/" + itoa(post.ID)

	resp := ts.do(t, http.MethodPost, base+"/sections/text", admin.token, map[string]any{
		"text_content": "  Opening paragraph  ",
		"order_index":  2,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var text SectionResponse
	decodeBody(t, resp, &text)
	assert.Equal(t, models.SectionText, text.SectionType)
	require.NotNil(t, text.TextContent)
	assert.Equal(t, "Opening paragraph", *text.TextContent)

	resp = ts.do(t, http.MethodPost, base+"/sections/video", admin.token, map[string]any{
		"video_url":   "https://videos.example.com/clip.mp4",
		"order_index": 1,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var video SectionResponse
	decodeBody(t, resp, &video)

	resp = ts.doMultipart(t, http.MethodPost, base+"/sections/image", admin.token,
		map[string]string{"order_index": "0"}, pngFile(t, "image", "figure.png"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	var img SectionResponse
	decodeBody(t, resp, &img)
	require.NotNil(t, img.ImageURL)

	t.Run("bad video url", func(t *testing.T) {
		resp := ts.do(t, http.MethodPost, base+"/sections/video", admin.token, map[string]any{
			"video_url": "ftp://nope",
		})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("empty text", func(t *testing.T) {
		resp := ts.do(t, http.MethodPost, base+"/sections/text", admin.token, map[string]any{"text_content": "   "})
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown post", func(t *testing.T) {
		resp := ts.do(t, http.MethodPost, "/api/v1/posts/9999/sections/text", admin.token, map[string]any{"text_content": "x"})
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})

	resp = ts.do(t, http.MethodGet, *img.ImageURL, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get(fiber.HeaderContentType))

	resp = ts.do(t, http.MethodGet, base, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var full PostResponse
	decodeBody(t, resp, &full)
	require.Len(t, full.Sections, 3)
	assert.Equal(t, []uint{img.ID, video.ID, text.ID},
		[]uint{full.Sections[0].ID, full.Sections[1].ID, full.Sections[2].ID})

	resp = ts.do(t, http.MethodPut, "/api/v1/posts/sections/"+itoa(text.ID)+"/order?new_order=0", admin.token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var moved struct {
		Message string `json:"message"`
		Section struct {
			ID         uint `json:"id"`
			OrderIndex int  `json:"order_index"`
		} `json:"section"`
	}
	decodeBody(t, resp, &moved)
	assert.Equal(t, "Section order updated successfully", moved.Message)
	assert.Equal(t, text.ID, moved.Section.ID)
	assert.Equal(t, 0, moved.Section.OrderIndex)

	resp = ts.do(t, http.MethodPut, "/api/v1/posts/sections/"+itoa(text.ID)+"/order", admin.token, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodDelete, "/api/v1/posts/sections/"+itoa(video.ID), admin.token, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodDelete, "/api/v1/posts/sections/"+itoa(video.ID), admin.token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/posts/sections/"+itoa(text.ID)+"/image", "", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCreateCompletePost(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)

	manifest, err := json.Marshal([]map[string]any{
		{"type": "text", "order_index": 2, "content": "Closing words"},
		{"type": "image", "order_index": 0, "content": "diagram.png"},
		{"type": "video", "order_index": 1, "content": "https://videos.example.com/demo.mp4"},
	})
	require.NoError(t, err)

	resp := ts.doMultipart(t, http.MethodPost, "/api/v1/posts/complete", admin.token,
		map[string]string{
			"header":      "Complete post",
			"description": "Everything in a single request.",
			"sections":    string(manifest),
		},
		pngFile(t, "main_image", "cover.png"),
		pngFile(t, "images", "diagram.png"),
	)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Message         string           `json:"message"`
		Post            PostResponse     `json:"post"`
		SectionsCreated int              `json:"sections_created"`
		CreatedSections []CreatedSection `json:"created_sections"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "Complete post created successfully", body.Message)
	assert.Equal(t, 3, body.SectionsCreated)
	require.Len(t, body.CreatedSections, 3)
	assert.Equal(t, models.SectionText, body.CreatedSections[0].Type, "summary follows manifest order")
	assert.NotNil(t, body.CreatedSections[1].ImageURL)
	assert.NotNil(t, body.CreatedSections[2].VideoURL)

	require.NotNil(t, body.Post.ImageURL)
	require.Len(t, body.Post.Sections, 3)
	assert.Equal(t, models.SectionImage, body.Post.Sections[0].SectionType)
	assert.Equal(t, models.SectionVideo, body.Post.Sections[1].SectionType)
	assert.Equal(t, models.SectionText, body.Post.Sections[2].SectionType)
}

func TestCreateCompletePostIsAtomic(t *testing.T) {
	ts := newTestServer(t, testOptions{})
	admin := ts.admin(t)

	resp := ts.doMultipart(t, http.MethodPost, "/api/v1/posts/complete", admin.token,
		map[string]string{
			"header":   "Broken post",
			"sections": `[{"type":"text","order_index":0,"content":"fine"},{"type":"image","order_index":1,"content":"missing.png"}]`,
		})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorBody(t, resp).Error, "section 1")

	resp = ts.doMultipart(t, http.MethodPost, "/api/v1/posts/complete", admin.token,
		map[string]string{"header": "Bad manifest", "sections": "not json"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/v1/posts", "", nil)
	var list postList
	decodeBody(t, resp, &list)
	assert.Zero(t, list.Count)
}
