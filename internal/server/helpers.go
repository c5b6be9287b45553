package server

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"strconv"
	"strings"

	"elfatih/internal/middleware"
	"elfatih/internal/models"
	"elfatih/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Pagination is a skip/limit window over a list endpoint.
type Pagination struct {
	Skip  int
	Limit int
}

const (
	defaultPaginationLimit = 100
	maxPaginationLimit     = 100
)

// parsePagination reads ?skip and ?limit. Non-positive limits fall back to
// def, large ones are capped and negative skips clamp to zero.
func parsePagination(c *fiber.Ctx, def int) Pagination {
	limit := c.QueryInt("limit", def)
	if limit <= 0 {
		limit = def
	}
	return Pagination{
		Skip:  max(c.QueryInt("skip", 0), 0),
		Limit: min(limit, maxPaginationLimit),
	}
}

// queryBool reads a boolean query parameter, falling back to def when it is
// absent or unparsable.
func queryBool(c *fiber.Ctx, key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(c.Query(key))) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return def
	}
}

// pathID reads the :id route parameter. On a malformed value it writes the
// 400 response itself and reports false.
func pathID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("Invalid ID"))
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps a service error onto its HTTP status. Internal
// failures are logged with their cause before the generic body is sent.
func respondServiceError(c *fiber.Ctx, err error) error {
	status := models.StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "error", err.Error())
	}
	return models.RespondWithError(c, status, err)
}

// errResponseWritten tells a handler that a helper already sent the error
// response and the handler should return nil without touching c again.
var errResponseWritten = errors.New("response already written")

// parseBody decodes the request body into dst. JSON bodies with fields dst
// does not declare are rejected. On failure it writes the 400 itself and
// returns errResponseWritten.
func parseBody(c *fiber.Ctx, dst any) error {
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationJSON) {
		if err := decodeStrictJSON(c.Body(), dst); err != nil {
			_ = models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body: "+err.Error()))
			return errResponseWritten
		}
		return nil
	}
	if err := c.BodyParser(dst); err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
		return errResponseWritten
	}
	return nil
}

// formInt reads an optional integer form field. Absent fields read as zero.
func formInt(c *fiber.Ctx, key string) (int, error) {
	raw := strings.TrimSpace(c.FormValue(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, models.NewValidationError(key + " must be an integer")
	}
	return n, nil
}

// actorFrom builds the service-level caller identity from the verified claims.
func actorFrom(c *fiber.Ctx) service.Actor {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return service.Actor{}
	}
	return service.Actor{UserID: claims.UserID, Role: claims.UserType}
}

// callerID returns the authenticated user's id, or zero for anonymous requests.
func callerID(c *fiber.Ctx) uint {
	if claims, ok := middleware.ClaimsFrom(c); ok {
		return claims.UserID
	}
	return 0
}

// readUpload loads a multipart file field into memory. A missing field
// returns (nil, nil) so callers decide whether it is required.
func readUpload(c *fiber.Ctx, field string) (*service.ImageUpload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fiber.ErrUnprocessableEntity) || errors.Is(err, multipart.ErrMessageTooLarge) {
			return nil, models.NewValidationError("Unable to read uploaded file")
		}
		return nil, nil
	}
	upload, err := loadFileHeader(header)
	if err != nil {
		return nil, err
	}
	return upload, nil
}

func loadFileHeader(header *multipart.FileHeader) (*service.ImageUpload, error) {
	src, err := header.Open()
	if err != nil {
		return nil, models.NewValidationError("Unable to read uploaded file")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, models.NewValidationError("Unable to read uploaded file")
	}
	return &service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get(fiber.HeaderContentType),
		Content:     content,
	}, nil
}

// requireUpload is readUpload for endpoints where the file is mandatory.
func requireUpload(c *fiber.Ctx, field string) (*service.ImageUpload, error) {
	upload, err := readUpload(c, field)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return nil, models.NewValidationError("No file uploaded in field '" + field + "'")
	}
	return upload, nil
}

// sendBlob writes binary content inline. Cacheable blobs get a one hour
// public cache lifetime.
func sendBlob(c *fiber.Ctx, blob *service.Blob, cacheable bool) error {
	c.Set(fiber.HeaderContentType, blob.ContentType)
	c.Set(fiber.HeaderContentDisposition, contentDisposition(blob.Filename))
	if cacheable {
		c.Set(fiber.HeaderCacheControl, "public, max-age=3600")
	}
	return c.Status(fiber.StatusOK).Send(blob.Data)
}

// contentDisposition renders an inline disposition with a properly quoted
// filename. Names mime cannot encode are dropped.
func contentDisposition(filename string) string {
	if v := mime.FormatMediaType("inline", map[string]string{"filename": filename}); v != "" {
		return v
	}
	return "inline"
}
