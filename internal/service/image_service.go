package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"mime"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"elfatih/internal/config"
	"elfatih/internal/models"
	"elfatih/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

const (
	DefaultImageMaxUploadSizeMB = 5
	MaxImageWidth               = 1200
	MaxImageHeight              = 800
	JPEGQuality                 = 85
	DefaultImageFilename        = "uploaded_image.jpg"
	ProcessedContentType        = "image/jpeg"

	// MaxImagePixels caps the declared width*height accepted before a full
	// decode. Small files can declare huge canvases.
	MaxImagePixels = 50_000_000
)

// Image pipeline targets, used as the metrics label.
const (
	ImageTargetPost    = "post"
	ImageTargetSection = "section"
	ImageTargetDevice  = "device"
)

var allowedImageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {},
}

// ImageUpload is a raw uploaded file as received from a multipart form.
type ImageUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ProcessedImage is the normalized JPEG ready to be stored inline.
type ProcessedImage struct {
	Data        []byte
	Filename    string
	ContentType string
	Width       int
	Height      int
}

// ImageInfo describes stored image bytes.
type ImageInfo struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int    `json:"size"`
	Format string `json:"format,omitempty"`
}

type ImageService struct {
	maxUploadSizeBytes int64
}

func NewImageService(cfg *config.Config) *ImageService {
	maxUploadSizeMB := DefaultImageMaxUploadSizeMB
	if cfg != nil && cfg.ImageMaxUploadSizeMB > 0 {
		maxUploadSizeMB = cfg.ImageMaxUploadSizeMB
	}
	return &ImageService{maxUploadSizeBytes: int64(maxUploadSizeMB) * 1024 * 1024}
}

// MaxUploadSizeBytes returns the configured upload ceiling.
func (s *ImageService) MaxUploadSizeBytes() int64 {
	return s.maxUploadSizeBytes
}

// Process validates an upload and re-encodes it as a JPEG that fits within
// MaxImageWidth x MaxImageHeight. Type checks run before any decoding.
func (s *ImageService) Process(ctx context.Context, target string, in ImageUpload) (_ *ProcessedImage, err error) {
	_, span := observability.StartSpan(ctx, "ImageService", "Process",
		attribute.String("image.target", target),
		attribute.Int("image.bytes", len(in.Content)),
	)
	defer span.Finish(&err)

	out, err := s.process(in)
	if err != nil {
		observability.ImagesProcessed.WithLabelValues(target, "rejected").Inc()
		return nil, err
	}
	observability.ImagesProcessed.WithLabelValues(target, "ok").Inc()
	span.SetAttributes(attribute.Int("image.width", out.Width), attribute.Int("image.height", out.Height))
	return out, nil
}

func (s *ImageService) process(in ImageUpload) (*ProcessedImage, error) {
	if !isAllowedImageMIME(in.ContentType) {
		return nil, models.NewValidationError("Invalid file type. Allowed: image/jpeg, image/jpg, image/png, image/gif, image/webp")
	}
	if in.Filename != "" && !isAllowedImageExtension(in.Filename) {
		return nil, models.NewValidationError("Invalid file extension. Allowed: .jpg, .jpeg, .png, .gif, .webp")
	}
	if len(in.Content) == 0 {
		return nil, models.NewValidationError("No file uploaded")
	}
	if int64(len(in.Content)) > s.maxUploadSizeBytes {
		return nil, models.NewValidationError(fmt.Sprintf("File too large. Maximum size: %dMB", s.maxUploadSizeBytes/(1024*1024)))
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Failed to process image: invalid image")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > MaxImagePixels {
		return nil, models.NewValidationError(fmt.Sprintf(
			"Image dimensions %dx%d exceed the %d pixel limit", cfg.Width, cfg.Height, MaxImagePixels))
	}

	start := time.Now()
	decoded, _, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, models.NewValidationError("Failed to process image: invalid image")
	}

	normalized := fitOnWhite(decoded, MaxImageWidth, MaxImageHeight)
	encoded, err := encodeJPEG(normalized, JPEGQuality)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.ImageProcessingDuration.Observe(time.Since(start).Seconds())

	filename := strings.TrimSpace(in.Filename)
	if filename == "" {
		filename = DefaultImageFilename
	}
	filename = truncateUTF8(filename, models.MaxFilenameLength)

	b := normalized.Bounds()
	return &ProcessedImage{
		Data:        encoded,
		Filename:    filename,
		ContentType: ProcessedContentType,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}, nil
}

// truncateUTF8 shortens s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// Info decodes only the header of data. Undecodable bytes report size alone.
func (s *ImageService) Info(data []byte) ImageInfo {
	if len(data) == 0 {
		return ImageInfo{}
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{Size: len(data)}
	}
	return ImageInfo{Width: cfg.Width, Height: cfg.Height, Size: len(data), Format: strings.ToUpper(format)}
}

// DataURL renders stored bytes as a base64 data URL.
func DataURL(data []byte, contentType string) string {
	if len(data) == 0 {
		return ""
	}
	if contentType == "" {
		contentType = ProcessedContentType
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// fitOnWhite composites src over an opaque white canvas, downscaling with
// Catmull-Rom when it exceeds the bounds. It never upscales.
func fitOnWhite(src image.Image, maxWidth, maxHeight int) image.Image {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	newW, newH := fitDimensions(w, h, maxWidth, maxHeight)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)
	if newW == w && newH == h {
		xdraw.Draw(dst, dst.Bounds(), src, bounds.Min, xdraw.Over)
		return dst
	}
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	return dst
}

func fitDimensions(w, h, maxWidth, maxHeight int) (int, int) {
	if w <= 0 || h <= 0 {
		return 1, 1
	}
	if w <= maxWidth && h <= maxHeight {
		return w, h
	}
	scale := min(float64(maxWidth)/float64(w), float64(maxHeight)/float64(h))
	newW := max(int(float64(w)*scale), 1)
	newH := max(int(float64(h)*scale), 1)
	return newW, newH
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isAllowedImageMIME(contentType string) bool {
	switch normalizeContentType(contentType) {
	case "image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp":
		return true
	default:
		return false
	}
}

func isAllowedImageExtension(filename string) bool {
	_, ok := allowedImageExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

func normalizeContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
