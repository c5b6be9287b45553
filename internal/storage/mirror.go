// Package storage mirrors processed binaries to an S3-compatible bucket.
// Database columns remain the source of truth; the bucket is a read-side copy.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	"log/slog"
	"path"
	"strings"

	"elfatih/internal/observability"

	"github.com/chai2010/webp"
)

// Object kinds used as the first key segment.
const (
	KindPost    = "posts"
	KindSection = "sections"
	KindDevice  = "devices"
)

// Object names used as the last key segment.
const (
	NameImage     = "image.jpg"
	NameImageWebP = "image.webp"
	NameQRCode    = "qr.png"
)

const webpQuality = 80

// Mirror stores and deletes objects by key.
type Mirror interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	Remove(ctx context.Context, key string) error
}

// NoopMirror discards every call.
type NoopMirror struct{}

// Put implements Mirror.
func (NoopMirror) Put(context.Context, string, string, []byte) error { return nil }

// Remove implements Mirror.
func (NoopMirror) Remove(context.Context, string) error { return nil }

// ObjectKey builds "{kind}/{id}/{name}".
func ObjectKey(kind string, id uint, name string) string {
	return path.Join(kind, fmt.Sprint(id), strings.TrimPrefix(name, "/"))
}

// Replicator wraps a Mirror so callers never see its errors. Failures are
// logged and counted, and the gate is consulted on every call.
type Replicator struct {
	mirror  Mirror
	enabled func() bool
	logger  *slog.Logger
}

// NewReplicator returns a Replicator. A nil mirror becomes NoopMirror and a
// nil gate means always enabled.
func NewReplicator(mirror Mirror, enabled func() bool, logger *slog.Logger) *Replicator {
	if mirror == nil {
		mirror = NoopMirror{}
	}
	if enabled == nil {
		enabled = func() bool { return true }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Replicator{mirror: mirror, enabled: enabled, logger: logger}
}

func (r *Replicator) active() bool {
	return r != nil && r.enabled()
}

// Upload copies data to key.
func (r *Replicator) Upload(ctx context.Context, key, contentType string, data []byte) {
	if !r.active() || len(data) == 0 {
		return
	}
	if err := r.mirror.Put(ctx, key, contentType, data); err != nil {
		observability.ObjectStorageMirror.WithLabelValues("put", "error").Inc()
		r.logger.WarnContext(ctx, "object storage mirror upload failed",
			slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	observability.ObjectStorageMirror.WithLabelValues("put", "ok").Inc()
}

// UploadImage copies a processed JPEG and a WebP rendition of it.
func (r *Replicator) UploadImage(ctx context.Context, kind string, id uint, jpegData []byte) {
	if !r.active() || len(jpegData) == 0 {
		return
	}
	r.Upload(ctx, ObjectKey(kind, id, NameImage), "image/jpeg", jpegData)

	rendition, err := WebPRendition(jpegData)
	if err != nil {
		observability.ObjectStorageMirror.WithLabelValues("webp", "error").Inc()
		r.logger.WarnContext(ctx, "webp rendition failed",
			slog.String("kind", kind), slog.Uint64("id", uint64(id)), slog.String("error", err.Error()))
		return
	}
	r.Upload(ctx, ObjectKey(kind, id, NameImageWebP), "image/webp", rendition)
}

// Delete removes key.
func (r *Replicator) Delete(ctx context.Context, key string) {
	if !r.active() {
		return
	}
	if err := r.mirror.Remove(ctx, key); err != nil {
		observability.ObjectStorageMirror.WithLabelValues("remove", "error").Inc()
		r.logger.WarnContext(ctx, "object storage mirror delete failed",
			slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	observability.ObjectStorageMirror.WithLabelValues("remove", "ok").Inc()
}

// DeleteImage removes both renditions written by UploadImage.
func (r *Replicator) DeleteImage(ctx context.Context, kind string, id uint) {
	r.Delete(ctx, ObjectKey(kind, id, NameImage))
	r.Delete(ctx, ObjectKey(kind, id, NameImageWebP))
}

// WebPRendition re-encodes JPEG bytes as lossy WebP.
func WebPRendition(jpegData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(jpegData))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
