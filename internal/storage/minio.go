package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"elfatih/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOMirror writes objects to one bucket of an S3-compatible server.
type MinIOMirror struct {
	client *minio.Client
	bucket string
}

// NewMinIOMirror builds a client from the OBJECT_STORAGE_* settings.
// No request is made until the first Put or EnsureBucket.
func NewMinIOMirror(cfg *config.Config) (*MinIOMirror, error) {
	if cfg.ObjectStorageEndpoint == "" {
		return nil, errors.New("OBJECT_STORAGE_ENDPOINT is required")
	}
	if cfg.ObjectStorageBucket == "" {
		return nil, errors.New("OBJECT_STORAGE_BUCKET is required")
	}
	client, err := minio.New(cfg.ObjectStorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.ObjectStorageAccessKey, cfg.ObjectStorageSecretKey, ""),
		Secure: cfg.ObjectStorageUseSSL,
		Region: cfg.ObjectStorageRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	return &MinIOMirror{client: client, bucket: cfg.ObjectStorageBucket}, nil
}

// Bucket returns the configured bucket name.
func (m *MinIOMirror) Bucket() string { return m.bucket }

// EnsureBucket creates the bucket when it does not exist yet.
func (m *MinIOMirror) EnsureBucket(ctx context.Context, region string) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", m.bucket, err)
	}
	if exists {
		return nil
	}
	if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", m.bucket, err)
	}
	return nil
}

// Put implements Mirror.
func (m *MinIOMirror) Put(ctx context.Context, key, contentType string, data []byte) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Remove implements Mirror.
func (m *MinIOMirror) Remove(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
