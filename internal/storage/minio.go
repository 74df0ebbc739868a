package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Lllllllleong/fileupload/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOObjectStore is a thin wrapper around the minio client for
// S3-compatible deployments outside GCP.
type MinIOObjectStore struct {
	client *minio.Client
}

// NewMinIOObjectStore creates a MinIO client. Buckets are not created here;
// they are owned by whoever provisions the deployment.
func NewMinIOObjectStore(cfg config.MinIOConfig) (*MinIOObjectStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("MINIO_ENDPOINT must be set when STORAGE_BACKEND=%s", config.StorageMinIO)
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}
	return &MinIOObjectStore{client: mc}, nil
}

// PutObject uploads r to bucket/key, replacing any existing object.
// A size of -1 makes the client fall back to a multipart upload.
func (s *MinIOObjectStore) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("minio put %s/%s: %w", bucket, key, err)
	}
	return nil
}
