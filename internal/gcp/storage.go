package gcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GCSObjectStore writes uploaded files to Cloud Storage.
type GCSObjectStore struct {
	client *storage.Client
}

// NewStorageClient creates a Cloud Storage client. When STORAGE_EMULATOR_HOST
// is set the SDK targets the emulator on its own.
func NewStorageClient(ctx context.Context, opts ...option.ClientOption) (*storage.Client, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Storage client: %w", err)
	}
	return client, nil
}

func NewGCSObjectStore(client *storage.Client) *GCSObjectStore {
	return &GCSObjectStore{client: client}
}

// PutObject streams r into bucket/key. An existing object with the same key
// is overwritten; no precondition is set on the write.
func (s *GCSObjectStore) PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error {
	writer := s.client.Bucket(bucket).Object(key).NewWriter(ctx)
	writer.ContentType = contentType

	if _, err := io.Copy(writer, r); err != nil {
		_ = writer.Close()
		slog.Error("Failed to copy content to GCS object", "gcsBucket", bucket, "gcsObject", key, "error", err)
		return fmt.Errorf("failed to write to GCS: %w", annotate(err))
	}

	if err := writer.Close(); err != nil {
		slog.Error("Failed to close GCS writer", "gcsBucket", bucket, "gcsObject", key, "error", err)
		return fmt.Errorf("failed to finalize GCS write: %w", annotate(err))
	}
	return nil
}

func (s *GCSObjectStore) Close() error {
	return s.client.Close()
}

// annotate prefixes API errors with their HTTP status so the boundary log
// shows it without unwrapping.
func annotate(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return fmt.Errorf("gcs status %d: %w", gerr.Code, err)
	}
	return err
}
