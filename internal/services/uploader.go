package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Lllllllleong/fileupload/internal/config"
	"github.com/Lllllllleong/fileupload/internal/database"
	"github.com/Lllllllleong/fileupload/internal/gcp"
	"github.com/Lllllllleong/fileupload/internal/models"
	"github.com/Lllllllleong/fileupload/internal/storage"
)

var (
	ErrMissingFields = errors.New("missing uploadedBy or file")
	ErrMissingConfig = errors.New("missing environment configuration")
)

// ObjectStore is the single object-storage capability the uploader needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, contentType string) error
}

// MetadataStore is the single document-store capability the uploader needs.
type MetadataStore interface {
	AddRecord(ctx context.Context, collection string, rec models.UploadRecord) (string, error)
}

// UploaderFunction holds the dependencies for the upload logic.
type UploaderFunction struct {
	objects  ObjectStore
	metadata MetadataStore
	config   config.Config
	now      func() time.Time
	closers  []io.Closer
}

// NewUploader builds the storage and metadata backends selected by cfg.
func NewUploader(ctx context.Context, cfg *config.Config) (*UploaderFunction, error) {
	f := &UploaderFunction{config: *cfg, now: time.Now}

	switch cfg.StorageBackend {
	case config.StorageMinIO:
		s, err := storage.NewMinIOObjectStore(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("failed to create MinIO store: %w", err)
		}
		f.objects = s
	default:
		client, err := gcp.NewStorageClient(ctx)
		if err != nil {
			return nil, err
		}
		s := gcp.NewGCSObjectStore(client)
		f.objects = s
		f.closers = append(f.closers, s)
	}

	switch cfg.MetadataBackend {
	case config.MetadataMongoDB:
		client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		s := database.NewMongoMetadataStore(client, cfg.MongoDB.Database)
		f.metadata = s
		f.closers = append(f.closers, s)
	default:
		client, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID)
		if err != nil {
			f.Close()
			return nil, err
		}
		s := gcp.NewFirestoreMetadataStore(client)
		f.metadata = s
		f.closers = append(f.closers, s)
	}

	slog.Info("Uploader initialized.",
		"storageBackend", cfg.StorageBackend,
		"metadataBackend", cfg.MetadataBackend,
		"bucket", cfg.BucketName,
		"collection", cfg.CollectionName,
	)
	return f, nil
}

// NewUploaderWithStores wires an uploader around already constructed stores.
func NewUploaderWithStores(cfg config.Config, objects ObjectStore, metadata MetadataStore) *UploaderFunction {
	return &UploaderFunction{
		objects:  objects,
		metadata: metadata,
		config:   cfg,
		now:      time.Now,
	}
}

// Process stores the file and then records its metadata.
//
// The metadata record is written only after the object store accepted the
// file. A failure of the metadata write leaves the stored object in place.
func (f *UploaderFunction) Process(ctx context.Context, req *models.UploadRequest) (*models.UploadResponse, error) {
	if req == nil || req.UploadedBy == "" || req.Filename == "" || req.Content == nil {
		return nil, ErrMissingFields
	}
	if !f.config.HasUploadTargets() {
		return nil, ErrMissingConfig
	}

	logCtx := slog.With("bucket", f.config.BucketName, "object", req.Filename, "uploadedBy", req.UploadedBy)

	if err := f.objects.PutObject(ctx, f.config.BucketName, req.Filename, req.Content, req.Size, req.ContentType); err != nil {
		logCtx.Error("Failed to upload file", "error", err)
		return nil, fmt.Errorf("failed to upload %s: %w", req.Filename, err)
	}

	rec := models.UploadRecord{
		Filename:   req.Filename,
		UploadedBy: req.UploadedBy,
		Timestamp:  models.FormatTimestamp(f.now()),
	}
	docID, err := f.metadata.AddRecord(ctx, f.config.CollectionName, rec)
	if err != nil {
		logCtx.Error("Failed to record upload metadata; stored object has no record", "collection", f.config.CollectionName, "error", err)
		return nil, fmt.Errorf("failed to record metadata for %s: %w", req.Filename, err)
	}

	logCtx.Info("Upload complete.", "collection", f.config.CollectionName, "documentId", docID, "contentType", req.ContentType)
	return &models.UploadResponse{
		Message: fmt.Sprintf("File %s uploaded successfully!", req.Filename),
	}, nil
}

// Close releases the backend clients.
func (f *UploaderFunction) Close() error {
	var errs []error
	for _, c := range f.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
