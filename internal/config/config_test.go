package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BUCKET_NAME", "uploads-bucket")
	t.Setenv("COLLECTION_NAME", "uploads")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "uploads-bucket", cfg.BucketName)
	assert.Equal(t, "uploads", cfg.CollectionName)
	assert.Equal(t, StorageGCS, cfg.StorageBackend)
	assert.Equal(t, MetadataFirestore, cfg.MetadataBackend)
	assert.Equal(t, "uploads", cfg.MongoDB.Database)
	assert.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.HasUploadTargets())
}

func TestLoad_MissingTargetsIsNotAnError(t *testing.T) {
	t.Setenv("BUCKET_NAME", "")
	t.Setenv("COLLECTION_NAME", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.HasUploadTargets())
}

func TestHasUploadTargets(t *testing.T) {
	tests := []struct {
		name       string
		bucket     string
		collection string
		want       bool
	}{
		{"both set", "b", "c", true},
		{"bucket missing", "", "c", false},
		{"collection missing", "b", "", false},
		{"both missing", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{BucketName: tt.bucket, CollectionName: tt.collection}
			assert.Equal(t, tt.want, cfg.HasUploadTargets())
		})
	}
}

func TestLoad_Backends(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "MinIO")
	t.Setenv("METADATA_BACKEND", "mongodb")
	t.Setenv("MINIO_ENDPOINT", "localhost:9000")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_TIMEOUT", "3")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageMinIO, cfg.StorageBackend)
	assert.Equal(t, MetadataMongoDB, cfg.MetadataBackend)
	assert.Equal(t, "localhost:9000", cfg.MinIO.Endpoint)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoDB.URI)
	assert.Equal(t, 3*time.Second, cfg.MongoDB.Timeout)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_RejectsUnknownValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"storage backend", "STORAGE_BACKEND", "azure"},
		{"metadata backend", "METADATA_BACKEND", "dynamodb"},
		{"log level", "LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}
