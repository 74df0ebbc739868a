package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Backend identifiers accepted by STORAGE_BACKEND and METADATA_BACKEND.
const (
	StorageGCS   = "gcs"
	StorageMinIO = "minio"

	MetadataFirestore = "firestore"
	MetadataMongoDB   = "mongodb"
)

// Config is the process-wide configuration of the upload function.
// It is built once at start and never mutated afterwards.
type Config struct {
	ProjectID      string
	BucketName     string
	CollectionName string

	StorageBackend  string
	MetadataBackend string

	MinIO   MinIOConfig
	MongoDB MongoDBConfig

	Port     string
	LogLevel slog.Level
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Load reads the configuration from the environment.
//
// BUCKET_NAME and COLLECTION_NAME may be empty; the handler reports them per
// invocation. Load only fails on values that are present but malformed.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("STORAGE_BACKEND", StorageGCS)
	v.SetDefault("METADATA_BACKEND", MetadataFirestore)
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("MONGODB_DATABASE", "uploads")
	v.SetDefault("MONGODB_TIMEOUT", 10)
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		ProjectID:       v.GetString("PROJECT_ID"),
		BucketName:      v.GetString("BUCKET_NAME"),
		CollectionName:  v.GetString("COLLECTION_NAME"),
		StorageBackend:  strings.ToLower(v.GetString("STORAGE_BACKEND")),
		MetadataBackend: strings.ToLower(v.GetString("METADATA_BACKEND")),
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
		MongoDB: MongoDBConfig{
			URI:      v.GetString("MONGODB_URI"),
			Database: v.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(v.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Port: v.GetString("PORT"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	switch cfg.StorageBackend {
	case StorageGCS, StorageMinIO:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	switch cfg.MetadataBackend {
	case MetadataFirestore, MetadataMongoDB:
	default:
		return nil, fmt.Errorf("unsupported METADATA_BACKEND %q", cfg.MetadataBackend)
	}

	return cfg, nil
}

// HasUploadTargets reports whether both the bucket and the collection are set.
func (c *Config) HasUploadTargets() bool {
	return c.BucketName != "" && c.CollectionName != ""
}
