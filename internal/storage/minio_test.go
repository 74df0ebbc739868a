package storage

import (
	"testing"

	"github.com/Lllllllleong/fileupload/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMinIOObjectStore_RequiresEndpoint(t *testing.T) {
	_, err := NewMinIOObjectStore(config.MinIOConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MINIO_ENDPOINT")
}

func TestNewMinIOObjectStore(t *testing.T) {
	s, err := NewMinIOObjectStore(config.MinIOConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	})
	require.NoError(t, err)
	require.NotNil(t, s.client)
	assert.Equal(t, "localhost:9000", s.client.EndpointURL().Host)
}
