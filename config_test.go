package tempest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tempest "github.com/tempest-engine/tempest"
	"github.com/tempest-engine/tempest/storage"
)

func TestWorldConfigDefaults(t *testing.T) {
	cfg := tempest.GetWorldConfig()
	assert.Equal(t, storage.DefaultChunkBytes, cfg.ChunkBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.StatsdAddress)
}

func TestWorldConfigFromEnv(t *testing.T) {
	t.Setenv("TEMPEST_CHUNK_BYTES", "4096")
	t.Setenv("TEMPEST_LOG_LEVEL", "debug")

	cfg := tempest.GetWorldConfig()
	assert.Equal(t, 4096, cfg.ChunkBytes)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestWorldConfigIgnoresInvalidChunkBytes(t *testing.T) {
	t.Setenv("TEMPEST_CHUNK_BYTES", "not-a-number")
	cfg := tempest.GetWorldConfig()
	assert.Equal(t, storage.DefaultChunkBytes, cfg.ChunkBytes)
}
