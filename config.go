package tempest

import (
	"os"
	"strconv"

	"github.com/tempest-engine/tempest/storage"
)

// WorldConfig carries the environment-derived settings NewWorld starts
// from. Options override individual fields.
type WorldConfig struct {
	ChunkBytes    int
	LogLevel      string
	StatsdAddress string
}

func GetWorldConfig() WorldConfig {
	return WorldConfig{
		ChunkBytes:    getEnvInt("TEMPEST_CHUNK_BYTES", storage.DefaultChunkBytes),
		LogLevel:      getEnv("TEMPEST_LOG_LEVEL", "info"),
		StatsdAddress: getEnv("TEMPEST_STATSD_ADDRESS", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
