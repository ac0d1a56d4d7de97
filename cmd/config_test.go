package cmd

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(envOf(map[string]string{"JWT_SECRET": "s"}))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StorageDriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 2*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 100, cfg.OutboxBatchSize)
	assert.Equal(t, "order-events", cfg.KafkaOrderEventsTopic)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "host=localhost port=5432 user=postgres password= dbname=storefront sslmode=disable", cfg.DSN())
}

func TestLoadConfig_Overrides(t *testing.T) {
	cfg, err := LoadConfig(envOf(map[string]string{
		"JWT_SECRET":        "s",
		"STORAGE_DRIVER":    "memory",
		"CATALOG_CACHE_TTL": "30s",
		"OUTBOX_BATCH_SIZE": "25",
		"LOG_LEVEL":         "debug",
		"KAFKA_BROKERS":     "k1:9092,k2:9092",
	}))

	require.NoError(t, err)
	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, 30*time.Second, cfg.CatalogCacheTTL)
	assert.Equal(t, 25, cfg.OutboxBatchSize)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "k1:9092,k2:9092", cfg.KafkaBrokers)
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := map[string]map[string]string{
		"missing secret": {},
		"bad driver":     {"JWT_SECRET": "s", "STORAGE_DRIVER": "mongo"},
		"bad ttl":        {"JWT_SECRET": "s", "CATALOG_CACHE_TTL": "soon"},
		"bad timeout":    {"JWT_SECRET": "s", "CATALOG_TIMEOUT": "1parsec"},
		"bad batch size": {"JWT_SECRET": "s", "OUTBOX_BATCH_SIZE": "many"},
		"bad log level":  {"JWT_SECRET": "s", "LOG_LEVEL": "loud"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(envOf(env))
			require.Error(t, err)
		})
	}
}
