package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	StorageDriver   string
	CatalogSeedFile string

	RedisAddr       string
	CatalogCacheTTL time.Duration
	CatalogTimeout  time.Duration

	KafkaBrokers          string
	KafkaOrderEventsTopic string
	OutboxRelaySchedule   string
	OutboxBatchSize       int

	JWTSecret string
	LogLevel  slog.Level
}

// LoadConfig reads the environment. Optional keys fall back to defaults;
// malformed values are reported, never silently replaced.
func LoadConfig(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		HTTPPort:              get("HTTP_PORT", "8080"),
		DBHost:                get("DB_HOST", "localhost"),
		DBPort:                get("DB_PORT", "5432"),
		DBUser:                get("DB_USER", "postgres"),
		DBPassword:            getenv("DB_PASSWORD"),
		DBName:                get("DB_NAME", "storefront"),
		DBSslMode:             get("DB_SSLMODE", "disable"),
		StorageDriver:         get("STORAGE_DRIVER", StorageDriverPostgres),
		CatalogSeedFile:       getenv("CATALOG_SEED_FILE"),
		RedisAddr:             getenv("REDIS_ADDR"),
		KafkaBrokers:          getenv("KAFKA_BROKERS"),
		KafkaOrderEventsTopic: get("KAFKA_ORDER_EVENTS_TOPIC", "order-events"),
		OutboxRelaySchedule:   getenv("OUTBOX_RELAY_SCHEDULE"),
		JWTSecret:             getenv("JWT_SECRET"),
	}

	var err error
	if cfg.CatalogCacheTTL, err = time.ParseDuration(get("CATALOG_CACHE_TTL", "5m")); err != nil {
		return Config{}, fmt.Errorf("CATALOG_CACHE_TTL: %w", err)
	}
	if cfg.CatalogTimeout, err = time.ParseDuration(get("CATALOG_TIMEOUT", "2s")); err != nil {
		return Config{}, fmt.Errorf("CATALOG_TIMEOUT: %w", err)
	}
	if cfg.OutboxBatchSize, err = strconv.Atoi(get("OUTBOX_BATCH_SIZE", "100")); err != nil {
		return Config{}, fmt.Errorf("OUTBOX_BATCH_SIZE: %w", err)
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(get("LOG_LEVEL", "INFO"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER: unsupported driver %q", cfg.StorageDriver)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// LoadConfigFromEnv is LoadConfig over the process environment.
func LoadConfigFromEnv() (Config, error) {
	return LoadConfig(os.Getenv)
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
