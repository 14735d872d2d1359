// Package config reads the order service settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Port string

	ApparelsURL   string
	CustomersURL  string
	WarehousesURL string
	ClientTimeout time.Duration

	StoreDriver string
	SQLitePath  string
	DatabaseURL string

	// RedisAddr empty disables idempotent create replay.
	RedisAddr      string
	IdempotencyTTL time.Duration

	// SagaLogPath empty disables the persistent reservation log.
	SagaLogPath string

	LogLevel     string
	OtelEnabled  bool
	ServiceName  string
	OtelEndpoint string
	Environment  string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8082"),
		ApparelsURL:   getEnv("APPARELS_SERVICE_URL", "http://localhost:8081"),
		CustomersURL:  getEnv("CUSTOMERS_SERVICE_URL", "http://localhost:8083"),
		WarehousesURL: getEnv("WAREHOUSES_SERVICE_URL", "http://localhost:8084"),
		StoreDriver:   getEnv("STORE_DRIVER", StoreMemory),
		SQLitePath:    getEnv("SQLITE_PATH", "orders.db"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		SagaLogPath:   os.Getenv("SAGA_LOG_PATH"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ServiceName:   getEnv("OTEL_SERVICE_NAME", "order-service"),
		OtelEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		Environment:   getEnv("OTEL_RESOURCE_ATTRIBUTES_ENV", "local"),
	}

	var err error
	if cfg.ClientTimeout, err = durationEnv("HTTP_CLIENT_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.IdempotencyTTL, err = durationEnv("IDEMPOTENCY_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.OtelEnabled, err = boolEnv("OTEL_ENABLED", false); err != nil {
		return nil, err
	}

	switch cfg.StoreDriver {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("config: DATABASE_URL is required when STORE_DRIVER=%s", StorePostgres)
		}
	default:
		return nil, fmt.Errorf("config: unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", key, raw)
	}
	return d, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("config: %s: %w", key, err)
	}
	return b, nil
}
