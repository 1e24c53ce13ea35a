package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spotlog/service-planner/internal/platform/config"
)

// Store backends.
const (
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

// ServiceConfig holds all configuration for the planner service.
type ServiceConfig struct {
	Port              string
	AppEnv            string
	PlaceAPIBaseURL   string
	RouteAPIBaseURL   string
	HTTPClientTimeout time.Duration
	StoreBackend      string
	StoreKey          string
	DBConfig          config.DatabaseConfig
	RedisConfig       config.RedisConfig
	KafkaConfig       config.KafkaConfig
}

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("PLANNER")
	if err != nil {
		return nil, err
	}

	cfg := &ServiceConfig{
		Port:              config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:            config.GetAppEnv(v),
		PlaceAPIBaseURL:   strings.TrimRight(config.GetString(v, "PLACE_API_BASE_URL", "http://localhost:8000"), "/"),
		RouteAPIBaseURL:   strings.TrimRight(config.GetString(v, "ROUTE_API_BASE_URL", "http://localhost:8000"), "/"),
		HTTPClientTimeout: config.GetDuration(v, "HTTP_CLIENT_TIMEOUT", 10*time.Second),
		StoreBackend:      strings.ToLower(config.GetString(v, "STORE_BACKEND", StoreBackendRedis)),
		StoreKey:          config.GetString(v, "STORE_KEY", "favoritePlaces"),
		DBConfig:          config.LoadDatabaseConfig(v, "DB_NAME"),
		RedisConfig:       config.LoadRedisConfig(v),
		KafkaConfig:       config.LoadKafkaConfig(v),
	}

	switch cfg.StoreBackend {
	case StoreBackendRedis, StoreBackendPostgres:
	default:
		return nil, fmt.Errorf("unsupported store backend %q", cfg.StoreBackend)
	}
	if cfg.DBConfig.DBName == "" {
		cfg.DBConfig.DBName = "planner"
	}
	return cfg, nil
}
