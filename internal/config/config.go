// Package config loads process configuration from environment variables
// via small getEnv/getEnvAsInt/getEnvAsDuration helpers, each falling back
// to a default when the variable is unset or malformed.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration for a host process embedding
// the commercial document core.
type Config struct {
	// Application settings
	AppEnv        string
	AppPort       int
	RunMigrations bool

	// Database settings
	DatabaseURL                string
	DatabaseMaxConnections     int
	DatabaseMaxIdleConnections int
	DatabaseConnectionLifetime time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// HTTP/CORS
	CORSAllowedOrigins   string
	CORSAllowCredentials bool

	// NATS settings (domain event publisher)
	NATSURL       string
	EventsEnabled bool

	// Bulk operation throttle
	BulkOpsRequestsPerSecond float64
	BulkOpsBurst             int
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		AppPort:       getEnvAsInt("APP_PORT", 8080),
		RunMigrations: getEnvAsBool("RUN_MIGRATIONS", false),

		DatabaseURL:                getEnv("DATABASE_URL", ""),
		DatabaseMaxConnections:     getEnvAsInt("DATABASE_MAX_CONNECTIONS", 25),
		DatabaseMaxIdleConnections: getEnvAsInt("DATABASE_MAX_IDLE_CONNECTIONS", 5),
		DatabaseConnectionLifetime: getEnvAsDuration("DATABASE_CONNECTION_LIFETIME", 5*time.Minute),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		CORSAllowedOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "*"),
		CORSAllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),

		NATSURL:       getEnv("NATS_URL", "nats://localhost:4222"),
		EventsEnabled: getEnvAsBool("EVENTS_ENABLED", false),

		BulkOpsRequestsPerSecond: getEnvAsFloat("BULK_OPS_REQUESTS_PER_SECOND", 20),
		BulkOpsBurst:             getEnvAsInt("BULK_OPS_BURST", 10),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
