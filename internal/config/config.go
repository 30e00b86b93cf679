package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL          string
	RedisAddr            string
	Port                 string
	AppEnv               string
	JWTSecret            string
	GooglePlacesAPIKey   string
	GoogleClientID       string
	WorkflowTimeout      time.Duration
	OtelExporterEndpoint string
}

// Load reads configuration from environment variables.
// It applies defaults for "local" environments but enforces strictness for others.
func Load() (Config, error) {
	cfg := Config{
		Port:                 os.Getenv("PORT"),
		AppEnv:               os.Getenv("APP_ENV"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		GooglePlacesAPIKey:   os.Getenv("GOOGLE_PLACES_API_KEY"),
		GoogleClientID:       os.Getenv("GOOGLE_CLIENT_ID"),
		OtelExporterEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		if cfg.AppEnv == "local" {
			cfg.JWTSecret = "dev-secret-do-not-use-in-prod"
		} else {
			return Config{}, errors.New("JWT_SECRET is required")
		}
	}
	if cfg.GooglePlacesAPIKey == "" {
		if cfg.AppEnv == "local" {
			// Lookups fail and surface as unavailable details.
			cfg.GooglePlacesAPIKey = "local-placeholder"
		} else {
			return Config{}, errors.New("GOOGLE_PLACES_API_KEY is required")
		}
	}
	// Default to production safety if not explicitly set to local
	if cfg.AppEnv == "" {
		cfg.AppEnv = "production"
	}

	if raw := os.Getenv("WORKFLOW_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("WORKFLOW_TIMEOUT must be a positive duration, got %q", raw)
		}
		cfg.WorkflowTimeout = d
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		return Config{}, errors.New("REDIS_ADDR is required")
	}

	return cfg, nil
}
