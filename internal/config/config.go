// Package config reads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"go-chi-calculator/internal/observability"
)

type Config struct {
	HTTPAddr         string
	LogLevel         string
	ServiceName      string
	TelemetryEnabled bool
	ShutdownTimeout  time.Duration
}

const (
	defaultHTTPAddr        = ":8080"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 5 * time.Second
)

// Load reads .env when present, then builds a Config from the environment.
// Variables already set in the process environment are not overridden.
func Load() (Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return Config{}, err
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config using lookup for every variable.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Config{
		HTTPAddr:         getString(lookup, "HTTP_ADDR", defaultHTTPAddr),
		LogLevel:         getString(lookup, "LOG_LEVEL", defaultLogLevel),
		ServiceName:      getString(lookup, "OTEL_SERVICE_NAME", observability.DefaultServiceName),
		TelemetryEnabled: true,
		ShutdownTimeout:  defaultShutdownTimeout,
	}

	if v, ok := lookup("TELEMETRY_ENABLED"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse TELEMETRY_ENABLED: %w", err)
		}
		cfg.TelemetryEnabled = enabled
	}

	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", d)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, nil
}

// loadDotEnv loads environment variables from path when present.
// Existing process environment variables are not overridden.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}

func getString(lookup func(string) (string, bool), key, fallback string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return fallback
}
