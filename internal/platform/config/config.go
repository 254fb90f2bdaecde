// Package config loads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings read at startup.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string
	// LogLevel is a zap level name.
	LogLevel string
	// ProjectID enables Cloud Trace correlation in request logs. Empty disables it.
	ProjectID string
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
	// MetricsEnabled mounts GET /metrics.
	MetricsEnabled bool
}

// Default returns the settings used when no variable is set.
func Default() Config {
	return Config{
		Port:            "8080",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
		MetricsEnabled:  true,
	}
}

// Load reads the given dotenv files (".env" when none are named) into the process
// environment without overriding variables that are already set, then builds a Config.
// Missing dotenv files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from lookup, typically os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("PORT"); ok && v != "" {
		if _, err := strconv.ParseUint(v, 10, 16); err != nil {
			return Config{}, fmt.Errorf("config: invalid PORT %q: %w", v, err)
		}
		cfg.Port = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	for _, key := range []string{"PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "GCP_PROJECT", "GCLOUD_PROJECT"} {
		if v, ok := lookup(key); ok && v != "" {
			cfg.ProjectID = v
			break
		}
	}
	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("config: SHUTDOWN_TIMEOUT must be positive, got %s", d)
		}
		cfg.ShutdownTimeout = d
	}
	if v, ok := lookup("METRICS_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid METRICS_ENABLED %q: %w", v, err)
		}
		cfg.MetricsEnabled = b
	}
	return cfg, nil
}

// Addr returns the listen address for http.Server.
func (c Config) Addr() string {
	return ":" + c.Port
}
