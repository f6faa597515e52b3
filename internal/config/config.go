// Package config loads runnerd configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds all configuration for the runnerd server.
type Config struct {
	Addr    string // HTTP listen address
	WorkDir string // fixed working directory, created at startup
	Version string // server version, injected by the binary

	// Interpreters maps script interpreter names to binary paths, for hosts
	// where e.g. bash is not on PATH under that name.
	Interpreters map[string]string

	// Janitor for old workspace artifacts. Disabled unless CleanupMaxAge
	// is set; script files are otherwise the client's to clean up.
	CleanupMaxAge   time.Duration
	CleanupInterval time.Duration

	LogLevel string
}

// Load reads configuration from RUNNERD_* environment variables with
// defaults suitable for a local, trusted-network deployment.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:            envOrDefault("RUNNERD_ADDR", ":8080"),
		WorkDir:         envOrDefault("RUNNERD_WORKDIR", filepath.Join(os.TempDir(), "runnerd")),
		CleanupInterval: 8 * time.Hour,
		LogLevel:        envOrDefault("RUNNERD_LOG_LEVEL", "info"),
	}

	interps, err := parseInterpreters(os.Getenv("RUNNERD_INTERPRETERS"))
	if err != nil {
		return nil, err
	}
	cfg.Interpreters = interps

	if v := os.Getenv("RUNNERD_CLEANUP_MAX_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RUNNERD_CLEANUP_MAX_AGE %q: %w", v, err)
		}
		cfg.CleanupMaxAge = d
	}
	if v := os.Getenv("RUNNERD_CLEANUP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid RUNNERD_CLEANUP_INTERVAL %q: %w", v, err)
		}
		cfg.CleanupInterval = d
	}

	return cfg, nil
}

// parseInterpreters parses "name=path,name=path" overrides, e.g.
// "bash=/opt/homebrew/bin/bash,pwsh=/usr/bin/pwsh".
func parseInterpreters(s string) (map[string]string, error) {
	if s == "" {
		return nil, nil
	}
	m := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, path, ok := strings.Cut(pair, "=")
		if !ok || name == "" || path == "" {
			return nil, fmt.Errorf("invalid RUNNERD_INTERPRETERS entry %q (want name=path)", pair)
		}
		m[name] = path
	}
	return m, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
