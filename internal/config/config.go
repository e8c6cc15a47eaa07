// Package config loads application configuration from an optional YAML
// file plus environment variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// InMemoryPath is the DatabasePath value that keeps all state in memory
// and never touches disk.
const InMemoryPath = ":memory:"

// Config holds all configuration for the application.
type Config struct {
	// Hostname is the interface the HTTP server binds to.
	Hostname string `yaml:"hostname"`

	// Port is the HTTP server port.
	Port int `yaml:"port"`

	// DatabasePath is where the JSON snapshot lives. The literal value
	// ":memory:" disables persistent writes.
	DatabasePath string `yaml:"database_path"`

	// SeedPath is the JSON document loaded by the admin seed operation.
	SeedPath string `yaml:"seed_path"`

	// PublicDir is served as static files (the admin page lives here).
	PublicDir string `yaml:"public_dir"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

func defaults() *Config {
	return &Config{
		Hostname:     "127.0.0.1",
		Port:         8080,
		DatabasePath: "db.json",
		SeedPath:     "resources/seed.json",
		PublicDir:    "public",
		LogLevel:     "info",
	}
}

// Load builds the configuration from defaults, then the YAML file named
// by SNSBOX_CONFIG (default "snsbox.yaml", missing file is not an
// error), then environment variable overrides.
func Load() (*Config, error) {
	cfg := defaults()

	path := os.Getenv("SNSBOX_CONFIG")
	if path == "" {
		path = "snsbox.yaml"
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if p := os.Getenv("PORT"); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("SNSBOX_HOSTNAME"); v != "" {
		cfg.Hostname = v
	}
	if v := os.Getenv("SNSBOX_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("SNSBOX_SEED_PATH"); v != "" {
		cfg.SeedPath = v
	}
	if v := os.Getenv("SNSBOX_PUBLIC_DIR"); v != "" {
		cfg.PublicDir = v
	}
	if v := os.Getenv("SNSBOX_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}

// Addr returns the host:port the server listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Hostname, c.Port)
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
