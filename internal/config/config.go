// Package config loads boardctx configuration from layered YAML files
// and environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	boarderrors "github.com/randalmurphal/boardctx/internal/errors"
)

const (
	// BoardctxDir is the per-project configuration directory.
	BoardctxDir = ".boardctx"
	// ConfigFileName is the config file name inside BoardctxDir.
	ConfigFileName = "config.yaml"
)

// Config is the full boardctx configuration.
type Config struct {
	Service   ServiceConfig   `yaml:"service"`
	Project   ProjectConfig   `yaml:"project"`
	Cache     CacheConfig     `yaml:"cache"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Output    OutputConfig    `yaml:"output"`
}

// ServiceConfig locates the board service.
type ServiceConfig struct {
	URL            string `yaml:"url"`
	Token          string `yaml:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ProjectConfig selects the project scope.
type ProjectConfig struct {
	ID string `yaml:"id"`
}

// CacheConfig tunes the directory staleness window and the local
// snapshot store.
type CacheConfig struct {
	TTLSeconds   int    `yaml:"ttl_seconds"`
	SnapshotPath string `yaml:"snapshot_path"`
}

// ArtifactsConfig filters context artifacts by path glob.
type ArtifactsConfig struct {
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

// OutputConfig controls terminal rendering.
type OutputConfig struct {
	// Color is "auto", "always", or "never".
	Color string `yaml:"color"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{TimeoutSeconds: 30},
		Cache:   CacheConfig{TTLSeconds: 30},
		Output:  OutputConfig{Color: "auto"},
	}
}

// TTL returns the cache staleness window as a duration.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Service.TimeoutSeconds) * time.Second
}

// SnapshotPath resolves the snapshot database location, defaulting to
// ~/.boardctx/snapshots.db.
func (c *Config) SnapshotPath() string {
	if c.Cache.SnapshotPath != "" {
		return c.Cache.SnapshotPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(BoardctxDir, "snapshots.db")
	}
	return filepath.Join(home, BoardctxDir, "snapshots.db")
}

// Validate checks field values that have a closed domain.
func (c *Config) Validate() error {
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return boarderrors.ErrConfigInvalid("output.color", "must be auto, always, or never")
	}
	if c.Cache.TTLSeconds < 0 {
		return boarderrors.ErrConfigInvalid("cache.ttl_seconds", "must not be negative")
	}
	if c.Service.TimeoutSeconds <= 0 {
		return boarderrors.ErrConfigInvalid("service.timeout_seconds", "must be positive")
	}
	return nil
}
