package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with layered overrides.
// Load order (later sources override earlier):
//  1. Built-in defaults
//  2. User config (~/.boardctx/config.yaml) - optional
//  3. Project config (.boardctx/config.yaml) - optional
//  4. Environment variables (BOARDCTX_*)
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit project config path; empty means
// the default project location. An explicit path that does not exist is
// an error, while the default locations are optional.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// 2. User config (~/.boardctx/config.yaml)
	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, BoardctxDir, ConfigFileName)
		if _, err := os.Stat(userPath); err == nil {
			if err := mergeFromFile(cfg, userPath); err != nil {
				slog.Warn("failed to load user config", "path", userPath, "error", err)
			}
		}
	}

	// 3. Project config
	projectPath := path
	explicit := path != ""
	if !explicit {
		projectPath = filepath.Join(BoardctxDir, ConfigFileName)
	}
	if _, err := os.Stat(projectPath); err == nil {
		if err := mergeFromFile(cfg, projectPath); err != nil {
			return nil, err
		}
	} else if explicit {
		return nil, fmt.Errorf("config file %s: %w", projectPath, err)
	}

	// 4. Environment variables
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFromFile merges configuration from a YAML file into cfg. Fields
// absent from the file keep their current values.
func mergeFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}
