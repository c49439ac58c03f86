package config

import (
	"log/slog"
	"os"
	"strconv"
)

// Environment variables recognized by boardctx. Each overrides the
// corresponding config field when set.
const (
	EnvURL      = "BOARDCTX_URL"
	EnvToken    = "BOARDCTX_TOKEN"
	EnvProject  = "BOARDCTX_PROJECT"
	EnvCacheTTL = "BOARDCTX_CACHE_TTL"
	EnvColor    = "BOARDCTX_COLOR"
)

// applyEnv applies BOARDCTX_* overrides to cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvURL); v != "" {
		cfg.Service.URL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		cfg.Service.Token = v
	}
	if v := os.Getenv(EnvProject); v != "" {
		cfg.Project.ID = v
	}
	if v := os.Getenv(EnvCacheTTL); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLSeconds = n
		} else {
			slog.Warn("ignoring non-numeric env var", "var", EnvCacheTTL, "value", v)
		}
	}
	if v := os.Getenv(EnvColor); v != "" {
		cfg.Output.Color = v
	}
}
