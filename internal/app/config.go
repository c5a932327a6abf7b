package app

import (
	"errors"
	"slices"
	"strings"

	"github.com/vk/cogroup/internal/config"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPaths []string // hcl files or directories, applied in order

	LogFormat string
	LogLevel  string

	// Override runs after the HCL files are applied and before validation.
	// The CLI uses it to layer flags and environment variables on top.
	Override func(*config.Model) error
}

// NewConfig normalizes and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	if !slices.Contains(logFormats, cfg.LogFormat) {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	if !slices.Contains(logLevels, cfg.LogLevel) {
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	return &cfg, nil
}
