package config

import (
	"os"
	"strings"

	"github.com/nibzard/todoboard/internal/utils"
)

// loadFromEnv overrides config from TODOBOARD_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	if v := os.Getenv("TODOBOARD_DATA"); v != "" {
		setSource(&cfg.DataFile, v, sources, "data_file", SourceEnv)
	}
	if v := os.Getenv("TODOBOARD_CATEGORIES"); v != "" {
		setSource(&cfg.Categories, utils.SplitAndTrim(v, ","), sources, "categories", SourceEnv)
	}

	// Logging configuration
	if v := os.Getenv("TODOBOARD_LOG_LEVEL"); v != "" {
		setSource(&cfg.LogLevel, v, sources, "log_level", SourceEnv)
	}
	if v := os.Getenv("TODOBOARD_LOG_FORMAT"); v != "" {
		setSource(&cfg.LogFormat, v, sources, "log_format", SourceEnv)
	}
	if v := os.Getenv("TODOBOARD_LOG_TIMESTAMPS"); v != "" {
		setSource(&cfg.LogTimestamps, boolFromString(v), sources, "log_timestamps", SourceEnv)
	}
	if v := os.Getenv("TODOBOARD_LOG_CALLER"); v != "" {
		setSource(&cfg.LogCaller, boolFromString(v), sources, "log_caller", SourceEnv)
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
