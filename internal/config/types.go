package config

import "github.com/nibzard/todoboard/internal/datadir"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Config files that were read, lowest precedence first
	Files []string
}

// DefaultDataFile is the data file relative to the project root.
var DefaultDataFile = datadir.DataPath("")

// Default values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for todoboard.
type Config struct {
	// Data file (relative to the project root unless absolute)
	DataFile string `toml:"data_file"`

	// Category list offered for new records and reported by stats
	Categories []string `toml:"categories"`

	// Quick-add templates; replace the built-in set when non-empty
	Templates []TemplateConfig `toml:"templates"`

	// Logging
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Computed at runtime
	ProjectRoot string `toml:"-"`
}

// TemplateConfig is one [[templates]] table.
type TemplateConfig struct {
	Name     string `toml:"name"`
	Title    string `toml:"title"`
	Category string `toml:"category"`
	Priority string `toml:"priority"`
}
