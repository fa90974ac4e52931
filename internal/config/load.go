package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/todoboard/internal/todo"
)

// LoadWithSources loads configuration from multiple sources in priority
// order and tracks the source of each value:
// 1. Defaults
// 2. User config file (~/.todoboard/todoboard.toml or OS-specific config dir)
// 3. Project config file (todoboard.toml or .todoboard.toml in current directory)
// 4. Environment variables
// 5. CLI flags
//
// fs receives the global flags; the arguments left after parsing are
// available from fs.Args().
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{}
	var files []string

	// 1. Set defaults (all fields start with default source)
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	userConfigFile := findUserConfigFile()
	if userConfigFile != "" {
		if err := loadConfigFile(cfg, userConfigFile, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", userConfigFile, err)
		}
		files = append(files, userConfigFile)
	}

	// 3. Try to load from project config file (overrides user config)
	projectConfigFile := findProjectConfigFile()
	if projectConfigFile != "" {
		if err := loadConfigFile(cfg, projectConfigFile, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", projectConfigFile, err)
		}
		files = append(files, projectConfigFile)
	}

	// 4. Override from environment
	loadFromEnv(cfg, sources)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	// 6. Compute derived values
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
		Files:   files,
	}, nil
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"data_file",
		"categories",
		"templates",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.DataFile = DefaultDataFile
	cfg.Categories = nil
	cfg.Templates = nil
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}

// loadConfigFile decodes the TOML file at path over cfg. Only keys present
// in the file are applied, so a later file overrides an earlier one key by
// key.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	fileCfg := &Config{}
	md, err := toml.DecodeFile(path, fileCfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}

	if md.IsDefined("data_file") {
		setSource(&cfg.DataFile, fileCfg.DataFile, sources, "data_file", source)
	}
	if md.IsDefined("categories") {
		setSource(&cfg.Categories, fileCfg.Categories, sources, "categories", source)
	}
	if md.IsDefined("templates") {
		setSource(&cfg.Templates, fileCfg.Templates, sources, "templates", source)
	}
	if md.IsDefined("log_level") {
		setSource(&cfg.LogLevel, fileCfg.LogLevel, sources, "log_level", source)
	}
	if md.IsDefined("log_format") {
		setSource(&cfg.LogFormat, fileCfg.LogFormat, sources, "log_format", source)
	}
	if md.IsDefined("log_timestamps") {
		setSource(&cfg.LogTimestamps, fileCfg.LogTimestamps, sources, "log_timestamps", source)
	}
	if md.IsDefined("log_caller") {
		setSource(&cfg.LogCaller, fileCfg.LogCaller, sources, "log_caller", source)
	}
	return nil
}

// setSource assigns value to field and records where it came from.
func setSource[T any](field *T, value T, sources map[string]ConfigSource, name string, source ConfigSource) {
	*field = value
	if sources != nil {
		sources[name] = source
	}
}

// finalizeConfig computes derived values and validates the result.
func finalizeConfig(cfg *Config) error {
	// Determine project root
	if cfg.ProjectRoot == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.ProjectRoot = wd
	}

	if strings.TrimSpace(cfg.DataFile) == "" {
		return fmt.Errorf("data_file must not be empty")
	}
	cfg.DataFile = expandPath(cfg.DataFile)
	if !filepath.IsAbs(cfg.DataFile) {
		cfg.DataFile = filepath.Join(cfg.ProjectRoot, cfg.DataFile)
	}

	for i, tpl := range cfg.Templates {
		if strings.TrimSpace(tpl.Name) == "" {
			return fmt.Errorf("templates[%d]: name is required", i)
		}
		if strings.TrimSpace(tpl.Title) == "" {
			return fmt.Errorf("templates[%d] (%s): title is required", i, tpl.Name)
		}
		if tpl.Priority == "" {
			cfg.Templates[i].Priority = string(todo.PriorityMedium)
			continue
		}
		p, err := todo.ParsePriority(tpl.Priority)
		if err != nil {
			return fmt.Errorf("templates[%d] (%s): %w", i, tpl.Name, err)
		}
		cfg.Templates[i].Priority = string(p)
	}

	return nil
}
