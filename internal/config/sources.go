package config

import (
	"fmt"
	"sort"
	"strings"
)

// Field is one configuration value as shown by the config command.
type Field struct {
	Name   string
	Value  string
	Source ConfigSource
}

// Fields returns every configurable value with its source, in a stable order.
func (cws *ConfigWithSources) Fields() []Field {
	cfg := cws.Config
	values := map[string]string{
		"data_file":      cfg.DataFile,
		"categories":     strings.Join(cfg.CategoryList(), ", "),
		"templates":      templateNames(cfg),
		"log_level":      cfg.LogLevel,
		"log_format":     cfg.LogFormat,
		"log_timestamps": fmt.Sprintf("%t", cfg.LogTimestamps),
		"log_caller":     fmt.Sprintf("%t", cfg.LogCaller),
	}

	fields := make([]Field, 0, len(values))
	for _, name := range configFields() {
		source, ok := cws.Sources[name]
		if !ok {
			source = SourceDefault
		}
		fields = append(fields, Field{Name: name, Value: values[name], Source: source})
	}
	return fields
}

func templateNames(cfg *Config) string {
	tpls := cfg.StoreTemplates()
	names := make([]string, 0, len(tpls))
	for _, tpl := range tpls {
		names = append(names, tpl.Name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// GetConfigFile returns the highest-precedence config file that was read,
// or "" when only defaults, environment and flags apply.
func (cws *ConfigWithSources) GetConfigFile() string {
	if len(cws.Files) == 0 {
		return ""
	}
	return cws.Files[len(cws.Files)-1]
}
