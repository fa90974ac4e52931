package config

import (
	"flag"
)

// parseFlags defines the global flags on fs and parses args. Only flags
// given explicitly override earlier layers.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todoboard", flag.ContinueOnError)
	}

	var (
		dataFile      string
		logLevel      string
		logFormat     string
		logTimestamps bool
		logCaller     bool
	)
	fs.StringVar(&dataFile, "data", cfg.DataFile, "Path to data file")
	fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&logCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			setSource(&cfg.DataFile, dataFile, sources, "data_file", SourceFlag)
		case "log-level":
			setSource(&cfg.LogLevel, logLevel, sources, "log_level", SourceFlag)
		case "log-format":
			setSource(&cfg.LogFormat, logFormat, sources, "log_format", SourceFlag)
		case "log-timestamps":
			setSource(&cfg.LogTimestamps, logTimestamps, sources, "log_timestamps", SourceFlag)
		case "log-caller":
			setSource(&cfg.LogCaller, logCaller, sources, "log_caller", SourceFlag)
		}
	})

	return nil
}
