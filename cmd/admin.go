package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/nibzard/todoboard/internal/config"
	"github.com/nibzard/todoboard/internal/datadir"
	"github.com/nibzard/todoboard/internal/report"
	"github.com/nibzard/todoboard/internal/store"
)

// doctorCommand checks the configuration and the data file.
func (a *app) doctorCommand(args []string) error {
	fs := a.newFlagSet("doctor")
	verbose := fs.Bool("v", false, "Verbose output")

	remaining, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	cfg := a.cfg.Config
	dataPath := cfg.DataFile
	if len(remaining) == 1 {
		dataPath = remaining[0]
		if !filepath.IsAbs(dataPath) {
			dataPath = filepath.Join(cfg.ProjectRoot, dataPath)
		}
	}
	w := a.stdout

	fmt.Fprintln(w, "todoboard doctor")
	fmt.Fprintln(w, "================")
	fmt.Fprintln(w)

	allOK := true

	// Check project root
	fmt.Fprintf(w, "Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	// Check config
	fmt.Fprintln(w, "Config:")
	if file := a.cfg.GetConfigFile(); file != "" {
		fmt.Fprintf(w, "  ✅ File: %s\n", file)
	} else {
		fmt.Fprintln(w, "  ✅ File: none (using defaults)")
	}
	fmt.Fprintf(w, "  ✅ Log level: %s\n", cfg.LogLevel)
	fmt.Fprintf(w, "  ✅ Log format: %s\n", cfg.LogFormat)
	categories := cfg.CategoryList()
	fmt.Fprintf(w, "  ✅ Categories: %d\n", len(categories))
	templates := cfg.StoreTemplates()
	fmt.Fprintf(w, "  ✅ Templates: %d\n", len(templates))
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c] = true
	}
	for _, tpl := range templates {
		if !known[tpl.Category] {
			fmt.Fprintf(w, "  ⚠️  Template %s uses category %q which is not in the category list\n", tpl.Name, tpl.Category)
		}
	}
	fmt.Fprintln(w)

	// Check data file
	fmt.Fprintf(w, "Data file: %s\n", dataPath)
	info, err := os.Stat(dataPath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		fmt.Fprintln(w, "  ⚠️  Not found (created on the first change)")
	case err != nil:
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		allOK = false
	default:
		if !a.checkDataFile(dataPath, *verbose) {
			allOK = false
		}
	}
	fmt.Fprintln(w)

	// Check schema file
	schemaPath := datadir.SchemaPathFor(dataPath)
	fmt.Fprintf(w, "Schema file: %s\n", schemaPath)
	if data, err := os.ReadFile(schemaPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(w, "  ⚠️  Not found (optional, write it with `todoboard schema -write`)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !bytes.Equal(data, store.Schema()) {
		fmt.Fprintln(w, "  ⚠️  Out of date (rewrite it with `todoboard schema -write`)")
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	fmt.Fprintln(w)

	// Overall status
	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. todoboard may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// checkDataFile validates an existing data file and reports the result.
func (a *app) checkDataFile(path string, verbose bool) bool {
	w := a.stdout
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	fmt.Fprintln(w, "  ✅ OK")

	result := store.Validate(data)
	if !result.Valid {
		fmt.Fprintln(w, "  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}
	fmt.Fprintln(w, "  ✅ Valid")

	if verbose {
		s, err := store.Load(path, a.cfg.Config.StoreOptions()...)
		if err != nil {
			fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
			return false
		}
		now := clock()
		st := s.Stats(now)
		fmt.Fprintf(w, "  Tasks: %d (%d pending, %d completed, %d overdue)\n", st.Total, st.Pending, st.Completed, st.Overdue)
		for _, it := range s.Items() {
			fmt.Fprintf(w, "    - %s [%s] %s\n", report.StatusIcon(it, now), report.ShortID(it.ID), it.Title)
		}
	}
	return true
}

// configCommand prints the effective configuration and where each value
// came from.
func (a *app) configCommand(args []string) error {
	positional, err := parseArgs(a.newFlagSet("config"), args)
	if err != nil {
		return err
	}
	if len(positional) != 0 {
		return fmt.Errorf("unexpected arguments: %v", positional)
	}

	file := a.cfg.GetConfigFile()
	if file == "" {
		file = "(none)"
	}
	fmt.Fprintf(a.stdout, "Config file: %s\n\n", file)

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tVALUE\tSOURCE")
	for _, f := range a.cfg.Fields() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Name, f.Value, f.Source)
	}
	return tw.Flush()
}

// schemaCommand prints the data file JSON Schema or writes it next to the
// data file.
func (a *app) schemaCommand(args []string) error {
	fs := a.newFlagSet("schema")
	write := fs.Bool("write", false, "Write the schema next to the data file")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 0 {
		return fmt.Errorf("unexpected arguments: %v", positional)
	}

	if !*write {
		_, err := a.stdout.Write(store.Schema())
		return err
	}
	path := datadir.SchemaPathFor(a.cfg.Config.DataFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating schema directory: %w", err)
	}
	if err := os.WriteFile(path, store.Schema(), 0o644); err != nil {
		return fmt.Errorf("writing schema: %w", err)
	}
	a.logger.Info("schema written", "path", path)
	fmt.Fprintf(a.stdout, "✅ Wrote %s\n", path)
	return nil
}

// initCommand writes an example project config and an empty data file.
// Existing files are kept unless -force is given.
func (a *app) initCommand(args []string) error {
	fs := a.newFlagSet("init")
	force := fs.Bool("force", false, "Overwrite an existing config file")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 0 {
		return fmt.Errorf("unexpected arguments: %v", positional)
	}
	cfg := a.cfg.Config

	configPath := filepath.Join(cfg.ProjectRoot, datadir.ConfigFile)
	_, statErr := os.Stat(configPath)
	switch {
	case statErr == nil && !*force:
		fmt.Fprintf(a.stdout, "⚠️  %s already exists (use -force to overwrite)\n", configPath)
	case statErr == nil || errors.Is(statErr, os.ErrNotExist):
		if err := os.WriteFile(configPath, []byte(config.ExampleConfig()), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}
		a.logger.Info("config written", "path", configPath)
		fmt.Fprintf(a.stdout, "✅ Wrote %s\n", configPath)
	default:
		return fmt.Errorf("checking config file: %w", statErr)
	}

	if _, err := os.Stat(cfg.DataFile); err == nil {
		fmt.Fprintf(a.stdout, "✅ Data file %s already exists\n", cfg.DataFile)
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking data file: %w", err)
	}
	if err := a.saveStore(store.New(cfg.StoreOptions()...)); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "✅ Created %s\n", cfg.DataFile)
	return nil
}
