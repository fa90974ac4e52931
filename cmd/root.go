// Package cmd implements the CLI command structure for todoboard.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todoboard/internal/config"
	"github.com/nibzard/todoboard/internal/logging"
	"github.com/nibzard/todoboard/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// clock is the time source for every command.
var clock = time.Now

// app carries the loaded configuration and I/O for one invocation.
type app struct {
	cfg    *config.ConfigWithSources
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
}

// Run executes the todoboard CLI.
func Run(ctx context.Context, args []string) error {
	return RunWithIO(ctx, args, os.Stdout, os.Stderr)
}

// RunWithIO executes the CLI writing command output to stdout and logs to
// stderr.
func RunWithIO(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todoboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	cfg := cws.Config
	logger, err := logging.FromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	a := &app{cfg: cws, stdout: stdout, stderr: stderr, logger: logger}

	// Determine the subcommand
	// If no args or first arg is a flag, use "ls" as default
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	// Execute the subcommand
	switch subcommand {
	case "add":
		return a.addCommand(remainingArgs)
	case "ls", "list":
		return a.lsCommand(remainingArgs)
	case "search":
		return a.searchCommand(remainingArgs)
	case "done":
		return a.doneCommand(remainingArgs, true)
	case "undo":
		return a.doneCommand(remainingArgs, false)
	case "rm":
		return a.rmCommand(remainingArgs)
	case "clear":
		return a.clearCommand(remainingArgs)
	case "subtask":
		return a.subtaskCommand(remainingArgs)
	case "note":
		return a.noteCommand(remainingArgs)
	case "track":
		return a.trackCommand(remainingArgs)
	case "stats":
		return a.statsCommand(remainingArgs)
	case "insights":
		return a.insightsCommand(remainingArgs)
	case "templates":
		return a.templatesCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "config":
		return a.configCommand(remainingArgs)
	case "schema":
		return a.schemaCommand(remainingArgs)
	case "init":
		return a.initCommand(remainingArgs)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openStore loads the configured data file. A missing file is an empty store.
func (a *app) openStore() (*store.Store, error) {
	path := a.cfg.Config.DataFile
	s, err := store.Open(path, a.cfg.Config.StoreOptions()...)
	if err != nil {
		return nil, fmt.Errorf("loading data file: %w", err)
	}
	a.logger.Debug("loaded", "path", path, "items", s.Len())
	return s, nil
}

// saveStore writes s back to the configured data file.
func (a *app) saveStore(s *store.Store) error {
	path := a.cfg.Config.DataFile
	if err := s.Save(path); err != nil {
		return fmt.Errorf("saving data file: %w", err)
	}
	a.logger.Debug("saved", "path", path, "items", s.Len())
	return nil
}

// newFlagSet returns a subcommand flag set that reports errors on stderr.
func (a *app) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("todoboard "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// parseArgs parses flags that may appear before, between or after
// positional arguments and returns the positionals in order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		// Everything after a "--" terminator is positional.
		if endsWithTerminator(fs, args[:len(args)-len(rest)]) {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// endsWithTerminator reports whether fs consumed a "--" terminator as the
// last of the given parsed arguments. A "--" given as a flag value does not
// count.
func endsWithTerminator(fs *flag.FlagSet, consumed []string) bool {
	for i := 0; i < len(consumed); i++ {
		arg := consumed[i]
		if arg == "--" {
			return true
		}
		name := strings.TrimLeft(arg, "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			continue
		}
		i++ // skip the flag's value
	}
	return false
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "todoboard version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todoboard - A task list with priorities, deadlines and productivity stats")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todoboard [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add <title>                 Add a task")
	fmt.Fprintln(w, "  ls [view]                   List tasks (default command)")
	fmt.Fprintln(w, "  search <query>              Find tasks by title, description or tag")
	fmt.Fprintln(w, "  done <id>                   Mark a task completed")
	fmt.Fprintln(w, "  undo <id>                   Mark a task not completed")
	fmt.Fprintln(w, "  rm <id>                     Remove a task")
	fmt.Fprintln(w, "  clear                       Remove all completed tasks")
	fmt.Fprintln(w, "  subtask add <id> <title>    Add a subtask")
	fmt.Fprintln(w, "  subtask toggle <id> <sub>   Toggle a subtask")
	fmt.Fprintln(w, "  note <id> <text>            Add a note")
	fmt.Fprintln(w, "  track <id> <hours>          Record time spent")
	fmt.Fprintln(w, "  stats                       Show statistics")
	fmt.Fprintln(w, "  insights                    Show productivity insights")
	fmt.Fprintln(w, "  templates                   List quick-add templates")
	fmt.Fprintln(w, "  tui                         Launch terminal dashboard")
	fmt.Fprintln(w, "  doctor                      Check config and data file validity")
	fmt.Fprintln(w, "  config                      Show effective configuration")
	fmt.Fprintln(w, "  schema                      Print the data file JSON Schema")
	fmt.Fprintln(w, "  init                        Write an example config and an empty data file")
	fmt.Fprintln(w, "  version                     Show version information")
	fmt.Fprintln(w, "  help                        Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Task ids may be abbreviated to any unique prefix.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add Options:")
	fmt.Fprintln(w, "  -desc string       Description")
	fmt.Fprintln(w, "  -priority string   High, Medium or Low (default Medium)")
	fmt.Fprintln(w, "  -category string   Category (default General)")
	fmt.Fprintln(w, "  -tags string       Comma-separated tags")
	fmt.Fprintln(w, "  -due string        Deadline: 2006-01-02, 2006-01-02T15:04 or RFC 3339")
	fmt.Fprintln(w, "  -estimate float    Estimated hours")
	fmt.Fprintln(w, "  -template string   Start from a quick-add template")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options:")
	fmt.Fprintln(w, "  -view string       all, pending, completed, overdue, today or week")
	fmt.Fprintln(w, "  -priority string   Only this priority")
	fmt.Fprintln(w, "  -category string   Only this category")
	fmt.Fprintln(w, "  -v                 Show more details")
	fmt.Fprintln(w, "  -format string     text, json or yaml (also for search, stats, insights, templates)")
}
