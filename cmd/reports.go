package cmd

import (
	"fmt"

	"github.com/nibzard/todoboard/internal/report"
)

// statsCommand prints the store summary.
func (a *app) statsCommand(args []string) error {
	format, err := a.parseFormatOnly("stats", args)
	if err != nil {
		return err
	}
	s, err := a.openStore()
	if err != nil {
		return err
	}
	return report.WriteStats(a.stdout, s.Stats(clock()), format)
}

// insightsCommand prints productivity figures derived from completed tasks.
func (a *app) insightsCommand(args []string) error {
	format, err := a.parseFormatOnly("insights", args)
	if err != nil {
		return err
	}
	s, err := a.openStore()
	if err != nil {
		return err
	}
	return report.WriteInsights(a.stdout, s.Insights(), format)
}

// templatesCommand lists the quick-add templates in effect.
func (a *app) templatesCommand(args []string) error {
	format, err := a.parseFormatOnly("templates", args)
	if err != nil {
		return err
	}
	return report.WriteTemplates(a.stdout, a.cfg.Config.StoreTemplates(), format)
}

// parseFormatOnly parses a command that takes only a -format flag.
func (a *app) parseFormatOnly(name string, args []string) (report.Format, error) {
	fs := a.newFlagSet(name)
	formatName := fs.String("format", "", "Output format (text, json, yaml)")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return "", err
	}
	if len(positional) != 0 {
		return "", fmt.Errorf("unexpected arguments: %v", positional)
	}
	return report.ParseFormat(*formatName)
}
