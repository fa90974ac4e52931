package cmd

import (
	"context"
	"fmt"

	"github.com/nibzard/todoboard/internal/ui"
)

// tuiCommand launches the terminal dashboard over the data file.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	positional, err := parseArgs(a.newFlagSet("tui"), args)
	if err != nil {
		return err
	}
	if len(positional) != 0 {
		return fmt.Errorf("unexpected arguments: %v", positional)
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}
	return ui.RunTUI(ctx, s, a.cfg.Config.DataFile,
		ui.WithLogger(a.logger),
		ui.WithClock(clock),
		ui.WithStoreOptions(a.cfg.Config.StoreOptions()...),
	)
}
