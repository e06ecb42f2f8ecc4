package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zyphh/mindly/internal/ui"
)

// tuiCmd launches the Bubble Tea journal. Running mindly with no
// subcommand does the same thing.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the journal TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return launchTUI()
	},
}

func launchTUI() error {
	cfg, sess, client, err := backend()
	if err != nil {
		return err
	}
	return ui.Run(cfg, client, sess)
}
