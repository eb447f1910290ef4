package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/surmado/surmado-go/internal/adapters/driving/tui"
)

// tuiCmd represents the dashboard command.
var tuiCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"tui"},
	Short:   "Browse and track reports interactively",
	Long: `Launch the interactive terminal dashboard.

The dashboard lists reports submitted from this machine, shows their status
and download links, and can wait on a report with live progress.

Controls:
  ↑/k, ↓/j - Navigate reports
  Enter    - Open report
  w        - Wait for report
  r        - Refresh
  Esc      - Back
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	reports, err := getReports()
	if err != nil {
		return err
	}

	var wf waitFlags
	app, err := tui.NewApp(&tui.Ports{Reports: reports, Wait: wf.options()})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
