package cli

import (
	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List reports submitted from this machine",
	Long: `List reports recorded in the local history, newest first.

The history keeps the token of every submission so Solutions can be chained
from a Signal report with --from-report. Statuses are refreshed whenever a
report is fetched, waited on, or announced by webhook.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	reports, err := getReports()
	if err != nil {
		return err
	}

	entries, err := reports.History(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	return printHistory(cmd, entries)
}
