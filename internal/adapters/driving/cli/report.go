package cli

import (
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect submitted reports",
}

var reportGetCmd = &cobra.Command{
	Use:   "get <report-id>",
	Short: "Show a report's status and download links",
	Long: `Fetch the current status of a report. Download links are valid for
15 minutes; run get again for fresh ones.`,
	Args: cobra.ExactArgs(1),
	RunE: runReportGet,
}

var (
	listPage     int
	listPageSize int
)

var reportListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the organisation's reports",
	Args:  cobra.NoArgs,
	RunE:  runReportList,
}

var reportWaitWF waitFlags

var reportWaitCmd = &cobra.Command{
	Use:   "wait <report-id>",
	Short: "Wait for a report to finish",
	Long: `Poll a report until it completes or fails.

Reports usually take 5 to 15 minutes. Exits non-zero if the report fails
or the wait times out; a timeout does not cancel the report.`,
	Args: cobra.ExactArgs(1),
	RunE: runReportWait,
}

func init() {
	reportListCmd.Flags().IntVar(&listPage, "page", 1, "page number")
	reportListCmd.Flags().IntVar(&listPageSize, "page-size", 50, "reports per page (max 100)")
	reportWaitWF.register(reportWaitCmd)

	reportCmd.AddCommand(reportGetCmd, reportListCmd, reportWaitCmd)
	rootCmd.AddCommand(reportCmd)
}

func runReportGet(cmd *cobra.Command, args []string) error {
	reports, err := getReports()
	if err != nil {
		return err
	}

	report, err := reports.GetReport(cmd.Context(), args[0], callOptions()...)
	if err != nil {
		return err
	}
	return printReport(cmd, report)
}

func runReportList(cmd *cobra.Command, _ []string) error {
	reports, err := getReports()
	if err != nil {
		return err
	}

	list, err := reports.ListReports(cmd.Context(), listPage, listPageSize, callOptions()...)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(cmd, list)
	}

	if len(list.Reports) == 0 {
		cmd.Println("No reports found.")
		return nil
	}

	cmd.Printf("%-24s %-10s %-8s %-12s %s\n", "REPORT", "PRODUCT", "TIER", "STATUS", "CREATED")
	for i := range list.Reports {
		r := &list.Reports[i]
		cmd.Printf("%-24s %-10s %-8s %-12s %s\n", r.ReportID, r.Product, r.Tier, r.Status, r.CreatedAt)
	}
	cmd.Printf("\nPage %d, %d of %d reports\n", list.Page, len(list.Reports), list.Total)
	if list.HasMore() {
		cmd.Printf("Next page: surmado report list --page %d\n", list.Page+1)
	}
	return nil
}

func runReportWait(cmd *cobra.Command, args []string) error {
	reports, err := getReports()
	if err != nil {
		return err
	}
	return waitAndPrint(cmd, reports, args[0], &reportWaitWF)
}
