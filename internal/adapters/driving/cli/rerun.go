package cli

import (
	"github.com/spf13/cobra"

	"github.com/surmado/surmado-go/internal/core/domain"
)

var rerunCmd = &cobra.Command{
	Use:   "rerun",
	Short: "Rerun a report from stored brand configuration",
	Long: `Rerun Signal or Scan for a brand already analysed, reusing the stored
brand and persona configuration. The brand slug is printed on submission
and listed by 'surmado history'.`,
}

var (
	rerunSignalReq  domain.SignalRerunRequest
	rerunSignalTier string
	rerunSignalWait bool
	rerunSignalWF   waitFlags
)

var rerunSignalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Rerun Signal for a brand",
	Args:  cobra.NoArgs,
	RunE:  runRerunSignal,
}

var (
	rerunScanReq  domain.ScanRerunRequest
	rerunScanTier string
	rerunScanWait bool
	rerunScanWF   waitFlags
)

var rerunScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Rerun Scan for a brand",
	Args:  cobra.NoArgs,
	RunE:  runRerunScan,
}

func init() {
	f := rerunSignalCmd.Flags()
	f.StringVar(&rerunSignalReq.BrandSlug, "brand-slug", "", "brand slug from a previous report (required)")
	f.StringVar(&rerunSignalReq.PersonaSlug, "persona-slug", "", "persona slug from a previous report")
	f.StringVar(&rerunSignalReq.Email, "email", "", "email that receives the report (required)")
	f.StringVar(&rerunSignalTier, "tier", "basic", "basic or pro")
	f.StringVar(&rerunSignalReq.WebhookURL, "webhook-url", "", "https URL notified on completion")
	f.BoolVar(&rerunSignalWait, "wait", false, "wait for the report to finish")
	rerunSignalWF.register(rerunSignalCmd)

	f = rerunScanCmd.Flags()
	f.StringVar(&rerunScanReq.BrandSlug, "brand-slug", "", "brand slug from a previous report (required)")
	f.StringVar(&rerunScanReq.Email, "email", "", "email that receives the report (required)")
	f.StringVar(&rerunScanTier, "tier", "basic", "basic or premium")
	f.StringVar(&rerunScanReq.WebhookURL, "webhook-url", "", "https URL notified on completion")
	f.BoolVar(&rerunScanWait, "wait", false, "wait for the report to finish")
	rerunScanWF.register(rerunScanCmd)

	rerunCmd.AddCommand(rerunSignalCmd, rerunScanCmd)
	rootCmd.AddCommand(rerunCmd)
}

func runRerunSignal(cmd *cobra.Command, _ []string) error {
	reports, err := getReports()
	if err != nil {
		return err
	}

	req := rerunSignalReq
	req.TierLevel = domain.Tier(rerunSignalTier)

	handle, err := reports.SignalRerun(cmd.Context(), req, callOptions()...)
	if err != nil {
		return err
	}
	return finishSubmit(cmd, handle, rerunSignalWait, &rerunSignalWF)
}

func runRerunScan(cmd *cobra.Command, _ []string) error {
	reports, err := getReports()
	if err != nil {
		return err
	}

	req := rerunScanReq
	req.TierLevel = domain.Tier(rerunScanTier)

	handle, err := reports.ScanRerun(cmd.Context(), req, callOptions()...)
	if err != nil {
		return err
	}
	return finishSubmit(cmd, handle, rerunScanWait, &rerunScanWF)
}
