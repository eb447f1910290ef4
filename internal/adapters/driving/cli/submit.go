package cli

import (
	"github.com/spf13/cobra"

	"github.com/surmado/surmado-go/internal/core/domain"
)

var (
	signalReq  domain.SignalRequest
	signalTier string
	signalWait bool
	signalWF   waitFlags
)

var signalCmd = &cobra.Command{
	Use:   "signal",
	Short: "Order a Signal report (AI visibility test)",
	Long: `Order a Signal report: how ChatGPT, Claude, Gemini and other assistants
describe and recommend your brand against its competitors.

Basic costs 1 credit, pro costs 2.

Example:
  surmado signal --url https://acme.com --brand-name "Acme Corp" \
    --email you@acme.com --industry "B2B SaaS" --location "United States" \
    --persona "CTOs at mid-market companies" --pain-points "Tool sprawl" \
    --brand-details "Developer-first project tracking" \
    --competitors "Asana, Monday.com" --tier pro --wait`,
	Args: cobra.NoArgs,
	RunE: runSignal,
}

var (
	scanReq  domain.ScanRequest
	scanTier string
	scanWait bool
	scanWF   waitFlags
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Order a Scan report (SEO audit)",
	Long: `Order a Scan report: a technical and content SEO audit of a website,
optionally compared against competitor sites.

Basic costs 1 credit, premium costs 2.`,
	Args: cobra.NoArgs,
	RunE: runScan,
}

var (
	solutionsFields     domain.SolutionsFields
	solutionsFromReport string
	solutionsWait       bool
	solutionsWF         waitFlags
)

var solutionsCmd = &cobra.Command{
	Use:   "solutions",
	Short: "Order a Solutions report (strategy)",
	Long: `Order a Solutions strategy report. Costs 2 credits.

The mode is chosen from the flags given:
  - from a Signal report: --signal-token, or --from-report with the id of a
    Signal report submitted from this machine
  - standalone: --business-story, --decision, --success, --timeline and
    --scale-indicator, all required

Mixing a token with any standalone flag is rejected.`,
	Args: cobra.NoArgs,
	RunE: runSolutions,
}

func init() {
	f := signalCmd.Flags()
	f.StringVar(&signalReq.URL, "url", "", "brand website (required)")
	f.StringVar(&signalReq.BrandName, "brand-name", "", "brand name (required)")
	f.StringVar(&signalReq.Email, "email", "", "email that receives the report (required)")
	f.StringVar(&signalReq.Industry, "industry", "", "industry or category (required)")
	f.StringVar(&signalReq.Location, "location", "", "primary market (required)")
	f.StringVar(&signalReq.Persona, "persona", "", "target customer persona (required)")
	f.StringVar(&signalReq.PainPoints, "pain-points", "", "customer pain points (required)")
	f.StringVar(&signalReq.BrandDetails, "brand-details", "", "what makes the brand distinctive (required)")
	f.StringVar(&signalReq.DirectCompetitors, "competitors", "", "comma-separated direct competitors (required)")
	f.StringVar(&signalReq.IndirectCompetitors, "indirect-competitors", "", "comma-separated indirect competitors")
	f.StringVar(&signalReq.Keywords, "keywords", "", "keywords to test")
	f.StringVar(&signalReq.ProductDescription, "product", "", "product or service description")
	f.StringVar(&signalReq.BusinessScale, "business-scale", "", "small, medium or large")
	f.StringVar(&signalTier, "tier", "basic", "basic or pro")
	f.StringVar(&signalReq.WebhookURL, "webhook-url", "", "https URL notified on completion")
	f.BoolVar(&signalWait, "wait", false, "wait for the report to finish")
	signalWF.register(signalCmd)

	f = scanCmd.Flags()
	f.StringVar(&scanReq.URL, "url", "", "website to audit (required)")
	f.StringVar(&scanReq.BrandName, "brand-name", "", "brand name (required)")
	f.StringVar(&scanReq.Email, "email", "", "email that receives the report (required)")
	f.StringSliceVar(&scanReq.CompetitorURLs, "competitor", nil, "competitor website (repeatable)")
	f.StringVar(&scanReq.ReportStyle, "report-style", "", "executive, technical or comprehensive")
	f.StringVar(&scanTier, "tier", "basic", "basic or premium")
	f.StringVar(&scanReq.WebhookURL, "webhook-url", "", "https URL notified on completion")
	f.BoolVar(&scanWait, "wait", false, "wait for the report to finish")
	scanWF.register(scanCmd)

	f = solutionsCmd.Flags()
	f.StringVar(&solutionsFields.Email, "email", "", "email that receives the report (required)")
	f.StringVar(&solutionsFields.SignalToken, "signal-token", "", "token of a completed Signal report")
	f.StringVar(&solutionsFromReport, "from-report", "", "use the token of this recorded Signal report")
	f.StringVar(&solutionsFields.ScanToken, "scan-token", "", "token of a completed Scan report")
	f.StringVar(&solutionsFields.BrandName, "brand-name", "", "brand name")
	f.StringVar(&solutionsFields.BusinessStory, "business-story", "", "standalone: the business context")
	f.StringVar(&solutionsFields.Decision, "decision", "", "standalone: the decision being weighed")
	f.StringVar(&solutionsFields.Success, "success", "", "standalone: what success looks like")
	f.StringVar(&solutionsFields.Timeline, "timeline", "", "standalone: decision timeline")
	f.StringVar(&solutionsFields.ScaleIndicator, "scale-indicator", "", "standalone: revenue or headcount")
	f.BoolVar(&solutionsFields.IncludeFinancial, "include-financial", false, "add the financial analysis section")
	f.StringVar(&solutionsFields.FinancialContext, "financial-context", "", "financial background")
	f.StringVar(&solutionsFields.MonthlyRevenue, "monthly-revenue", "", "monthly revenue")
	f.StringVar(&solutionsFields.MonthlyCosts, "monthly-costs", "", "monthly costs")
	f.StringVar(&solutionsFields.CashAvailable, "cash-available", "", "cash available")
	f.StringVar(&solutionsFields.WebhookURL, "webhook-url", "", "https URL notified on completion")
	f.BoolVar(&solutionsWait, "wait", false, "wait for the report to finish")
	solutionsWF.register(solutionsCmd)

	rootCmd.AddCommand(signalCmd, scanCmd, solutionsCmd)
}

func runSignal(cmd *cobra.Command, _ []string) error {
	reports, err := getReports()
	if err != nil {
		return err
	}

	req := signalReq
	req.TierLevel = domain.Tier(signalTier)

	handle, err := reports.Signal(cmd.Context(), req, callOptions()...)
	if err != nil {
		return err
	}
	return finishSubmit(cmd, handle, signalWait, &signalWF)
}

func runScan(cmd *cobra.Command, _ []string) error {
	reports, err := getReports()
	if err != nil {
		return err
	}

	req := scanReq
	req.TierLevel = domain.Tier(scanTier)

	handle, err := reports.Scan(cmd.Context(), req, callOptions()...)
	if err != nil {
		return err
	}
	return finishSubmit(cmd, handle, scanWait, &scanWF)
}

func runSolutions(cmd *cobra.Command, _ []string) error {
	reports, err := getReports()
	if err != nil {
		return err
	}

	fields := solutionsFields
	if solutionsFromReport != "" {
		if fields.SignalToken != "" {
			return domain.NewValidationError("from_report", "use either --signal-token or --from-report, not both")
		}
		token, err := reports.TokenFor(cmd.Context(), solutionsFromReport)
		if err != nil {
			return err
		}
		fields.SignalToken = token
	}

	req, err := domain.NewSolutionsRequest(fields)
	if err != nil {
		return err
	}

	handle, err := reports.Solutions(cmd.Context(), req, callOptions()...)
	if err != nil {
		return err
	}
	return finishSubmit(cmd, handle, solutionsWait, &solutionsWF)
}

func finishSubmit(cmd *cobra.Command, handle *domain.ReportHandle, wait bool, flags *waitFlags) error {
	if !wait {
		return printHandle(cmd, handle)
	}

	reports, err := getReports()
	if err != nil {
		return err
	}
	if !jsonOutput {
		cmd.Printf("Submitted %s report %s (%d credits). Waiting...\n", handle.Product, handle.ReportID, handle.CreditsUsed)
	}
	return waitAndPrint(cmd, reports, handle.ReportID, flags)
}
