package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/surmado/surmado-go/internal/core/domain"
)

// defaultHistoryLimit caps report_history when no limit is given.
const defaultHistoryLimit = 20

// SignalInput is the input schema for the submit_signal tool.
type SignalInput struct {
	URL                 string `json:"url" jsonschema:"website URL of the brand"`
	BrandName           string `json:"brand_name" jsonschema:"brand name (max 100 characters)"`
	Email               string `json:"email" jsonschema:"email that receives the report"`
	Industry            string `json:"industry" jsonschema:"industry or category"`
	Location            string `json:"location" jsonschema:"primary market"`
	Persona             string `json:"persona" jsonschema:"target customer persona"`
	PainPoints          string `json:"pain_points" jsonschema:"customer pain points"`
	BrandDetails        string `json:"brand_details" jsonschema:"what makes the brand distinctive"`
	DirectCompetitors   string `json:"direct_competitors" jsonschema:"comma-separated direct competitors"`
	IndirectCompetitors string `json:"indirect_competitors,omitempty" jsonschema:"comma-separated indirect competitors"`
	Keywords            string `json:"keywords,omitempty" jsonschema:"keywords to test"`
	Product             string `json:"product,omitempty" jsonschema:"product or service description"`
	BusinessScale       string `json:"business_scale,omitempty" jsonschema:"small, medium or large"`
	Tier                string `json:"tier,omitempty" jsonschema:"basic (1 credit) or pro (2 credits)"`
	WebhookURL          string `json:"webhook_url,omitempty" jsonschema:"HTTPS URL notified on completion"`
}

// ScanInput is the input schema for the submit_scan tool.
type ScanInput struct {
	URL            string   `json:"url" jsonschema:"website URL to audit"`
	BrandName      string   `json:"brand_name" jsonschema:"brand name"`
	Email          string   `json:"email" jsonschema:"email that receives the report"`
	Tier           string   `json:"tier,omitempty" jsonschema:"basic (1 credit) or premium (2 credits)"`
	CompetitorURLs []string `json:"competitor_urls,omitempty" jsonschema:"competitor websites to compare against"`
	ReportStyle    string   `json:"report_style,omitempty" jsonschema:"executive, technical or comprehensive"`
	WebhookURL     string   `json:"webhook_url,omitempty" jsonschema:"HTTPS URL notified on completion"`
}

// SolutionsInput is the input schema for the submit_solutions tool.
type SolutionsInput struct {
	Email string `json:"email" jsonschema:"email that receives the report"`

	SignalToken string `json:"signal_token,omitempty" jsonschema:"token of a completed Signal report"`
	FromReport  string `json:"from_report,omitempty" jsonschema:"report id whose token is used as signal_token"`
	ScanToken   string `json:"scan_token,omitempty" jsonschema:"token of a completed Scan report"`
	BrandName   string `json:"brand_name,omitempty" jsonschema:"brand name"`

	BusinessStory  string `json:"business_story,omitempty" jsonschema:"standalone mode: the business context"`
	Decision       string `json:"decision,omitempty" jsonschema:"standalone mode: the decision being weighed"`
	Success        string `json:"success,omitempty" jsonschema:"standalone mode: what success looks like"`
	Timeline       string `json:"timeline,omitempty" jsonschema:"standalone mode: decision timeline"`
	ScaleIndicator string `json:"scale_indicator,omitempty" jsonschema:"standalone mode: revenue or headcount"`

	IncludeFinancial bool   `json:"include_financial,omitempty" jsonschema:"add the financial analysis section"`
	FinancialContext string `json:"financial_context,omitempty" jsonschema:"financial background"`
	MonthlyRevenue   string `json:"monthly_revenue,omitempty" jsonschema:"monthly revenue"`
	MonthlyCosts     string `json:"monthly_costs,omitempty" jsonschema:"monthly costs"`
	CashAvailable    string `json:"cash_available,omitempty" jsonschema:"cash available"`

	WebhookURL string `json:"webhook_url,omitempty" jsonschema:"HTTPS URL notified on completion"`
}

// RerunSignalInput is the input schema for the rerun_signal tool.
type RerunSignalInput struct {
	BrandSlug   string `json:"brand_slug" jsonschema:"brand slug from a previous report"`
	PersonaSlug string `json:"persona_slug,omitempty" jsonschema:"persona slug from a previous report"`
	Email       string `json:"email" jsonschema:"email that receives the report"`
	Tier        string `json:"tier,omitempty" jsonschema:"basic or pro"`
	WebhookURL  string `json:"webhook_url,omitempty" jsonschema:"HTTPS URL notified on completion"`
}

// RerunScanInput is the input schema for the rerun_scan tool.
type RerunScanInput struct {
	BrandSlug  string `json:"brand_slug" jsonschema:"brand slug from a previous report"`
	Email      string `json:"email" jsonschema:"email that receives the report"`
	Tier       string `json:"tier,omitempty" jsonschema:"basic or premium"`
	WebhookURL string `json:"webhook_url,omitempty" jsonschema:"HTTPS URL notified on completion"`
}

// HandleOutput is returned by every submission tool.
type HandleOutput struct {
	ReportID    string `json:"report_id"`
	Token       string `json:"token,omitempty"`
	Product     string `json:"product"`
	Status      string `json:"status"`
	BrandSlug   string `json:"brand_slug,omitempty"`
	CreditsUsed int    `json:"credits_used"`
}

// GetReportInput is the input schema for the get_report tool.
type GetReportInput struct {
	ReportID string `json:"report_id" jsonschema:"report id returned at submission"`
}

// ReportOutput is a report's status and, once completed, its downloads.
type ReportOutput struct {
	ReportID                string         `json:"report_id"`
	Product                 string         `json:"product"`
	Status                  string         `json:"status"`
	Token                   string         `json:"token,omitempty"`
	DownloadURL             string         `json:"download_url,omitempty"`
	PPTXDownloadURL         string         `json:"pptx_download_url,omitempty"`
	IntelligenceDownloadURL string         `json:"intelligence_download_url,omitempty"`
	DownloadsExpireAt       string         `json:"downloads_expire_at,omitempty"`
	FailureReason           string         `json:"failure_reason,omitempty"`
	Summary                 map[string]any `json:"summary,omitempty"`
}

// ListReportsInput is the input schema for the list_reports tool.
type ListReportsInput struct {
	Page     int `json:"page,omitempty" jsonschema:"page number starting at 1"`
	PageSize int `json:"page_size,omitempty" jsonschema:"reports per page (default 50, max 100)"`
}

// ListReportsOutput is one page of reports.
type ListReportsOutput struct {
	Reports []ReportOutput `json:"reports"`
	Page    int            `json:"page"`
	Total   int            `json:"total"`
	HasMore bool           `json:"has_more"`
}

// HistoryInput is the input schema for the report_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum entries to return (default 20)"`
}

// HistoryOutput lists locally recorded submissions.
type HistoryOutput struct {
	Entries []HistoryEntry `json:"entries"`
	Count   int            `json:"count"`
}

// HistoryEntry is one recorded submission.
type HistoryEntry struct {
	ReportID   string `json:"report_id"`
	Product    string `json:"product"`
	Tier       string `json:"tier"`
	BrandName  string `json:"brand_name,omitempty"`
	BrandSlug  string `json:"brand_slug,omitempty"`
	LastStatus string `json:"last_status"`
	CreatedAt  string `json:"created_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "submit_signal",
		Description: "Order a Signal report: how AI assistants see and recommend a brand",
	}, s.handleSubmitSignal)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "submit_scan",
		Description: "Order a Scan report: an SEO audit of a website",
	}, s.handleSubmitScan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "submit_solutions",
		Description: "Order a Solutions strategy report, either from a Signal token " +
			"or from the standalone business fields",
	}, s.handleSubmitSolutions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rerun_signal",
		Description: "Rerun Signal for a brand already analysed",
	}, s.handleRerunSignal)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rerun_scan",
		Description: "Rerun Scan for a brand already analysed",
	}, s.handleRerunScan)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_report",
		Description: "Get a report's status and, when completed, its download links",
	}, s.handleGetReport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_reports",
		Description: "List the organisation's reports",
	}, s.handleListReports)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "report_history",
		Description: "List reports submitted from this machine, newest first",
	}, s.handleHistory)
}

func (s *Server) handleSubmitSignal(
	ctx context.Context, _ *mcp.CallToolRequest, in SignalInput,
) (*mcp.CallToolResult, HandleOutput, error) {
	handle, err := s.reports().Signal(ctx, domain.SignalRequest{
		URL:                 in.URL,
		BrandName:           in.BrandName,
		Email:               in.Email,
		Industry:            in.Industry,
		Location:            in.Location,
		Persona:             in.Persona,
		PainPoints:          in.PainPoints,
		BrandDetails:        in.BrandDetails,
		DirectCompetitors:   in.DirectCompetitors,
		IndirectCompetitors: in.IndirectCompetitors,
		Keywords:            in.Keywords,
		ProductDescription:  in.Product,
		BusinessScale:       in.BusinessScale,
		TierLevel:           domain.Tier(in.Tier),
		WebhookURL:          in.WebhookURL,
	})
	return handleResult(handle, err)
}

func (s *Server) handleSubmitScan(
	ctx context.Context, _ *mcp.CallToolRequest, in ScanInput,
) (*mcp.CallToolResult, HandleOutput, error) {
	handle, err := s.reports().Scan(ctx, domain.ScanRequest{
		URL:            in.URL,
		BrandName:      in.BrandName,
		Email:          in.Email,
		TierLevel:      domain.Tier(in.Tier),
		CompetitorURLs: in.CompetitorURLs,
		ReportStyle:    in.ReportStyle,
		WebhookURL:     in.WebhookURL,
	})
	return handleResult(handle, err)
}

func (s *Server) handleSubmitSolutions(
	ctx context.Context, _ *mcp.CallToolRequest, in SolutionsInput,
) (*mcp.CallToolResult, HandleOutput, error) {
	reports := s.reports()

	token := in.SignalToken
	if in.FromReport != "" && token == "" {
		var err error
		if token, err = reports.TokenFor(ctx, in.FromReport); err != nil {
			return nil, HandleOutput{}, err
		}
	}

	req, err := domain.NewSolutionsRequest(domain.SolutionsFields{
		Email:            in.Email,
		SignalToken:      token,
		ScanToken:        in.ScanToken,
		BrandName:        in.BrandName,
		BusinessStory:    in.BusinessStory,
		Decision:         in.Decision,
		Success:          in.Success,
		Timeline:         in.Timeline,
		ScaleIndicator:   in.ScaleIndicator,
		IncludeFinancial: in.IncludeFinancial,
		FinancialContext: in.FinancialContext,
		MonthlyRevenue:   in.MonthlyRevenue,
		MonthlyCosts:     in.MonthlyCosts,
		CashAvailable:    in.CashAvailable,
		WebhookURL:       in.WebhookURL,
	})
	if err != nil {
		return nil, HandleOutput{}, err
	}

	handle, err := reports.Solutions(ctx, req)
	return handleResult(handle, err)
}

func (s *Server) handleRerunSignal(
	ctx context.Context, _ *mcp.CallToolRequest, in RerunSignalInput,
) (*mcp.CallToolResult, HandleOutput, error) {
	handle, err := s.reports().SignalRerun(ctx, domain.SignalRerunRequest{
		BrandSlug:   in.BrandSlug,
		PersonaSlug: in.PersonaSlug,
		Email:       in.Email,
		TierLevel:   domain.Tier(in.Tier),
		WebhookURL:  in.WebhookURL,
	})
	return handleResult(handle, err)
}

func (s *Server) handleRerunScan(
	ctx context.Context, _ *mcp.CallToolRequest, in RerunScanInput,
) (*mcp.CallToolResult, HandleOutput, error) {
	handle, err := s.reports().ScanRerun(ctx, domain.ScanRerunRequest{
		BrandSlug:  in.BrandSlug,
		Email:      in.Email,
		TierLevel:  domain.Tier(in.Tier),
		WebhookURL: in.WebhookURL,
	})
	return handleResult(handle, err)
}

func (s *Server) handleGetReport(
	ctx context.Context, _ *mcp.CallToolRequest, in GetReportInput,
) (*mcp.CallToolResult, ReportOutput, error) {
	report, err := s.reports().GetReport(ctx, in.ReportID)
	if err != nil {
		return nil, ReportOutput{}, err
	}
	return nil, toReportOutput(report), nil
}

func (s *Server) handleListReports(
	ctx context.Context, _ *mcp.CallToolRequest, in ListReportsInput,
) (*mcp.CallToolResult, ListReportsOutput, error) {
	list, err := s.reports().ListReports(ctx, in.Page, in.PageSize)
	if err != nil {
		return nil, ListReportsOutput{}, err
	}

	out := ListReportsOutput{
		Reports: make([]ReportOutput, len(list.Reports)),
		Page:    list.Page,
		Total:   list.Total,
		HasMore: list.HasMore(),
	}
	for i := range list.Reports {
		out.Reports[i] = toReportOutput(&list.Reports[i])
	}
	return nil, out, nil
}

func (s *Server) handleHistory(
	ctx context.Context, _ *mcp.CallToolRequest, in HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	entries, err := s.reports().History(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	out := HistoryOutput{
		Entries: make([]HistoryEntry, len(entries)),
		Count:   len(entries),
	}
	for i, e := range entries {
		out.Entries[i] = HistoryEntry{
			ReportID:   e.ReportID,
			Product:    string(e.Product),
			Tier:       string(e.Tier),
			BrandName:  e.BrandName,
			BrandSlug:  e.BrandSlug,
			LastStatus: string(e.LastStatus),
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
		}
	}
	return nil, out, nil
}

func handleResult(handle *domain.ReportHandle, err error) (*mcp.CallToolResult, HandleOutput, error) {
	if err != nil {
		return nil, HandleOutput{}, err
	}
	return nil, HandleOutput{
		ReportID:    handle.ReportID,
		Token:       handle.Token,
		Product:     string(handle.Product),
		Status:      string(handle.Status),
		BrandSlug:   handle.BrandSlug,
		CreditsUsed: handle.CreditsUsed,
	}, nil
}

func toReportOutput(r *domain.Report) ReportOutput {
	out := ReportOutput{
		ReportID:                r.ReportID,
		Product:                 string(r.Product),
		Status:                  string(r.Status),
		Token:                   r.Token,
		DownloadURL:             r.DownloadURL,
		PPTXDownloadURL:         r.PPTXDownloadURL,
		IntelligenceDownloadURL: r.IntelligenceDownloadURL,
		Summary:                 r.Summary,
	}
	if r.DownloadURL != "" && !r.FetchedAt.IsZero() {
		out.DownloadsExpireAt = r.DownloadsExpireAt().Format(time.RFC3339)
	}
	if r.Status == domain.StatusFailed || r.Status == domain.StatusCancelled {
		out.FailureReason = r.Reason()
	}
	return out
}
