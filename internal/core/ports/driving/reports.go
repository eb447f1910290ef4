package driving

import (
	"context"

	"github.com/surmado/surmado-go/internal/core/domain"
)

// ReportService submits reports and tracks them to completion.
// Every submission is validated locally before any network call.
type ReportService interface {
	// Signal orders an AI visibility test.
	Signal(ctx context.Context, req domain.SignalRequest, opts ...domain.CallOption) (*domain.ReportHandle, error)

	// Scan orders an SEO audit.
	Scan(ctx context.Context, req domain.ScanRequest, opts ...domain.CallOption) (*domain.ReportHandle, error)

	// Solutions orders a strategic advisory report.
	Solutions(ctx context.Context, req domain.SolutionsRequest, opts ...domain.CallOption) (*domain.ReportHandle, error)

	// SignalRerun reruns Signal from stored brand and persona configuration.
	SignalRerun(ctx context.Context, req domain.SignalRerunRequest, opts ...domain.CallOption) (*domain.ReportHandle, error)

	// ScanRerun reruns Scan from stored brand configuration.
	ScanRerun(ctx context.Context, req domain.ScanRerunRequest, opts ...domain.CallOption) (*domain.ReportHandle, error)

	// GetReport fetches the current status of a report.
	GetReport(ctx context.Context, reportID string, opts ...domain.CallOption) (*domain.Report, error)

	// ListReports fetches one page of the organisation's reports.
	ListReports(ctx context.Context, page, pageSize int, opts ...domain.CallOption) (*domain.ReportList, error)

	// WaitForReport polls until the report completes, fails, or the wait
	// budget runs out.
	WaitForReport(ctx context.Context, reportID string, opts domain.WaitOptions) (*domain.Report, error)

	// History lists locally recorded submissions, newest first.
	History(ctx context.Context, limit int) ([]domain.LedgerEntry, error)

	// RecordEvent applies a webhook notification to the local history.
	RecordEvent(ctx context.Context, event *domain.WebhookEvent) error

	// TokenFor returns the chaining token of a recorded report.
	TokenFor(ctx context.Context, reportID string) (string, error)
}
