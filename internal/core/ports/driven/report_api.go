package driven

import (
	"context"

	"github.com/surmado/surmado-go/internal/core/domain"
)

// ReportAPI is the remote report service.
// Implementations perform exactly one HTTP attempt per call and map
// non-2xx responses to *domain.Error.
type ReportAPI interface {
	// Submit sends a validated submission and returns the accepted handle.
	Submit(ctx context.Context, sub domain.Submission, opts domain.CallOptions) (*domain.ReportHandle, error)

	// GetReport fetches the current status of a report.
	GetReport(ctx context.Context, reportID string, opts domain.CallOptions) (*domain.Report, error)

	// ListReports fetches one page of the organisation's reports.
	ListReports(ctx context.Context, page, pageSize int, opts domain.CallOptions) (*domain.ReportList, error)
}
