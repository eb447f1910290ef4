package tui

import (
	"context"

	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
)

var _ driving.ReportService = (*MockReportService)(nil)

// MockReportService is a mock implementation of driving.ReportService.
type MockReportService struct {
	Entries  []domain.LedgerEntry
	Report   *domain.Report
	Err      error
	WaitFunc func(ctx context.Context, reportID string, opts domain.WaitOptions) (*domain.Report, error)
}

func (m *MockReportService) Signal(context.Context, domain.SignalRequest, ...domain.CallOption) (*domain.ReportHandle, error) {
	return nil, m.Err
}

func (m *MockReportService) Scan(context.Context, domain.ScanRequest, ...domain.CallOption) (*domain.ReportHandle, error) {
	return nil, m.Err
}

func (m *MockReportService) Solutions(context.Context, domain.SolutionsRequest, ...domain.CallOption) (*domain.ReportHandle, error) {
	return nil, m.Err
}

func (m *MockReportService) SignalRerun(context.Context, domain.SignalRerunRequest, ...domain.CallOption) (*domain.ReportHandle, error) {
	return nil, m.Err
}

func (m *MockReportService) ScanRerun(context.Context, domain.ScanRerunRequest, ...domain.CallOption) (*domain.ReportHandle, error) {
	return nil, m.Err
}

func (m *MockReportService) GetReport(context.Context, string, ...domain.CallOption) (*domain.Report, error) {
	return m.Report, m.Err
}

func (m *MockReportService) ListReports(context.Context, int, int, ...domain.CallOption) (*domain.ReportList, error) {
	return nil, m.Err
}

func (m *MockReportService) WaitForReport(
	ctx context.Context, reportID string, opts domain.WaitOptions,
) (*domain.Report, error) {
	if m.WaitFunc != nil {
		return m.WaitFunc(ctx, reportID, opts)
	}
	return m.Report, m.Err
}

func (m *MockReportService) History(context.Context, int) ([]domain.LedgerEntry, error) {
	return m.Entries, m.Err
}

func (m *MockReportService) TokenFor(context.Context, string) (string, error) {
	return "", m.Err
}

func (m *MockReportService) RecordEvent(context.Context, *domain.WebhookEvent) error {
	return m.Err
}
