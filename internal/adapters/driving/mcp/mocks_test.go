package mcp

import (
	"context"

	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
)

var _ driving.ReportService = (*mockReportService)(nil)

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	handle  *domain.ReportHandle
	report  *domain.Report
	list    *domain.ReportList
	history []domain.LedgerEntry
	token   string
	err     error

	submitted    []domain.Submission
	historyLimit int
	tokenFor     string
}

func (m *mockReportService) submit(sub domain.Submission) (*domain.ReportHandle, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	m.submitted = append(m.submitted, sub)
	return m.handle, m.err
}

func (m *mockReportService) Signal(
	_ context.Context, req domain.SignalRequest, _ ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return m.submit(req)
}

func (m *mockReportService) Scan(
	_ context.Context, req domain.ScanRequest, _ ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return m.submit(req)
}

func (m *mockReportService) Solutions(
	_ context.Context, req domain.SolutionsRequest, _ ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return m.submit(req)
}

func (m *mockReportService) SignalRerun(
	_ context.Context, req domain.SignalRerunRequest, _ ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return m.submit(req)
}

func (m *mockReportService) ScanRerun(
	_ context.Context, req domain.ScanRerunRequest, _ ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return m.submit(req)
}

func (m *mockReportService) GetReport(_ context.Context, _ string, _ ...domain.CallOption) (*domain.Report, error) {
	return m.report, m.err
}

func (m *mockReportService) ListReports(_ context.Context, _, _ int, _ ...domain.CallOption) (*domain.ReportList, error) {
	return m.list, m.err
}

func (m *mockReportService) WaitForReport(_ context.Context, _ string, _ domain.WaitOptions) (*domain.Report, error) {
	return m.report, m.err
}

func (m *mockReportService) History(_ context.Context, limit int) ([]domain.LedgerEntry, error) {
	m.historyLimit = limit
	return m.history, m.err
}

func (m *mockReportService) TokenFor(_ context.Context, reportID string) (string, error) {
	m.tokenFor = reportID
	return m.token, m.err
}

func (m *mockReportService) RecordEvent(_ context.Context, _ *domain.WebhookEvent) error {
	return m.err
}
