package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/surmado/surmado-go/internal/adapters/driven/storage/memory"
	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
	"github.com/surmado/surmado-go/internal/core/services"
)

var _ driving.ReportService = (*mockReportService)(nil)

// mockReportService implements driving.ReportService for testing.
type mockReportService struct {
	handle  *domain.ReportHandle
	report  *domain.Report
	list    *domain.ReportList
	history []domain.LedgerEntry
	token   string
	err     error

	submitted    []domain.Submission
	waitedFor    string
	waitOpts     domain.WaitOptions
	callOpts     domain.CallOptions
	historyLimit int
	page         int
	pageSize     int
	tokenFor     string
	events       []*domain.WebhookEvent
}

func newMockReportService() *mockReportService {
	return &mockReportService{
		handle: &domain.ReportHandle{
			ReportID:    "rpt_abc123",
			Token:       "tok_abc",
			Product:     domain.ProductSignal,
			Status:      domain.StatusQueued,
			BrandSlug:   "acme_corp",
			CreditsUsed: 1,
		},
		report: &domain.Report{
			ReportID:    "rpt_abc123",
			Product:     domain.ProductSignal,
			Status:      domain.StatusCompleted,
			Tier:        domain.TierBasic,
			DownloadURL: "https://cdn.surmado.com/r.pdf",
		},
	}
}

func (m *mockReportService) submit(sub domain.Submission, opts []domain.CallOption) (*domain.ReportHandle, error) {
	if err := sub.Validate(); err != nil {
		return nil, err
	}
	m.callOpts = domain.ApplyCallOptions(opts...)
	m.submitted = append(m.submitted, sub)
	return m.handle, m.err
}

func (m *mockReportService) Signal(
	_ context.Context, req domain.SignalRequest, opts ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return m.submit(req, opts)
}

func (m *mockReportService) Scan(
	_ context.Context, req domain.ScanRequest, opts ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return m.submit(req, opts)
}

func (m *mockReportService) Solutions(
	_ context.Context, req domain.SolutionsRequest, opts ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return m.submit(req, opts)
}

func (m *mockReportService) SignalRerun(
	_ context.Context, req domain.SignalRerunRequest, opts ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return m.submit(req, opts)
}

func (m *mockReportService) ScanRerun(
	_ context.Context, req domain.ScanRerunRequest, opts ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return m.submit(req, opts)
}

func (m *mockReportService) GetReport(_ context.Context, _ string, _ ...domain.CallOption) (*domain.Report, error) {
	return m.report, m.err
}

func (m *mockReportService) ListReports(
	_ context.Context, page, pageSize int, _ ...domain.CallOption,
) (*domain.ReportList, error) {
	m.page, m.pageSize = page, pageSize
	return m.list, m.err
}

func (m *mockReportService) WaitForReport(
	_ context.Context, reportID string, opts domain.WaitOptions,
) (*domain.Report, error) {
	m.waitedFor = reportID
	m.waitOpts = opts
	if opts.OnProgress != nil && m.report != nil {
		opts.OnProgress(&domain.Report{ReportID: reportID, Status: domain.StatusProcessing})
	}
	return m.report, m.err
}

func (m *mockReportService) History(_ context.Context, limit int) ([]domain.LedgerEntry, error) {
	m.historyLimit = limit
	return m.history, m.err
}

func (m *mockReportService) RecordEvent(_ context.Context, event *domain.WebhookEvent) error {
	m.events = append(m.events, event)
	return m.err
}

func (m *mockReportService) TokenFor(_ context.Context, reportID string) (string, error) {
	m.tokenFor = reportID
	return m.token, m.err
}

// setupTestServices installs a mock report service and an in-memory settings
// service, returning a cleanup func.
func setupTestServices() (*mockReportService, func()) {
	oldReports, oldSettings, oldWiring, oldEnv := reportService, settingsService, wiring, lookupEnv

	mock := newMockReportService()
	reportService = mock
	settingsService = services.NewSettingsService(memory.NewConfigStore())
	wiring = Wiring{}
	lookupEnv = func(string) (string, bool) { return "", false }

	return mock, func() {
		reportService, settingsService, wiring, lookupEnv = oldReports, oldSettings, oldWiring, oldEnv
	}
}

// execute runs the root command with args and resets every flag afterwards,
// since cobra keeps flag values between executions.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
