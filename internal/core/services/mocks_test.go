package services

import (
	"context"
	"sync"

	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driven"
)

// --- Mock implementations ---

// fetchResult is one scripted GetReport outcome.
type fetchResult struct {
	report *domain.Report
	err    error
}

// mockReportAPI implements driven.ReportAPI for testing.
type mockReportAPI struct {
	mu sync.Mutex

	handle    *domain.ReportHandle
	submitErr error

	// fetches are returned in order; the last one repeats.
	fetches []fetchResult

	list    *domain.ReportList
	listErr error

	submitted  []domain.Submission
	submitOpts []domain.CallOptions
	fetchCalls int
	listCalls  int
}

var _ driven.ReportAPI = (*mockReportAPI)(nil)

func (m *mockReportAPI) Submit(
	_ context.Context, sub domain.Submission, opts domain.CallOptions,
) (*domain.ReportHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted = append(m.submitted, sub)
	m.submitOpts = append(m.submitOpts, opts)
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	h := *m.handle
	return &h, nil
}

func (m *mockReportAPI) GetReport(_ context.Context, _ string, _ domain.CallOptions) (*domain.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if len(m.fetches) == 0 {
		return nil, &domain.Error{Kind: domain.KindNotFound, StatusCode: 404}
	}
	idx := m.fetchCalls - 1
	if idx >= len(m.fetches) {
		idx = len(m.fetches) - 1
	}
	res := m.fetches[idx]
	if res.err != nil {
		return nil, res.err
	}
	r := *res.report
	return &r, nil
}

func (m *mockReportAPI) ListReports(_ context.Context, _, _ int, _ domain.CallOptions) (*domain.ReportList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listCalls++
	return m.list, m.listErr
}

func (m *mockReportAPI) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls
}

// statuses scripts one fetch per status for report id.
func statuses(id string, product domain.Product, ss ...domain.Status) []fetchResult {
	out := make([]fetchResult, 0, len(ss))
	for _, st := range ss {
		out = append(out, fetchResult{report: &domain.Report{ReportID: id, Product: product, Status: st}})
	}
	return out
}

// failingLedger implements driven.ReportLedger and fails every call.
type failingLedger struct {
	err error
}

var _ driven.ReportLedger = (*failingLedger)(nil)

func (l *failingLedger) Record(context.Context, domain.LedgerEntry) error { return l.err }

func (l *failingLedger) UpdateStatus(context.Context, string, domain.Status) error { return l.err }

func (l *failingLedger) Get(context.Context, string) (*domain.LedgerEntry, error) {
	return nil, l.err
}

func (l *failingLedger) List(context.Context, int) ([]domain.LedgerEntry, error) { return nil, l.err }
