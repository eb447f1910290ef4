package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driven"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
	"github.com/surmado/surmado-go/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService validates submissions, sends them through the report API
// and keeps the local ledger current.
type ReportService struct {
	api    driven.ReportAPI
	ledger driven.ReportLedger
	now    func() time.Time
}

// NewReportService creates a report service. ledger may be nil, in which
// case nothing is recorded and History is always empty.
func NewReportService(api driven.ReportAPI, ledger driven.ReportLedger) *ReportService {
	return &ReportService{
		api:    api,
		ledger: ledger,
		now:    time.Now,
	}
}

// Signal orders an AI visibility test.
func (s *ReportService) Signal(
	ctx context.Context, req domain.SignalRequest, opts ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return s.submit(ctx, req, opts)
}

// Scan orders an SEO audit.
func (s *ReportService) Scan(
	ctx context.Context, req domain.ScanRequest, opts ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return s.submit(ctx, req, opts)
}

// Solutions orders a strategic advisory report.
func (s *ReportService) Solutions(
	ctx context.Context, req domain.SolutionsRequest, opts ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return s.submit(ctx, req, opts)
}

// SignalRerun reruns Signal from stored configuration.
func (s *ReportService) SignalRerun(
	ctx context.Context, req domain.SignalRerunRequest, opts ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return s.submit(ctx, req, opts)
}

// ScanRerun reruns Scan from stored configuration.
func (s *ReportService) ScanRerun(
	ctx context.Context, req domain.ScanRerunRequest, opts ...domain.CallOption,
) (*domain.ReportHandle, error) {
	return s.submit(ctx, req, opts)
}

// submit validates locally, sends, and records the accepted handle.
func (s *ReportService) submit(
	ctx context.Context, sub domain.Submission, opts []domain.CallOption,
) (*domain.ReportHandle, error) {
	if err := sub.Validate(); err != nil {
		logger.Debug("%s request rejected locally: %v", sub.Product(), err)
		return nil, err
	}

	logger.Debug("Submitting %s (tier=%s, rerun=%t)", sub.Product(), sub.Tier(), sub.IsRerun())

	handle, err := s.api.Submit(ctx, sub, domain.ApplyCallOptions(opts...))
	if err != nil {
		return nil, err
	}

	logger.Info("Accepted %s report %s (status=%s, credits=%d)",
		sub.Product(), handle.ReportID, handle.Status, handle.CreditsUsed)

	if s.ledger != nil {
		if err := s.ledger.Record(ctx, domain.NewLedgerEntry(sub, handle, s.now())); err != nil {
			logger.Warn("failed to record report %s: %v", handle.ReportID, err)
		}
	}

	return handle, nil
}

// GetReport fetches the current status of a report.
func (s *ReportService) GetReport(
	ctx context.Context, reportID string, opts ...domain.CallOption,
) (*domain.Report, error) {
	reportID = strings.TrimSpace(reportID)
	if reportID == "" {
		return nil, domain.FieldRequired("report_id")
	}

	report, err := s.api.GetReport(ctx, reportID, domain.ApplyCallOptions(opts...))
	if err != nil {
		return nil, err
	}

	s.updateStatus(ctx, reportID, report.Status)
	return report, nil
}

// updateStatus mirrors the observed status into the ledger. Reports
// submitted elsewhere are not in the ledger and are skipped.
func (s *ReportService) updateStatus(ctx context.Context, reportID string, status domain.Status) {
	if s.ledger == nil || status == "" {
		return
	}
	err := s.ledger.UpdateStatus(ctx, reportID, status)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("failed to update ledger for %s: %v", reportID, err)
	}
}

// RecordEvent applies a webhook notification to the local ledger.
// Events for reports not submitted from this machine are ignored.
func (s *ReportService) RecordEvent(ctx context.Context, event *domain.WebhookEvent) error {
	if event == nil {
		return domain.FieldRequired("event")
	}
	if err := event.Validate(); err != nil {
		return err
	}

	status := event.Report.Status
	if status == "" {
		status = domain.StatusFailed
		if event.Succeeded() {
			status = domain.StatusCompleted
		}
	}

	logger.Info("Webhook %s for %s", event.Event, event.Report.ID)
	s.updateStatus(ctx, event.Report.ID, status)
	return nil
}

// ListReports fetches one page of the organisation's reports.
func (s *ReportService) ListReports(
	ctx context.Context, page, pageSize int, opts ...domain.CallOption,
) (*domain.ReportList, error) {
	return s.api.ListReports(ctx, page, pageSize, domain.ApplyCallOptions(opts...))
}

// History lists locally recorded submissions, newest first.
func (s *ReportService) History(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	if s.ledger == nil {
		return nil, nil
	}
	entries, err := s.ledger.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return entries, nil
}

// TokenFor returns the chaining token of a report, preferring the ledger
// and falling back to the API.
func (s *ReportService) TokenFor(ctx context.Context, reportID string) (string, error) {
	reportID = strings.TrimSpace(reportID)
	if reportID == "" {
		return "", domain.FieldRequired("report_id")
	}

	if s.ledger != nil {
		entry, err := s.ledger.Get(ctx, reportID)
		switch {
		case err == nil && entry.Token != "":
			return entry.Token, nil
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return "", fmt.Errorf("lookup token: %w", err)
		}
	}

	report, err := s.GetReport(ctx, reportID)
	if err != nil {
		return "", err
	}
	if report.Token == "" {
		return "", domain.NewValidationError("report_id", fmt.Sprintf("report %s has no token", reportID))
	}
	return report.Token, nil
}
