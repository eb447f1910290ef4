package services

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/logger"
)

// MaxTransientErrors is how many consecutive rate-limit, service or network
// errors WaitForReport absorbs before returning the last one.
const MaxTransientErrors = 3

// WaitForReport polls a report until it completes or fails, or until the
// wait budget runs out. A failed or cancelled report returns a
// KindReportFailed error; an exhausted budget returns KindTimeout.
// Cancelling ctx returns ctx.Err().
func (s *ReportService) WaitForReport(
	ctx context.Context, reportID string, opts domain.WaitOptions,
) (*domain.Report, error) {
	reportID = strings.TrimSpace(reportID)
	if reportID == "" {
		return nil, domain.FieldRequired("report_id")
	}
	opts = opts.WithDefaults()

	waitCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	logger.Section("Waiting for " + reportID)
	logger.Debug("Budget: %s, interval: %s", opts.Timeout, opts.Interval)

	var last domain.Status
	transient := 0

	for poll := 1; ; poll++ {
		delay := opts.Interval

		report, err := s.GetReport(waitCtx, reportID)
		switch {
		case err == nil:
			transient = 0
			last = report.Status
			logger.Debug("Poll %d: %s", poll, report.Status)

			if opts.OnProgress != nil {
				opts.OnProgress(report)
			}

			switch report.Status {
			case domain.StatusCompleted:
				return report, nil
			case domain.StatusFailed, domain.StatusCancelled:
				return nil, reportFailed(reportID, report)
			}

		case waitCtx.Err() != nil:
			return nil, waitExpired(ctx, reportID, opts.Timeout, last)

		case isTransient(err):
			transient++
			if transient >= MaxTransientErrors {
				return nil, fmt.Errorf("poll %s: %w", reportID, err)
			}
			if e, ok := domain.AsError(err); ok && e.RetryAfter > delay {
				delay = e.RetryAfter
			}
			logger.Warn("poll %d for %s failed (%d/%d): %v", poll, reportID, transient, MaxTransientErrors, err)

		default:
			return nil, err
		}

		timer := time.NewTimer(delay)
		select {
		case <-waitCtx.Done():
			timer.Stop()
			return nil, waitExpired(ctx, reportID, opts.Timeout, last)
		case <-timer.C:
		}
	}
}

// isTransient reports whether a poll may be retried at the next tick.
// A per-request timeout counts while the wait budget is still live.
func isTransient(err error) bool {
	if errors.Is(err, domain.ErrRateLimited) || errors.Is(err, domain.ErrService) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func reportFailed(reportID string, report *domain.Report) error {
	reason := report.Reason()
	return &domain.Error{
		Kind:     domain.KindReportFailed,
		Message:  fmt.Sprintf("report %s %s: %s", reportID, report.Status, reason),
		ReportID: reportID,
		Reason:   reason,
	}
}

// waitExpired distinguishes caller cancellation from the wait budget running out.
func waitExpired(parent context.Context, reportID string, budget time.Duration, last domain.Status) error {
	if err := parent.Err(); err != nil {
		return err
	}
	msg := fmt.Sprintf("report %s did not finish within %s", reportID, budget)
	if last != "" {
		msg += fmt.Sprintf(" (last status: %s)", last)
	}
	return &domain.Error{
		Kind:     domain.KindTimeout,
		Message:  msg,
		ReportID: reportID,
		Reason:   string(last),
	}
}
