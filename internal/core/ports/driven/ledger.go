package driven

import (
	"context"

	"github.com/surmado/surmado-go/internal/core/domain"
)

// ReportLedger persists a local record of accepted submissions.
type ReportLedger interface {
	// Record stores or replaces an entry.
	Record(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateStatus sets the last observed status of a report.
	// Returns domain.ErrNotFound if the report was never recorded.
	UpdateStatus(ctx context.Context, reportID string, status domain.Status) error

	// Get retrieves an entry by report id.
	// Returns domain.ErrNotFound if the report was never recorded.
	Get(ctx context.Context, reportID string) (*domain.LedgerEntry, error)

	// List returns the most recent entries first, at most limit (0 = all).
	List(ctx context.Context, limit int) ([]domain.LedgerEntry, error)
}
