// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/surmado/surmado-go/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewHistory lists locally recorded submissions.
	ViewHistory ViewType = iota
	// ViewReport shows the live status of one report.
	ViewReport
	// ViewWait polls a report until it finishes.
	ViewWait
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewHistory:
		return "history"
	case ViewReport:
		return "report"
	case ViewWait:
		return "wait"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View     ViewType
	ReportID string
}

// HistoryLoaded carries the ledger entries.
type HistoryLoaded struct {
	Entries []domain.LedgerEntry
	Err     error
}

// ReportLoaded carries a freshly fetched report.
type ReportLoaded struct {
	ReportID string
	Report   *domain.Report
	Err      error
}

// WaitProgress is sent for every poll observed while waiting.
type WaitProgress struct {
	Report *domain.Report
}

// WaitFinished is sent once when waiting ends.
type WaitFinished struct {
	Report *domain.Report
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
