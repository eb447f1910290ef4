// Package tui provides an interactive terminal user interface for Surmado reports.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Reports submits and tracks reports.
	Reports driving.ReportService

	// Wait tunes the wait view. Zero fields take the client defaults.
	Wait domain.WaitOptions
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Reports == nil {
		return ErrMissingReportService
	}
	return nil
}
