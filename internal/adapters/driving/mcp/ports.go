package mcp

import (
	"github.com/surmado/surmado-go/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the MCP server.
type Ports struct {
	// Reports submits and tracks reports.
	Reports driving.ReportService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Reports == nil {
		return ErrMissingReportService
	}
	return nil
}
