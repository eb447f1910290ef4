// Package mcp provides an MCP (Model Context Protocol) server adapter for Surmado.
// It lets AI assistants order reports and check on them through tool calls.
package mcp

import "errors"

// ErrMissingReportService is returned when the report service is not provided.
var ErrMissingReportService = errors.New("mcp: report service is required")
