// Package domain defines the core types of the Surmado client.
//
// This package is the innermost layer of the hexagon. It has NO external
// dependencies and defines:
//
//   - Submissions: SignalRequest, ScanRequest, SolutionsRequest and the rerun variants
//   - Results: ReportHandle, Report, ReportList
//   - WebhookEvent: the push-delivered terminal state payload
//   - Error: the closed set of failure kinds surfaced to callers
//   - Field limits and the local validation layer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
