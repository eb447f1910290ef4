// Package api implements driven.ReportAPI over the Surmado REST API.
//
// The client sends one HTTP attempt per call and maps every non-2xx
// response to a *domain.Error. Retrying is left to the caller; only the
// report poller retries, and only for rate-limit and service errors.
package api
