package domain

import "time"

// DownloadURLTTL is how long signed download URLs stay valid after a fetch.
const DownloadURLTTL = 15 * time.Minute

// ReportHandle is returned when a submission is accepted.
type ReportHandle struct {
	ReportID string `json:"report_id"`

	// Token links a later Solutions request to this report.
	Token       string  `json:"token,omitempty"`
	OrgID       string  `json:"org_id,omitempty"`
	Product     Product `json:"product"`
	Status      Status  `json:"status"`
	BrandSlug   string  `json:"brand_slug,omitempty"`
	CreditsUsed int     `json:"credits_used"`
	CreatedAt   string  `json:"created_at,omitempty"`
}

// Created parses CreatedAt as RFC 3339.
func (h ReportHandle) Created() (time.Time, bool) {
	return parseTimestamp(h.CreatedAt)
}

// Report is the status of a report as returned by a status fetch. Once Status
// is completed it carries the download URLs and the product summary.
type Report struct {
	ReportID    string  `json:"report_id"`
	Product     Product `json:"product"`
	Status      Status  `json:"status"`
	Tier        Tier    `json:"tier,omitempty"`
	Token       string  `json:"token,omitempty"`
	BrandSlug   string  `json:"brand_slug,omitempty"`
	CreditsUsed int     `json:"credits_used,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	CompletedAt string  `json:"completed_at,omitempty"`

	DownloadURL             string `json:"download_url,omitempty"`
	PPTXDownloadURL         string `json:"pptx_download_url,omitempty"`
	IntelligenceDownloadURL string `json:"intelligence_download_url,omitempty"`

	Summary map[string]any `json:"summary,omitempty"`

	FailureReason string `json:"failure_reason,omitempty"`
	ErrorMessage  string `json:"error,omitempty"`

	// FetchedAt is set by the client when the report was received.
	FetchedAt time.Time `json:"-"`
}

// IsTerminal returns true once the report can no longer change state.
func (r *Report) IsTerminal() bool {
	return r.Status.IsTerminal()
}

// Reason returns the server-reported failure reason.
func (r *Report) Reason() string {
	switch {
	case r.FailureReason != "":
		return r.FailureReason
	case r.ErrorMessage != "":
		return r.ErrorMessage
	case r.Status == StatusCancelled:
		return "report was cancelled"
	default:
		return "report processing failed"
	}
}

// DownloadsExpireAt returns when the download URLs stop working.
func (r *Report) DownloadsExpireAt() time.Time {
	return r.FetchedAt.Add(DownloadURLTTL)
}

// DownloadsValid reports whether the download URLs can still be used at now.
// A report that was never fetched has no valid URLs.
func (r *Report) DownloadsValid(now time.Time) bool {
	if r.FetchedAt.IsZero() || r.DownloadURL == "" {
		return false
	}
	return now.Before(r.DownloadsExpireAt())
}

// ReportList is one page of the organisation's reports.
type ReportList struct {
	Reports  []Report `json:"reports"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Total    int      `json:"total"`
}

// HasMore reports whether later pages exist.
func (l *ReportList) HasMore() bool {
	return l.Page*l.PageSize < l.Total
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
