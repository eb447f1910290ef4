// Package surmado is a client for the Surmado report API.
//
// Submit a report, then wait for it:
//
//	client, err := surmado.New(surmado.Config{APIKey: os.Getenv("SURMADO_API_KEY")})
//	if err != nil {
//		return err
//	}
//	handle, err := client.Scan(ctx, surmado.ScanRequest{
//		URL:       "https://acme.com",
//		BrandName: "Acme Corp",
//		Email:     "you@acme.com",
//	})
//	if err != nil {
//		return err
//	}
//	report, err := client.WaitForReport(ctx, handle.ReportID, surmado.WaitOptions{})
//
// Every request is validated before it is sent. Failures are *Error values;
// switch on KindOf(err) or test with errors.Is against the Err* sentinels.
package surmado

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/surmado/surmado-go/internal/adapters/driven/api"
	"github.com/surmado/surmado-go/internal/adapters/driven/storage/memory"
	"github.com/surmado/surmado-go/internal/adapters/driven/storage/sqlite"
	"github.com/surmado/surmado-go/internal/adapters/driving/webhook"
	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driven"
	"github.com/surmado/surmado-go/internal/core/services"
)

// Requests.
type (
	SignalRequest      = domain.SignalRequest
	ScanRequest        = domain.ScanRequest
	SolutionsRequest   = domain.SolutionsRequest
	SolutionsFields    = domain.SolutionsFields
	SolutionsMode      = domain.SolutionsMode
	SignalTokenMode    = domain.SignalTokenMode
	StandaloneMode     = domain.StandaloneMode
	FinancialAnalysis  = domain.FinancialAnalysis
	SignalRerunRequest = domain.SignalRerunRequest
	ScanRerunRequest   = domain.ScanRerunRequest
)

// Responses.
type (
	ReportHandle  = domain.ReportHandle
	Report        = domain.Report
	ReportList    = domain.ReportList
	LedgerEntry   = domain.LedgerEntry
	WebhookEvent  = domain.WebhookEvent
	WebhookReport = domain.WebhookReport
	Product       = domain.Product
	Tier          = domain.Tier
	Status        = domain.Status
)

// Options.
type (
	WaitOptions = domain.WaitOptions
	CallOption  = domain.CallOption
)

// Errors.
type (
	Error     = domain.Error
	ErrorKind = domain.ErrorKind
)

// Products, tiers and statuses.
const (
	ProductSignal    = domain.ProductSignal
	ProductScan      = domain.ProductScan
	ProductSolutions = domain.ProductSolutions

	TierBasic   = domain.TierBasic
	TierPro     = domain.TierPro
	TierPremium = domain.TierPremium

	StatusQueued     = domain.StatusQueued
	StatusProcessing = domain.StatusProcessing
	StatusCompleted  = domain.StatusCompleted
	StatusFailed     = domain.StatusFailed
	StatusCancelled  = domain.StatusCancelled
)

// Error kinds.
const (
	KindUnknown             = domain.KindUnknown
	KindValidation          = domain.KindValidation
	KindAuthentication      = domain.KindAuthentication
	KindInsufficientCredits = domain.KindInsufficientCredits
	KindNotFound            = domain.KindNotFound
	KindRateLimit           = domain.KindRateLimit
	KindService             = domain.KindService
	KindReportFailed        = domain.KindReportFailed
	KindTimeout             = domain.KindTimeout
)

// Sentinel errors matched by *Error through errors.Is.
var (
	ErrValidation          = domain.ErrValidation
	ErrAuthentication      = domain.ErrAuthentication
	ErrInsufficientCredits = domain.ErrInsufficientCredits
	ErrNotFound            = domain.ErrNotFound
	ErrRateLimited         = domain.ErrRateLimited
	ErrService             = domain.ErrService
	ErrReportFailed        = domain.ErrReportFailed
	ErrWaitTimeout         = domain.ErrWaitTimeout
	ErrAmbiguousMode       = domain.ErrAmbiguousMode
)

// Helpers re-exported from the domain.
var (
	KindOf              = domain.KindOf
	WithTimeout         = domain.WithTimeout
	NewSolutionsRequest = domain.NewSolutionsRequest
	InferSolutionsMode  = domain.InferSolutionsMode
	ParseWebhookEvent   = domain.ParseWebhookEvent
)

// Defaults.
const (
	DefaultBaseURL      = domain.DefaultBaseURL
	DefaultTimeout      = domain.DefaultRequestTimeout
	DefaultWaitTimeout  = domain.DefaultWaitTimeout
	DefaultPollInterval = domain.DefaultPollInterval
)

// Config configures a Client.
type Config struct {
	// APIKey is required. New fails with KindAuthentication without one.
	APIKey string

	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// Timeout is the default per-request timeout. Override per call with
	// WithTimeout.
	Timeout time.Duration

	// RequestsPerSecond throttles outgoing calls when positive.
	RequestsPerSecond float64

	// HTTPClient replaces the default transport.
	HTTPClient *http.Client

	// HistoryDir, when set, records submissions in a SQLite database in
	// that directory. Otherwise the most recent HistoryLimit submissions are
	// kept in memory for the life of the client. History and TokenFor read
	// from it.
	HistoryDir string

	// HistoryLimit caps the in-memory history (default: DefaultHistoryLimit).
	// Negative disables in-memory history. Ignored when HistoryDir is set.
	HistoryLimit int
}

// DefaultHistoryLimit is how many submissions a Client keeps in memory when
// HistoryDir is unset.
const DefaultHistoryLimit = 1000

// Client submits reports and waits for them. It is safe for concurrent use.
type Client struct {
	*services.ReportService
	store *sqlite.Store
}

// New creates a client.
func New(cfg Config) (*Client, error) {
	transport, err := api.NewClient(api.Config{
		APIKey:            cfg.APIKey,
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		HTTPClient:        cfg.HTTPClient,
	})
	if err != nil {
		return nil, err
	}

	c := &Client{}
	var ledger driven.ReportLedger
	switch {
	case cfg.HistoryDir != "":
		store, err := sqlite.NewStore(cfg.HistoryDir)
		if err != nil {
			return nil, fmt.Errorf("open history: %w", err)
		}
		c.store = store
		ledger = store.Ledger()
	case cfg.HistoryLimit >= 0:
		limit := cfg.HistoryLimit
		if limit == 0 {
			limit = DefaultHistoryLimit
		}
		ledger = memory.NewBoundedLedger(limit)
	}

	c.ReportService = services.NewReportService(transport, ledger)
	return c, nil
}

// Close releases the history database, if any.
func (c *Client) Close() error {
	if c.store == nil {
		return nil
	}
	return c.store.Close()
}

// WebhookHandler returns an http.Handler that decodes webhook notifications
// and passes them to fn. A non-nil error from fn answers 500 so the service
// retries delivery.
func WebhookHandler(fn func(ctx context.Context, event *WebhookEvent) error) http.Handler {
	return webhook.Handler(fn)
}
