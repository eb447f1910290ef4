package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driven"
	"github.com/surmado/surmado-go/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ReportAPI = (*Client)(nil)

// Default configuration values.
const (
	DefaultUserAgent = "surmado-go"

	// DefaultPageSize and MaxPageSize bound ListReports.
	DefaultPageSize = 50
	MaxPageSize     = 100

	// HeaderAPIKey carries the account API key.
	HeaderAPIKey = "X-API-Key"

	// HeaderRequestID correlates a call with server logs.
	HeaderRequestID = "X-Request-ID"

	maxResponseBytes = 10 << 20
)

// ErrResponseTooLarge is returned when a response body exceeds the read cap.
var ErrResponseTooLarge = errors.New("response too large")

// Config holds configuration for the API client.
type Config struct {
	// APIKey is the Surmado API key (required).
	APIKey string

	// BaseURL is the API root (default: https://api.surmado.com/v1).
	BaseURL string

	// Timeout is the default per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond enables client-side throttling when positive.
	RequestsPerSecond float64

	// UserAgent is sent on every request (default: surmado-go).
	UserAgent string

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to the Surmado report API. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	userAgent  string
	timeout    time.Duration
	limiter    *RateLimiter
	now        func() time.Time
}

// NewClient creates an API client. A missing API key fails here, before
// any request is attempted.
func NewClient(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, domain.MissingAPIKey()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}
	if u, err := url.Parse(cfg.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("surmado: invalid base URL %q", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultRequestTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}

	logger.Debug("API client: base=%s key=%s timeout=%s", cfg.BaseURL, logger.Redact(apiKey), cfg.Timeout)

	return &Client{
		httpClient: cfg.HTTPClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     apiKey,
		userAgent:  cfg.UserAgent,
		timeout:    cfg.Timeout,
		limiter:    NewRateLimiter(cfg.RequestsPerSecond),
		now:        time.Now,
	}, nil
}

// BaseURL returns the API root the client sends to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SubmitPath returns the endpoint for a submission.
func SubmitPath(sub domain.Submission) string {
	path := "/reports/" + string(sub.Product())
	if sub.IsRerun() {
		path += "/rerun"
	}
	return path
}

// Submit sends a validated submission and returns the accepted handle.
func (c *Client) Submit(
	ctx context.Context, sub domain.Submission, opts domain.CallOptions,
) (*domain.ReportHandle, error) {
	var handle domain.ReportHandle
	if err := c.do(ctx, http.MethodPost, SubmitPath(sub), sub.Body(), opts, &handle); err != nil {
		return nil, err
	}
	if handle.Product == "" {
		handle.Product = sub.Product()
	}
	return &handle, nil
}

// GetReport fetches a report's current status.
func (c *Client) GetReport(ctx context.Context, reportID string, opts domain.CallOptions) (*domain.Report, error) {
	var report domain.Report
	if err := c.do(ctx, http.MethodGet, "/reports/"+url.PathEscape(reportID), nil, opts, &report); err != nil {
		return nil, err
	}
	report.FetchedAt = c.now()
	return &report, nil
}

// ListReports fetches one page of reports. page is clamped to at least 1
// and pageSize to 1..100, with 0 meaning the default of 50.
func (c *Client) ListReports(
	ctx context.Context, page, pageSize int, opts domain.CallOptions,
) (*domain.ReportList, error) {
	page, pageSize = clampPage(page, pageSize)

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))

	var list domain.ReportList
	if err := c.do(ctx, http.MethodGet, "/reports?"+q.Encode(), nil, opts, &list); err != nil {
		return nil, err
	}
	if list.Page == 0 {
		list.Page = page
	}
	if list.PageSize == 0 {
		list.PageSize = pageSize
	}
	now := c.now()
	for i := range list.Reports {
		list.Reports[i].FetchedAt = now
	}
	return &list, nil
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize <= 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// do performs one request. Non-2xx responses become *domain.Error; a
// 2xx body is decoded into out.
func (c *Client) do(
	ctx context.Context, method, path string, body any, opts domain.CallOptions, out any,
) error {
	timeout := c.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(HeaderAPIKey, c.apiKey)
	req.Header.Set(HeaderRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("%s %s (request %s)", method, path, requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	c.limiter.UpdateFromResponse(resp)

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(respBody) > maxResponseBytes {
		return fmt.Errorf("read response (status %d): %w: over %d bytes",
			resp.StatusCode, ErrResponseTooLarge, maxResponseBytes)
	}

	logger.Debug("%s %s -> %d in %s", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return MapError(resp.StatusCode, resp.Header, respBody, c.now())
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
