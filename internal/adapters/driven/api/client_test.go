package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surmado/surmado-go/internal/core/domain"
)

const testKey = "sur_live_test1234"

// fakeAPI is an in-process Surmado API that remembers submitted reports.
type fakeAPI struct {
	mu       sync.Mutex
	reports  map[string]domain.Report
	requests []*http.Request
	bodies   []map[string]any
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	f := &fakeAPI{reports: make(map[string]domain.Report)}
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{APIKey: testKey, BaseURL: srv.URL + "/v1", UserAgent: "surmado-go/test"})
	require.NoError(t, err)
	return f, c
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, r)
	var body map[string]any
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &body)
	}
	f.bodies = append(f.bodies, body)

	w.Header().Set("Content-Type", "application/json")
	if r.Header.Get(HeaderAPIKey) != testKey {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Invalid API key"}`))
		return
	}

	switch {
	case r.Method == http.MethodPost:
		product := domain.ProductScan
		switch r.URL.Path {
		case "/v1/reports/signal", "/v1/reports/signal/rerun":
			product = domain.ProductSignal
		case "/v1/reports/solutions":
			product = domain.ProductSolutions
		}
		id := "rpt_" + uuid.NewString()[:8]
		f.reports[id] = domain.Report{ReportID: id, Product: product, Status: domain.StatusQueued}
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(domain.ReportHandle{
			ReportID:    id,
			Token:       "tok_" + id,
			Product:     product,
			Status:      domain.StatusQueued,
			CreditsUsed: 1,
			CreatedAt:   "2026-03-01T10:00:00Z",
		})
	case r.URL.Path == "/v1/reports":
		list := domain.ReportList{Page: 1, PageSize: 50, Total: len(f.reports)}
		for _, rep := range f.reports {
			list.Reports = append(list.Reports, rep)
		}
		_ = json.NewEncoder(w).Encode(list)
	default:
		id := r.URL.Path[len("/v1/reports/"):]
		rep, ok := f.reports[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"detail":"Report not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(rep)
	}
}

func (f *fakeAPI) last() (*http.Request, map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1], f.bodies[len(f.bodies)-1]
}

func TestNewClient(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		_, err := NewClient(Config{APIKey: "  "})
		assert.True(t, domain.IsAuthentication(err))
		e, ok := domain.AsError(err)
		require.True(t, ok)
		assert.Zero(t, e.StatusCode)
	})

	t.Run("defaults", func(t *testing.T) {
		c, err := NewClient(Config{APIKey: testKey})
		require.NoError(t, err)
		assert.Equal(t, "https://api.surmado.com/v1", c.BaseURL())
		assert.Equal(t, 30*time.Second, c.timeout)
		assert.Equal(t, DefaultUserAgent, c.userAgent)
	})

	t.Run("bad base url", func(t *testing.T) {
		_, err := NewClient(Config{APIKey: testKey, BaseURL: "localhost:8080"})
		assert.Error(t, err)
	})
}

func TestClient_SubmitHeadersAndBody(t *testing.T) {
	f, c := newFakeAPI(t)

	handle, err := c.Submit(context.Background(), domain.ScanRequest{
		URL:            "https://acme.com",
		BrandName:      "Acme Corp",
		Email:          "you@acme.com",
		TierLevel:      domain.TierPremium,
		CompetitorURLs: []string{"https://competitor1.com"},
	}, domain.CallOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.ProductScan, handle.Product)
	assert.Equal(t, domain.StatusQueued, handle.Status)

	req, body := f.last()
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/reports/scan", req.URL.Path)
	assert.Equal(t, testKey, req.Header.Get("X-API-Key"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "surmado-go/test", req.Header.Get("User-Agent"))
	_, err = uuid.Parse(req.Header.Get("X-Request-ID"))
	assert.NoError(t, err)

	assert.Equal(t, "premium", body["tier"])
	assert.Equal(t, []any{"https://competitor1.com"}, body["competitor_urls"])
}

func TestSubmitPath(t *testing.T) {
	assert.Equal(t, "/reports/signal", SubmitPath(domain.SignalRequest{}))
	assert.Equal(t, "/reports/scan", SubmitPath(domain.ScanRequest{}))
	assert.Equal(t, "/reports/solutions", SubmitPath(domain.SolutionsRequest{}))
	assert.Equal(t, "/reports/signal/rerun", SubmitPath(domain.SignalRerunRequest{}))
	assert.Equal(t, "/reports/scan/rerun", SubmitPath(domain.ScanRerunRequest{}))
}

func TestClient_RoundTrip(t *testing.T) {
	_, c := newFakeAPI(t)
	ctx := context.Background()

	submissions := []domain.Submission{
		domain.SignalRerunRequest{BrandSlug: "acme_corp", Email: "you@acme.com"},
		domain.ScanRerunRequest{BrandSlug: "acme_corp", Email: "you@acme.com"},
		domain.SolutionsRequest{Email: "you@acme.com", Mode: domain.SignalTokenMode{Token: "tok_1"}},
	}

	for _, sub := range submissions {
		handle, err := c.Submit(ctx, sub, domain.CallOptions{})
		require.NoError(t, err)

		report, err := c.GetReport(ctx, handle.ReportID, domain.CallOptions{})
		require.NoError(t, err)
		assert.Equal(t, handle.ReportID, report.ReportID)
		assert.Equal(t, handle.Product, report.Product)
		assert.Equal(t, sub.Product(), report.Product)
		assert.False(t, report.FetchedAt.IsZero())
	}
}

func TestClient_GetReportErrors(t *testing.T) {
	_, c := newFakeAPI(t)

	_, err := c.GetReport(context.Background(), "rpt_missing", domain.CallOptions{})
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))

	e, ok := domain.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 404, e.StatusCode)
	assert.Equal(t, `{"detail":"Report not found"}`, string(e.Body))
	assert.Equal(t, "Report not found", e.Message)
}

func TestClient_WrongKey(t *testing.T) {
	f, _ := newFakeAPI(t)
	srv := httptest.NewServer(f)
	defer srv.Close()

	c, err := NewClient(Config{APIKey: "sur_live_wrong", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	_, err = c.GetReport(context.Background(), "rpt_1", domain.CallOptions{})
	assert.True(t, domain.IsAuthentication(err))
}

func TestClient_ListReports(t *testing.T) {
	var gotQuery []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = append(gotQuery, r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"reports":[{"report_id":"rpt_1","product":"scan","status":"completed"}],"total":1}`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: testKey, BaseURL: srv.URL})
	require.NoError(t, err)

	list, err := c.ListReports(context.Background(), 0, 500, domain.CallOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 100, list.PageSize)
	require.Len(t, list.Reports, 1)
	assert.False(t, list.Reports[0].FetchedAt.IsZero())

	_, err = c.ListReports(context.Background(), 3, 0, domain.CallOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"page=1&page_size=100", "page=3&page_size=50"}, gotQuery)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   domain.ErrorKind
	}{
		{400, domain.KindValidation},
		{401, domain.KindAuthentication},
		{402, domain.KindInsufficientCredits},
		{404, domain.KindNotFound},
		{422, domain.KindValidation},
		{429, domain.KindRateLimit},
		{500, domain.KindService},
		{503, domain.KindService},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			body := `{"message":"boom"}`
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Retry-After", "3")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			c, err := NewClient(Config{APIKey: testKey, BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = c.GetReport(context.Background(), "rpt_1", domain.CallOptions{})
			e, ok := domain.AsError(err)
			require.True(t, ok)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.status, e.StatusCode)
			assert.Equal(t, body, string(e.Body))
			if tt.kind == domain.KindRateLimit {
				assert.Equal(t, 3*time.Second, e.RetryAfter)
			}
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, err := NewClient(Config{APIKey: testKey, BaseURL: srv.URL, Timeout: time.Hour})
	require.NoError(t, err)

	_, err = c.GetReport(context.Background(), "rpt_1", domain.CallOptions{Timeout: 20 * time.Millisecond})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, domain.KindUnknown, domain.KindOf(err))
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"report_id":`))
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: testKey, BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.GetReport(context.Background(), "rpt_1", domain.CallOptions{})
	assert.ErrorContains(t, err, "decode response")
}

func TestClient_ResponseTooLarge(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusInternalServerError} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, strings.Repeat("x", maxResponseBytes+1))
		}))

		c, err := NewClient(Config{APIKey: testKey, BaseURL: srv.URL})
		require.NoError(t, err)

		_, err = c.GetReport(context.Background(), "rpt_1", domain.CallOptions{})
		srv.Close()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrResponseTooLarge)
		assert.Equal(t, domain.KindUnknown, domain.KindOf(err))
	}
}

func TestClient_ResponseAtCap(t *testing.T) {
	body := `{"report_id":"rpt_1","status":"queued","pad":"`
	body += strings.Repeat("x", maxResponseBytes-len(body)-2) + `"}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, body)
	}))
	defer srv.Close()

	c, err := NewClient(Config{APIKey: testKey, BaseURL: srv.URL})
	require.NoError(t, err)

	report, err := c.GetReport(context.Background(), "rpt_1", domain.CallOptions{})
	require.NoError(t, err)
	assert.Equal(t, "rpt_1", report.ReportID)
}
