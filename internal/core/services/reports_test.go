package services

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surmado/surmado-go/internal/adapters/driven/storage/memory"
	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/logger"
)

func validScan() domain.ScanRequest {
	return domain.ScanRequest{
		URL:       "https://acme.com",
		BrandName: "Acme Corp",
		Email:     "you@acme.com",
		TierLevel: domain.TierPremium,
	}
}

func acceptedHandle(id string, product domain.Product) *domain.ReportHandle {
	return &domain.ReportHandle{
		ReportID:    id,
		Token:       "tok_" + id,
		Product:     product,
		Status:      domain.StatusQueued,
		BrandSlug:   "acme_corp",
		CreditsUsed: 2,
		CreatedAt:   "2026-03-01T10:00:00Z",
	}
}

func TestReportService_Scan(t *testing.T) {
	api := &mockReportAPI{handle: acceptedHandle("rpt_1", domain.ProductScan)}
	ledger := memory.NewLedger()
	service := NewReportService(api, ledger)

	handle, err := service.Scan(context.Background(), validScan(), domain.WithTimeout(5*time.Second))

	require.NoError(t, err)
	assert.Equal(t, "rpt_1", handle.ReportID)
	require.Len(t, api.submitted, 1)
	assert.Equal(t, domain.ProductScan, api.submitted[0].Product())
	assert.Equal(t, 5*time.Second, api.submitOpts[0].Timeout)

	entry, err := ledger.Get(context.Background(), "rpt_1")
	require.NoError(t, err)
	assert.Equal(t, "tok_rpt_1", entry.Token)
	assert.Equal(t, domain.TierPremium, entry.Tier)
	assert.Equal(t, "Acme Corp", entry.BrandName)
	assert.Equal(t, 2026, entry.CreatedAt.Year())
}

func TestReportService_ValidationNeverReachesNetwork(t *testing.T) {
	api := &mockReportAPI{handle: acceptedHandle("rpt_1", domain.ProductSignal)}
	service := NewReportService(api, memory.NewLedger())
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"signal missing fields", func() error {
			_, err := service.Signal(ctx, domain.SignalRequest{URL: "https://acme.com"})
			return err
		}},
		{"scan bad tier", func() error {
			req := validScan()
			req.TierLevel = domain.TierPro
			_, err := service.Scan(ctx, req)
			return err
		}},
		{"solutions without mode", func() error {
			_, err := service.Solutions(ctx, domain.SolutionsRequest{Email: "you@acme.com"})
			return err
		}},
		{"signal rerun without slug", func() error {
			_, err := service.SignalRerun(ctx, domain.SignalRerunRequest{Email: "you@acme.com"})
			return err
		}},
		{"scan rerun without email", func() error {
			_, err := service.ScanRerun(ctx, domain.ScanRerunRequest{BrandSlug: "acme_corp"})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.True(t, domain.IsValidation(err), "got %v", err)
		})
	}
	assert.Empty(t, api.submitted)
}

func TestReportService_SubmitErrorNotRecorded(t *testing.T) {
	apiErr := &domain.Error{Kind: domain.KindInsufficientCredits, StatusCode: 402}
	api := &mockReportAPI{submitErr: apiErr}
	ledger := memory.NewLedger()
	service := NewReportService(api, ledger)

	_, err := service.Scan(context.Background(), validScan())

	assert.True(t, domain.IsInsufficientCredits(err))
	entries, _ := ledger.List(context.Background(), 0)
	assert.Empty(t, entries)
}

func TestReportService_LedgerFailureIsLogged(t *testing.T) {
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	logger.SetVerbose(true)

	api := &mockReportAPI{handle: acceptedHandle("rpt_1", domain.ProductScan)}
	service := NewReportService(api, &failingLedger{err: errors.New("disk full")})

	handle, err := service.Scan(context.Background(), validScan())

	require.NoError(t, err)
	assert.Equal(t, "rpt_1", handle.ReportID)
	assert.Contains(t, buf.String(), "[WARN] failed to record report rpt_1: disk full")
}

func TestReportService_SignalRerun(t *testing.T) {
	api := &mockReportAPI{handle: acceptedHandle("rpt_9", domain.ProductSignal)}
	ledger := memory.NewLedger()
	service := NewReportService(api, ledger)

	_, err := service.SignalRerun(context.Background(), domain.SignalRerunRequest{
		BrandSlug: "acme_corp",
		Email:     "you@acme.com",
		TierLevel: domain.TierPro,
	})
	require.NoError(t, err)

	entry, err := ledger.Get(context.Background(), "rpt_9")
	require.NoError(t, err)
	assert.True(t, entry.Rerun)
	assert.Equal(t, domain.TierPro, entry.Tier)
}

func TestReportService_GetReport(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		api := &mockReportAPI{
			handle:  acceptedHandle("rpt_1", domain.ProductScan),
			fetches: statuses("rpt_1", domain.ProductScan, domain.StatusProcessing),
		}
		ledger := memory.NewLedger()
		service := NewReportService(api, ledger)
		ctx := context.Background()

		handle, err := service.Scan(ctx, validScan())
		require.NoError(t, err)

		report, err := service.GetReport(ctx, handle.ReportID)
		require.NoError(t, err)
		assert.Equal(t, handle.ReportID, report.ReportID)
		assert.Equal(t, handle.Product, report.Product)

		entry, err := ledger.Get(ctx, "rpt_1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusProcessing, entry.LastStatus)
	})

	t.Run("unknown to ledger", func(t *testing.T) {
		api := &mockReportAPI{fetches: statuses("rpt_x", domain.ProductSignal, domain.StatusCompleted)}
		service := NewReportService(api, memory.NewLedger())

		report, err := service.GetReport(context.Background(), "rpt_x")
		require.NoError(t, err)
		assert.True(t, report.IsTerminal())
	})

	t.Run("blank id", func(t *testing.T) {
		api := &mockReportAPI{}
		service := NewReportService(api, nil)

		_, err := service.GetReport(context.Background(), "  ")
		assert.True(t, domain.IsValidation(err))
		assert.Zero(t, api.calls())
	})

	t.Run("not found", func(t *testing.T) {
		service := NewReportService(&mockReportAPI{}, nil)

		_, err := service.GetReport(context.Background(), "rpt_missing")
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestReportService_ListReports(t *testing.T) {
	api := &mockReportAPI{list: &domain.ReportList{Page: 1, PageSize: 50, Total: 1}}
	service := NewReportService(api, nil)

	list, err := service.ListReports(context.Background(), 1, 50)

	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, 1, api.listCalls)
}

func TestReportService_History(t *testing.T) {
	api := &mockReportAPI{handle: acceptedHandle("rpt_1", domain.ProductScan)}
	service := NewReportService(api, memory.NewLedger())
	ctx := context.Background()

	_, err := service.Scan(ctx, validScan())
	require.NoError(t, err)

	entries, err := service.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "rpt_1", entries[0].ReportID)

	entries, err = NewReportService(api, nil).History(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = NewReportService(api, &failingLedger{err: errors.New("locked")}).History(ctx, 10)
	assert.ErrorContains(t, err, "list history")
}

func TestReportService_TokenFor(t *testing.T) {
	ctx := context.Background()

	t.Run("from ledger", func(t *testing.T) {
		api := &mockReportAPI{handle: acceptedHandle("rpt_1", domain.ProductSignal)}
		service := NewReportService(api, memory.NewLedger())
		_, err := service.SignalRerun(ctx, domain.SignalRerunRequest{BrandSlug: "acme_corp", Email: "you@acme.com"})
		require.NoError(t, err)

		token, err := service.TokenFor(ctx, "rpt_1")
		require.NoError(t, err)
		assert.Equal(t, "tok_rpt_1", token)
		assert.Zero(t, api.calls())
	})

	t.Run("falls back to api", func(t *testing.T) {
		api := &mockReportAPI{fetches: []fetchResult{{report: &domain.Report{ReportID: "rpt_2", Token: "tok_remote"}}}}
		service := NewReportService(api, memory.NewLedger())

		token, err := service.TokenFor(ctx, "rpt_2")
		require.NoError(t, err)
		assert.Equal(t, "tok_remote", token)
	})

	t.Run("report without token", func(t *testing.T) {
		api := &mockReportAPI{fetches: statuses("rpt_3", domain.ProductScan, domain.StatusQueued)}
		service := NewReportService(api, nil)

		_, err := service.TokenFor(ctx, "rpt_3")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("ledger error", func(t *testing.T) {
		service := NewReportService(&mockReportAPI{}, &failingLedger{err: errors.New("locked")})

		_, err := service.TokenFor(ctx, "rpt_4")
		assert.ErrorContains(t, err, "lookup token")
	})
}

func TestReportService_RecordEvent(t *testing.T) {
	ctx := context.Background()
	api := &mockReportAPI{handle: acceptedHandle("rpt_1", domain.ProductScan)}
	ledger := memory.NewLedger()
	service := NewReportService(api, ledger)

	_, err := service.Scan(ctx, validScan())
	require.NoError(t, err)

	t.Run("updates recorded report", func(t *testing.T) {
		err := service.RecordEvent(ctx, &domain.WebhookEvent{
			Event:  domain.EventReportCompleted,
			Report: domain.WebhookReport{ID: "rpt_1", Status: domain.StatusCompleted},
		})
		require.NoError(t, err)

		entry, err := ledger.Get(ctx, "rpt_1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCompleted, entry.LastStatus)
	})

	t.Run("status derived from event", func(t *testing.T) {
		err := service.RecordEvent(ctx, &domain.WebhookEvent{
			Event:  domain.EventReportFailed,
			Report: domain.WebhookReport{ID: "rpt_1"},
		})
		require.NoError(t, err)

		entry, err := ledger.Get(ctx, "rpt_1")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFailed, entry.LastStatus)
	})

	t.Run("unknown report ignored", func(t *testing.T) {
		err := service.RecordEvent(ctx, &domain.WebhookEvent{
			Event:  domain.EventReportCompleted,
			Report: domain.WebhookReport{ID: "rpt_elsewhere"},
		})
		assert.NoError(t, err)
	})

	t.Run("invalid event", func(t *testing.T) {
		assert.True(t, domain.IsValidation(service.RecordEvent(ctx, &domain.WebhookEvent{Event: "report.queued"})))
		assert.True(t, domain.IsValidation(service.RecordEvent(ctx, nil)))
	})

	t.Run("no ledger", func(t *testing.T) {
		bare := NewReportService(api, nil)
		assert.NoError(t, bare.RecordEvent(ctx, &domain.WebhookEvent{
			Event:  domain.EventReportCompleted,
			Report: domain.WebhookReport{ID: "rpt_1"},
		}))
	})
}
