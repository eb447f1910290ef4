package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surmado/surmado-go/internal/core/domain"
)

func TestHistoryCmd_HasLimitFlag(t *testing.T) {
	flag := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, flag)
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "20", flag.DefValue)
}

func TestHistoryCmd_Empty(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "history")

	require.NoError(t, err)
	assert.Contains(t, out, "No reports submitted from this machine yet.")
}

func TestHistoryCmd_Lists(t *testing.T) {
	mock, cleanup := setupTestServices()
	defer cleanup()
	mock.history = []domain.LedgerEntry{
		{
			ReportID:   "rpt_2",
			Product:    domain.ProductSignal,
			Tier:       domain.TierPro,
			Rerun:      true,
			BrandSlug:  "acme_corp",
			LastStatus: domain.StatusProcessing,
			CreatedAt:  time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
		{
			ReportID:   "rpt_1",
			Product:    domain.ProductScan,
			Tier:       domain.TierBasic,
			BrandName:  "Acme Corp",
			LastStatus: domain.StatusCompleted,
			CreatedAt:  time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
	}

	out, err := execute(t, "history", "-n", "5")

	require.NoError(t, err)
	assert.Equal(t, 5, mock.historyLimit)
	assert.Contains(t, out, "REPORT")
	assert.Contains(t, out, "signal (rerun)")
	assert.Contains(t, out, "acme_corp")
	assert.Contains(t, out, "Acme Corp")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
