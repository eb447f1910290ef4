package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driven"
)

// ledgerStore implements driven.ReportLedger.
type ledgerStore struct {
	store *Store
}

var _ driven.ReportLedger = (*ledgerStore)(nil)

const ledgerColumns = `report_id, token, product, tier, rerun, brand_slug, brand_name,
	credits_used, last_status, created_at, updated_at`

// Record stores or replaces an entry.
func (l *ledgerStore) Record(ctx context.Context, entry domain.LedgerEntry) error {
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = entry.CreatedAt
	}

	_, err := l.store.db.ExecContext(ctx, `
		INSERT INTO reports (`+ledgerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(report_id) DO UPDATE SET
			token = excluded.token,
			product = excluded.product,
			tier = excluded.tier,
			rerun = excluded.rerun,
			brand_slug = excluded.brand_slug,
			brand_name = excluded.brand_name,
			credits_used = excluded.credits_used,
			last_status = excluded.last_status,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`,
		entry.ReportID,
		entry.Token,
		string(entry.Product),
		string(entry.Tier),
		boolToInt(entry.Rerun),
		entry.BrandSlug,
		entry.BrandName,
		entry.CreditsUsed,
		string(entry.LastStatus),
		entry.CreatedAt.UnixNano(),
		entry.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("recording report %s: %w", entry.ReportID, err)
	}
	return nil
}

// UpdateStatus sets the last observed status of a report.
func (l *ledgerStore) UpdateStatus(ctx context.Context, reportID string, status domain.Status) error {
	res, err := l.store.db.ExecContext(ctx,
		"UPDATE reports SET last_status = ?, updated_at = ? WHERE report_id = ?",
		string(status), time.Now().UnixNano(), reportID,
	)
	if err != nil {
		return fmt.Errorf("updating report %s: %w", reportID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating report %s: %w", reportID, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get retrieves an entry by report id.
func (l *ledgerStore) Get(ctx context.Context, reportID string) (*domain.LedgerEntry, error) {
	row := l.store.db.QueryRowContext(ctx,
		"SELECT "+ledgerColumns+" FROM reports WHERE report_id = ?", reportID)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting report %s: %w", reportID, err)
	}
	return entry, nil
}

// List returns the most recent entries first, at most limit (0 = all).
func (l *ledgerStore) List(ctx context.Context, limit int) ([]domain.LedgerEntry, error) {
	query := "SELECT " + ledgerColumns + " FROM reports ORDER BY created_at DESC, report_id DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := l.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning report: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	return entries, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*domain.LedgerEntry, error) {
	var (
		entry              domain.LedgerEntry
		product, tier      string
		status             string
		rerun              int
		createdAt, updated int64
	)
	err := row.Scan(
		&entry.ReportID,
		&entry.Token,
		&product,
		&tier,
		&rerun,
		&entry.BrandSlug,
		&entry.BrandName,
		&entry.CreditsUsed,
		&status,
		&createdAt,
		&updated,
	)
	if err != nil {
		return nil, err
	}

	entry.Product = domain.Product(product)
	entry.Tier = domain.Tier(tier)
	entry.Rerun = rerun != 0
	entry.LastStatus = domain.Status(status)
	entry.CreatedAt = time.Unix(0, createdAt).UTC()
	entry.UpdatedAt = time.Unix(0, updated).UTC()
	return &entry, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
