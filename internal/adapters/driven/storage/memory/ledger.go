package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/surmado/surmado-go/internal/core/domain"
	"github.com/surmado/surmado-go/internal/core/ports/driven"
)

// Ensure Ledger implements the interface.
var _ driven.ReportLedger = (*Ledger)(nil)

// Ledger is an in-memory implementation of driven.ReportLedger.
type Ledger struct {
	mu      sync.RWMutex
	entries map[string]domain.LedgerEntry
	limit   int
	now     func() time.Time
}

// NewLedger creates a new unbounded in-memory report ledger.
func NewLedger() *Ledger {
	return NewBoundedLedger(0)
}

// NewBoundedLedger creates an in-memory ledger holding at most limit entries.
// Recording past the limit evicts the oldest entry. Zero means unbounded.
func NewBoundedLedger(limit int) *Ledger {
	return &Ledger{
		entries: make(map[string]domain.LedgerEntry),
		limit:   limit,
		now:     time.Now,
	}
}

// Record stores or replaces an entry.
func (l *Ledger) Record(_ context.Context, entry domain.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[entry.ReportID] = entry
	if l.limit > 0 && len(l.entries) > l.limit {
		l.evictOldest(entry.ReportID)
	}
	return nil
}

// Len returns the number of entries held.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// evictOldest removes the entry with the earliest CreatedAt other than keep.
// Callers hold the write lock.
func (l *Ledger) evictOldest(keep string) {
	var oldest *domain.LedgerEntry
	for id := range l.entries {
		if id == keep {
			continue
		}
		e := l.entries[id]
		if oldest == nil || e.CreatedAt.Before(oldest.CreatedAt) ||
			(e.CreatedAt.Equal(oldest.CreatedAt) && e.ReportID < oldest.ReportID) {
			oldest = &e
		}
	}
	if oldest != nil {
		delete(l.entries, oldest.ReportID)
	}
}

// UpdateStatus sets the last observed status of a report.
func (l *Ledger) UpdateStatus(_ context.Context, reportID string, status domain.Status) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	entry, ok := l.entries[reportID]
	if !ok {
		return domain.ErrNotFound
	}
	entry.LastStatus = status
	entry.UpdatedAt = l.now()
	l.entries[reportID] = entry
	return nil
}

// Get retrieves an entry by report id.
func (l *Ledger) Get(_ context.Context, reportID string) (*domain.LedgerEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	entry, ok := l.entries[reportID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &entry, nil
}

// List returns the most recent entries first.
func (l *Ledger) List(_ context.Context, limit int) ([]domain.LedgerEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make([]domain.LedgerEntry, 0, len(l.entries))
	for _, entry := range l.entries {
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ReportID > result[j].ReportID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
