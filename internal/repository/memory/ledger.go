package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository"
)

// Ledger is an in-memory, append-only SalesLedger.
type Ledger struct {
	mu      sync.RWMutex
	entries []models.SalesLedgerEntry
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{entries: make([]models.SalesLedgerEntry, 0)}
}

// Append stores one entry, assigning an id when it has none.
func (l *Ledger) Append(_ context.Context, entry models.SalesLedgerEntry) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.appendLocked(entry), nil
}

// AppendBatch holds the lock for the whole batch so readers never see half of it.
func (l *Ledger) AppendBatch(_ context.Context, entries []models.SalesLedgerEntry) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, l.appendLocked(entry))
	}
	return ids, nil
}

func (l *Ledger) appendLocked(entry models.SalesLedgerEntry) string {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	l.entries = append(l.entries, entry)
	return entry.ID
}

// ListAll returns every entry in insertion order.
func (l *Ledger) ListAll(ctx context.Context) ([]models.SalesLedgerEntry, error) {
	return l.List(ctx, models.SalesFilter{})
}

// List returns the entries inside the window in insertion order.
func (l *Ledger) List(_ context.Context, filter models.SalesFilter) ([]models.SalesLedgerEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]models.SalesLedgerEntry, 0, len(l.entries))
	for _, e := range l.entries {
		if filter.Matches(e.Timestamp) {
			result = append(result, e)
		}
	}
	return result, nil
}

// AggregateByItem sums revenue per item name over the window.
func (l *Ledger) AggregateByItem(ctx context.Context, filter models.SalesFilter) (map[string]decimal.Decimal, error) {
	entries, err := l.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return models.TotalsByItem(entries), nil
}

var _ repository.SalesLedger = (*Ledger)(nil)
