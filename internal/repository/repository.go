// Package repository declares the storage contracts shared by every backend.
//
// The sales ledger and the bill store are append-only: neither interface has
// an update or delete method.
package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/supermarket/internal/domain/models"
)

// CatalogStore holds the current item records.
type CatalogStore interface {
	// Get returns models.ErrItemNotFound (wrapped) for unknown codes.
	Get(ctx context.Context, code int64) (models.Item, error)
	// Create assigns the next sequential item code.
	Create(ctx context.Context, item models.NewItem) (models.Item, error)
	// CompareAndSetQuantity writes newQty only if the stored quantity still
	// equals expected. It returns false on conflict.
	CompareAndSetQuantity(ctx context.Context, code int64, expected, newQty int) (bool, error)
	// IncrementQuantity atomically adds delta to the stored quantity.
	IncrementQuantity(ctx context.Context, code int64, delta int) error
	UpdatePriceAndQuantity(ctx context.Context, code int64, price decimal.Decimal, quantity int) (models.Item, error)
	ListAll(ctx context.Context) ([]models.Item, error)
}

// SalesLedger is the append-only record of sold lines.
type SalesLedger interface {
	Append(ctx context.Context, entry models.SalesLedgerEntry) (string, error)
	// AppendBatch writes all entries or none of them. If a partial write
	// cannot be undone it returns a *models.LedgerCleanupError.
	AppendBatch(ctx context.Context, entries []models.SalesLedgerEntry) ([]string, error)
	ListAll(ctx context.Context) ([]models.SalesLedgerEntry, error)
	List(ctx context.Context, filter models.SalesFilter) ([]models.SalesLedgerEntry, error)
	// AggregateByItem maps item name to sum(quantity * unit price) over the window.
	AggregateByItem(ctx context.Context, filter models.SalesFilter) (map[string]decimal.Decimal, error)
}

// BillStore keeps one record per committed transaction.
type BillStore interface {
	// Append stores the bill and returns its sequence id, taken from an
	// atomically incremented counter.
	Append(ctx context.Context, bill models.Bill) (int64, error)
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, sequenceID int64) (models.Bill, error)
}

// ReportArchive stores the daily sales snapshots produced by the scheduler.
type ReportArchive interface {
	SaveDailyReport(ctx context.Context, report models.DailySalesReport) error
}
