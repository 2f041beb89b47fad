package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesLedgerEntry records one sold line of one bill. Entries are immutable.
type SalesLedgerEntry struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ItemCode      int64           `json:"item_code"`
	ItemName      string          `json:"item_name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	Timestamp     time.Time       `json:"timestamp"`
}

// Revenue returns quantity * unit price for the entry.
func (e SalesLedgerEntry) Revenue() decimal.Decimal {
	return LineTotal(e.Quantity, e.UnitPrice)
}

// SalesFilter narrows a ledger scan to the half-open window [From, To).
// A nil bound is open.
type SalesFilter struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

// Matches reports whether ts falls inside the window.
func (f SalesFilter) Matches(ts time.Time) bool {
	if f.From != nil && ts.Before(*f.From) {
		return false
	}
	if f.To != nil && !ts.Before(*f.To) {
		return false
	}
	return true
}

// DayWindow returns the filter covering the calendar day of t in t's location.
func DayWindow(t time.Time) SalesFilter {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1)
	return SalesFilter{From: &start, To: &end}
}

// LineTotal returns qty * price.
func LineTotal(qty int, price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

// TotalsByItem maps item name to the summed revenue of entries.
func TotalsByItem(entries []SalesLedgerEntry) map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		totals[e.ItemName] = totals[e.ItemName].Add(e.Revenue())
	}
	return totals
}
