package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReport is the manager's sales view.
type SalesReport struct {
	Filter        SalesFilter                `json:"filter"`
	Entries       []SalesLedgerEntry         `json:"entries"`
	Items         []Item                     `json:"item_catalog"`
	PerItemTotals map[string]decimal.Decimal `json:"per_item_totals"`
	GeneratedAt   time.Time                  `json:"generated_at"`
}

// DailySalesReport represents the aggregated daily sales stored in the report archive.
type DailySalesReport struct {
	Date          time.Time                  `json:"date"`
	Revenue       decimal.Decimal            `json:"revenue"`
	UnitsSold     int                        `json:"units_sold"`
	EntryCount    int                        `json:"entry_count"`
	Transactions  int                        `json:"transactions"`
	PerItemTotals map[string]decimal.Decimal `json:"per_item_totals"`
	CreatedAt     time.Time                  `json:"created_at"`
}
