package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillLine is one requested line of a bill submission.
type BillLine struct {
	ItemCode  int64           `json:"item_code"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// BillRequest is what a clerk submits. ClientTotal is the subtotal shown on the
// clerk's screen; it is never used as the bill's total.
type BillRequest struct {
	Lines       []BillLine       `json:"lines"`
	ClientTotal *decimal.Decimal `json:"sub_total,omitempty"`
}

// BillLineItem is the snapshot of a sold line printed on the receipt.
type BillLineItem struct {
	ItemCode  int64           `json:"item_code"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Bill is the summary of one committed transaction.
type Bill struct {
	SequenceID    int64            `json:"sequence_id"`
	TransactionID string           `json:"transaction_id"`
	Items         []BillLineItem   `json:"items"`
	TotalCost     decimal.Decimal  `json:"total_cost"`
	ClientTotal   *decimal.Decimal `json:"client_total,omitempty"`
	Date          time.Time        `json:"date"`
}

// ComputeTotal sums quantity * unit price over the bill lines.
func ComputeTotal(items []BillLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item.Quantity, item.UnitPrice))
	}
	return total
}

// TotalQuantity sums the quantities of the bill lines.
func (b Bill) TotalQuantity() int {
	var qty int
	for _, item := range b.Items {
		qty += item.Quantity
	}
	return qty
}
