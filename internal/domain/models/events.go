package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillCommitted is published once a bill has been persisted.
type BillCommitted struct {
	SequenceID    int64           `json:"sequence_id"`
	TransactionID string          `json:"transaction_id"`
	Lines         int             `json:"lines"`
	Units         int             `json:"units"`
	Total         decimal.Decimal `json:"total"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
