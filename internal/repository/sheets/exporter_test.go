package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/supermarket/internal/domain/models"
)

func TestSalesRows(t *testing.T) {
	ts := time.Date(2025, time.March, 10, 9, 30, 0, 0, time.FixedZone("GMT+1", 3600))
	rows := salesRows([]models.SalesLedgerEntry{
		{TransactionID: "tx-1", ItemCode: 4, ItemName: "Rice", Quantity: 3, UnitPrice: decimal.RequireFromString("10.50"), Timestamp: ts},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, []interface{}{"2025-03-10T08:30:00Z", "tx-1", int64(4), "Rice", 3, "10.5"}, rows[0])
}

func TestExportEntries_EmptyIsNoop(t *testing.T) {
	var e Exporter
	assert.NoError(t, e.ExportEntries(context.Background(), nil))
}
