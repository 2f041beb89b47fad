package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository/memory"
	"github.com/mamadbah2/supermarket/internal/service/reporting"
)

type rowsExporter struct {
	entries []models.SalesLedgerEntry
}

func (r *rowsExporter) ExportEntries(_ context.Context, entries []models.SalesLedgerEntry) error {
	r.entries = append(r.entries, entries...)
	return nil
}

func TestDailyJob_LateEveningSaleIsReportedNextRun(t *testing.T) {
	// GIVEN: the job ran at the start of day D
	// WHEN: a sale happens at 22:00 on D and the job runs again after midnight
	// THEN: the late sale is archived under D and exported once
	loc := time.FixedZone("GMT", 0)
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, loc)
	ledger := memory.NewLedger()
	archive := memory.NewArchive()
	exporter := &rowsExporter{}

	clock := day.Add(5 * time.Minute)
	s := NewScheduler("5 0 * * *", loc, reporting.NewService(ledger, memory.NewCatalog(), nil), archive, ledger, nil,
		WithExporter(exporter), WithClock(func() time.Time { return clock }))

	s.runDailyJob()

	_, err := ledger.Append(context.Background(), models.SalesLedgerEntry{
		TransactionID: "late", ItemName: "Rice", UnitPrice: decimal.NewFromInt(10), Quantity: 2,
		Timestamp: day.Add(22 * time.Hour),
	})
	require.NoError(t, err)

	clock = day.AddDate(0, 0, 1).Add(5 * time.Minute)
	s.runDailyJob()

	reports := archive.Reports()
	require.Len(t, reports, 2)
	assert.True(t, reports[0].Date.Equal(day.AddDate(0, 0, -1)))
	assert.True(t, reports[1].Date.Equal(day))
	assert.True(t, reports[1].Revenue.Equal(decimal.NewFromInt(20)), "got %s", reports[1].Revenue)

	require.Len(t, exporter.entries, 1)
	assert.Equal(t, "late", exporter.entries[0].TransactionID)
}
