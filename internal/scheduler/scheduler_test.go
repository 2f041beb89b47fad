package scheduler_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository/memory"
	"github.com/mamadbah2/supermarket/internal/scheduler"
	"github.com/mamadbah2/supermarket/internal/service/reporting"
)

type captureExporter struct {
	entries []models.SalesLedgerEntry
}

func (c *captureExporter) ExportEntries(_ context.Context, entries []models.SalesLedgerEntry) error {
	c.entries = append(c.entries, entries...)
	return nil
}

type captureNotifier struct {
	bodies []string
	err    error
}

func (c *captureNotifier) Notify(_ context.Context, body string) (string, error) {
	c.bodies = append(c.bodies, body)
	return "wamid", c.err
}

func seededLedger(t *testing.T, day time.Time) *memory.Ledger {
	t.Helper()
	ledger := memory.NewLedger()
	_, err := ledger.AppendBatch(context.Background(), []models.SalesLedgerEntry{
		{TransactionID: "t1", ItemName: "Rice", UnitPrice: decimal.NewFromInt(10), Quantity: 3, Timestamp: day.Add(10 * time.Hour)},
		{TransactionID: "t0", ItemName: "Rice", UnitPrice: decimal.NewFromInt(10), Quantity: 1, Timestamp: day.Add(-time.Hour)},
	})
	require.NoError(t, err)
	return ledger
}

func TestRunDailyReport_ArchivesExportsAndNotifies(t *testing.T) {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	ledger := seededLedger(t, day)
	archive := memory.NewArchive()
	exporter := &captureExporter{}
	notifier := &captureNotifier{}

	s := scheduler.NewScheduler("5 0 * * *", time.UTC,
		reporting.NewService(ledger, memory.NewCatalog(), nil), archive, ledger, nil,
		scheduler.WithExporter(exporter), scheduler.WithNotifier(notifier))

	require.NoError(t, s.RunDailyReport(context.Background(), day.Add(21*time.Hour)))

	reports := archive.Reports()
	require.Len(t, reports, 1)
	assert.True(t, reports[0].Revenue.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 1, reports[0].Transactions)

	require.Len(t, exporter.entries, 1)
	assert.Equal(t, "t1", exporter.entries[0].TransactionID)

	require.Len(t, notifier.bodies, 1)
	assert.True(t, strings.HasPrefix(notifier.bodies[0], "Sales summary (2025-03-10)"))
}

func TestRunDailyReport_NotifierFailureKeepsArchive(t *testing.T) {
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	ledger := seededLedger(t, day)
	archive := memory.NewArchive()

	s := scheduler.NewScheduler("5 0 * * *", time.UTC,
		reporting.NewService(ledger, memory.NewCatalog(), nil), archive, ledger, nil,
		scheduler.WithNotifier(&captureNotifier{err: errors.New("offline")}))

	require.NoError(t, s.RunDailyReport(context.Background(), day))
	assert.Len(t, archive.Reports(), 1)
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	s := scheduler.NewScheduler("every evening", nil, nil, memory.NewArchive(), memory.NewLedger(), nil)
	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	ledger := memory.NewLedger()
	s := scheduler.NewScheduler("5 0 * * *", time.UTC,
		reporting.NewService(ledger, memory.NewCatalog(), nil), memory.NewArchive(), ledger, nil)
	require.NoError(t, s.Start())
	s.Stop()
}
