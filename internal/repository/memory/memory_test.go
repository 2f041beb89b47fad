package memory_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository/memory"
)

func TestCatalog_CreateAssignsSequentialCodes(t *testing.T) {
	ctx := context.Background()
	catalog := memory.NewCatalog()

	rice, err := catalog.Create(ctx, models.NewItem{Name: "Rice", UnitPrice: decimal.NewFromInt(10), InitialQuantity: 5})
	require.NoError(t, err)
	sugar, err := catalog.Create(ctx, models.NewItem{Name: "Sugar", UnitPrice: decimal.NewFromInt(4), InitialQuantity: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(1), rice.Code)
	assert.Equal(t, int64(2), sugar.Code)

	items, err := catalog.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Rice", items[0].Name)
	assert.Equal(t, "Sugar", items[1].Name)
}

func TestCatalog_CompareAndSetQuantity(t *testing.T) {
	ctx := context.Background()
	catalog := memory.NewCatalog()
	item, err := catalog.Create(ctx, models.NewItem{Name: "Rice", InitialQuantity: 5})
	require.NoError(t, err)

	ok, err := catalog.CompareAndSetQuantity(ctx, item.Code, 4, 1)
	require.NoError(t, err)
	assert.False(t, ok, "stale expectation must conflict")

	ok, err = catalog.CompareAndSetQuantity(ctx, item.Code, 5, 3)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := catalog.Get(ctx, item.Code)
	require.NoError(t, err)
	assert.Equal(t, 3, got.QuantityOnHand)

	_, err = catalog.CompareAndSetQuantity(ctx, 99, 0, 0)
	assert.ErrorIs(t, err, models.ErrItemNotFound)
}

func TestCatalog_ConcurrentCASNeverLosesUpdates(t *testing.T) {
	ctx := context.Background()
	catalog := memory.NewCatalog()
	item, err := catalog.Create(ctx, models.NewItem{Name: "Rice", InitialQuantity: 100})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				current, err := catalog.Get(ctx, item.Code)
				if err != nil {
					return
				}
				ok, err := catalog.CompareAndSetQuantity(ctx, item.Code, current.QuantityOnHand, current.QuantityOnHand-1)
				if err != nil || ok {
					return
				}
			}
		}()
	}
	wg.Wait()

	got, err := catalog.Get(ctx, item.Code)
	require.NoError(t, err)
	assert.Equal(t, 50, got.QuantityOnHand)
}

func TestCatalog_UpdatePriceAndQuantity(t *testing.T) {
	ctx := context.Background()
	catalog := memory.NewCatalog()
	item, err := catalog.Create(ctx, models.NewItem{Name: "Milk", UnitPrice: decimal.NewFromInt(3), InitialQuantity: 1})
	require.NoError(t, err)

	updated, err := catalog.UpdatePriceAndQuantity(ctx, item.Code, decimal.RequireFromString("3.50"), 12)
	require.NoError(t, err)
	assert.True(t, updated.UnitPrice.Equal(decimal.RequireFromString("3.5")))
	assert.Equal(t, 12, updated.QuantityOnHand)

	_, err = catalog.UpdatePriceAndQuantity(ctx, 42, decimal.Zero, 0)
	assert.ErrorIs(t, err, models.ErrItemNotFound)
}

func TestLedger_AggregateByItem_AllTime(t *testing.T) {
	// GIVEN: "Rice" sold twice at price 10 (qty 3 and qty 2) and "Salt" once
	// WHEN: aggregating with no window
	// THEN: Rice totals 50 and Salt totals 8
	ctx := context.Background()
	ledger := memory.NewLedger()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	_, err := ledger.Append(ctx, models.SalesLedgerEntry{ItemCode: 1, ItemName: "Rice", UnitPrice: decimal.NewFromInt(10), Quantity: 3, Timestamp: now})
	require.NoError(t, err)
	_, err = ledger.Append(ctx, models.SalesLedgerEntry{ItemCode: 1, ItemName: "Rice", UnitPrice: decimal.NewFromInt(10), Quantity: 2, Timestamp: now.Add(time.Hour)})
	require.NoError(t, err)
	_, err = ledger.Append(ctx, models.SalesLedgerEntry{ItemCode: 2, ItemName: "Salt", UnitPrice: decimal.NewFromInt(4), Quantity: 2, Timestamp: now})
	require.NoError(t, err)

	totals, err := ledger.AggregateByItem(ctx, models.SalesFilter{})
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.True(t, totals["Rice"].Equal(decimal.NewFromInt(50)), "got %s", totals["Rice"])
	assert.True(t, totals["Salt"].Equal(decimal.NewFromInt(8)), "got %s", totals["Salt"])
}

func TestLedger_AggregateByItem_Window(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()
	day := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

	_, err := ledger.AppendBatch(ctx, []models.SalesLedgerEntry{
		{ItemName: "Rice", UnitPrice: decimal.NewFromInt(10), Quantity: 1, Timestamp: day.Add(-time.Minute)},
		{ItemName: "Rice", UnitPrice: decimal.NewFromInt(10), Quantity: 2, Timestamp: day},
		{ItemName: "Rice", UnitPrice: decimal.NewFromInt(10), Quantity: 4, Timestamp: day.Add(24 * time.Hour)},
	})
	require.NoError(t, err)

	totals, err := ledger.AggregateByItem(ctx, models.DayWindow(day.Add(6*time.Hour)))
	require.NoError(t, err)
	assert.True(t, totals["Rice"].Equal(decimal.NewFromInt(20)), "got %s", totals["Rice"])
}

func TestLedger_AppendAssignsIDs(t *testing.T) {
	ctx := context.Background()
	ledger := memory.NewLedger()

	ids, err := ledger.AppendBatch(ctx, []models.SalesLedgerEntry{{ItemName: "A"}, {ItemName: "B", ID: "fixed"}})
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.Equal(t, "fixed", ids[1])

	all, err := ledger.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBills_ConcurrentAppendYieldsPermutation(t *testing.T) {
	ctx := context.Background()
	bills := memory.NewBills()
	const n = 64

	ids := make([]int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := bills.Append(ctx, models.Bill{TransactionID: "tx"})
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i, id := range ids {
		assert.Equal(t, int64(i+1), id)
	}

	count, err := bills.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)
}

func TestBills_Get(t *testing.T) {
	ctx := context.Background()
	bills := memory.NewBills()

	id, err := bills.Append(ctx, models.Bill{Items: []models.BillLineItem{{ItemCode: 1, Name: "Rice", Quantity: 2}}})
	require.NoError(t, err)

	bill, err := bills.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, bill.SequenceID)
	assert.Len(t, bill.Items, 1)

	_, err = bills.Get(ctx, id+1)
	assert.ErrorIs(t, err, models.ErrBillNotFound)
}
