package memory

import (
	"context"
	"sync"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository"
)

// Bills is an in-memory BillStore.
type Bills struct {
	mu     sync.RWMutex
	bills  map[int64]models.Bill
	lastID int64
}

// NewBills creates an empty bill store.
func NewBills() *Bills {
	return &Bills{bills: make(map[int64]models.Bill)}
}

// Append stores the bill under the next sequence id.
func (b *Bills) Append(_ context.Context, bill models.Bill) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastID++
	bill.SequenceID = b.lastID
	bill.Items = append([]models.BillLineItem(nil), bill.Items...)
	b.bills[bill.SequenceID] = bill
	return bill.SequenceID, nil
}

// Count returns the number of stored bills.
func (b *Bills) Count(_ context.Context) (int64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return int64(len(b.bills)), nil
}

// Get returns a bill by sequence id or models.ErrBillNotFound.
func (b *Bills) Get(_ context.Context, sequenceID int64) (models.Bill, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	bill, ok := b.bills[sequenceID]
	if !ok {
		return models.Bill{}, models.ErrBillNotFound
	}
	bill.Items = append([]models.BillLineItem(nil), bill.Items...)
	return bill, nil
}

var _ repository.BillStore = (*Bills)(nil)
