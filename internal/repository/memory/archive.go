package memory

import (
	"context"
	"sync"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository"
)

// Archive keeps daily sales reports in memory.
type Archive struct {
	mu      sync.Mutex
	reports []models.DailySalesReport
}

// NewArchive creates an empty report archive.
func NewArchive() *Archive {
	return &Archive{}
}

// SaveDailyReport appends the report. Reruns for a date add another copy.
func (a *Archive) SaveDailyReport(_ context.Context, report models.DailySalesReport) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reports = append(a.reports, report)
	return nil
}

// Reports returns a copy of the archived reports.
func (a *Archive) Reports() []models.DailySalesReport {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]models.DailySalesReport(nil), a.reports...)
}

var _ repository.ReportArchive = (*Archive)(nil)
