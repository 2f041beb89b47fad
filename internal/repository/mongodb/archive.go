package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository"
)

// ArchiveStore implements repository.ReportArchive on the daily_reports collection.
type ArchiveStore struct {
	reports *mongo.Collection
}

// SaveDailyReport saves a daily sales report to the database.
func (s *ArchiveStore) SaveDailyReport(ctx context.Context, report models.DailySalesReport) error {
	doc, err := newDailyReportDocument(report)
	if err != nil {
		return err
	}
	if _, err := s.reports.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert daily report: %w", err)
	}
	return nil
}

var _ repository.ReportArchive = (*ArchiveStore)(nil)
