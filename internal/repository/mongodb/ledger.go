package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository"
)

// LedgerStore implements repository.SalesLedger on the sales collection.
type LedgerStore struct {
	sales *mongo.Collection
}

// Append inserts a single entry and returns its id.
func (s *LedgerStore) Append(ctx context.Context, entry models.SalesLedgerEntry) (string, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	doc, err := newSalesDocument(entry)
	if err != nil {
		return "", err
	}
	if _, err := s.sales.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to insert sales entry: %w", err)
	}
	return entry.ID, nil
}

// AppendBatch inserts the entries in order. If the insert fails part way the
// documents already written for this batch are removed before returning.
// When that removal fails too, a *models.LedgerCleanupError lists the ids.
func (s *LedgerStore) AppendBatch(ctx context.Context, entries []models.SalesLedgerEntry) ([]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(entries))
	docs := make([]interface{}, 0, len(entries))
	for _, entry := range entries {
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		doc, err := newSalesDocument(entry)
		if err != nil {
			return nil, err
		}
		ids = append(ids, entry.ID)
		docs = append(docs, doc)
	}

	_, err := s.sales.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err == nil {
		return ids, nil
	}

	insertErr := fmt.Errorf("failed to insert sales entries: %w", err)
	cleanupCtx := context.WithoutCancel(ctx)
	if _, delErr := s.sales.DeleteMany(cleanupCtx, bson.M{"_id": bson.M{"$in": ids}}); delErr != nil {
		return nil, &models.LedgerCleanupError{
			EntryIDs: ids,
			Err:      errors.Join(insertErr, fmt.Errorf("failed to remove partial sales batch: %w", delErr)),
		}
	}
	return nil, insertErr
}

// ListAll returns every entry.
func (s *LedgerStore) ListAll(ctx context.Context) ([]models.SalesLedgerEntry, error) {
	return s.List(ctx, models.SalesFilter{})
}

// List returns the entries inside the window ordered by timestamp.
func (s *LedgerStore) List(ctx context.Context, filter models.SalesFilter) ([]models.SalesLedgerEntry, error) {
	cursor, err := s.sales.Find(ctx, windowFilter(filter), options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []salesDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode sales: %w", err)
	}

	entries := make([]models.SalesLedgerEntry, 0, len(docs))
	for _, doc := range docs {
		entry, err := doc.model()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// AggregateByItem groups the window by item name and sums quantity * unit price.
func (s *LedgerStore) AggregateByItem(ctx context.Context, filter models.SalesFilter) (map[string]decimal.Decimal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: windowFilter(filter)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$item_name"},
			{Key: "total", Value: bson.D{
				{Key: "$sum", Value: bson.D{{Key: "$multiply", Value: bson.A{"$quantity", "$unit_price"}}}},
			}},
		}}},
	}

	cursor, err := s.sales.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ItemName string               `bson:"_id"`
		Total    primitive.Decimal128 `bson:"total"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode sales aggregate: %w", err)
	}

	totals := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		total, err := fromDecimal128(row.Total)
		if err != nil {
			return nil, err
		}
		totals[row.ItemName] = total
	}
	return totals, nil
}

var _ repository.SalesLedger = (*LedgerStore)(nil)
