package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository"
)

const billCounter = "bills"

// BillStore implements repository.BillStore on the bills collection.
type BillStore struct {
	bills    *mongo.Collection
	counters *mongo.Collection
}

// Append takes the next bill number from the counter and inserts the bill under it.
// A failed insert leaves a gap in the sequence.
func (s *BillStore) Append(ctx context.Context, bill models.Bill) (int64, error) {
	seq, err := nextSequence(ctx, s.counters, billCounter)
	if err != nil {
		return 0, err
	}

	bill.SequenceID = seq
	doc, err := newBillDocument(bill)
	if err != nil {
		return 0, err
	}
	if _, err := s.bills.InsertOne(ctx, doc); err != nil {
		return 0, fmt.Errorf("failed to insert bill %d: %w", seq, err)
	}
	return seq, nil
}

// Count returns the number of stored bills.
func (s *BillStore) Count(ctx context.Context) (int64, error) {
	n, err := s.bills.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count bills: %w", err)
	}
	return n, nil
}

// Get loads a bill by sequence id.
func (s *BillStore) Get(ctx context.Context, sequenceID int64) (models.Bill, error) {
	var doc billDocument
	err := s.bills.FindOne(ctx, bson.M{"_id": sequenceID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Bill{}, models.ErrBillNotFound
	}
	if err != nil {
		return models.Bill{}, fmt.Errorf("failed to load bill %d: %w", sequenceID, err)
	}
	return doc.model()
}

var _ repository.BillStore = (*BillStore)(nil)
