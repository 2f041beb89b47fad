package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository"
)

const itemCounter = "items"

// CatalogStore implements repository.CatalogStore on the items collection.
type CatalogStore struct {
	items    *mongo.Collection
	counters *mongo.Collection
}

// Get loads an item by code.
func (s *CatalogStore) Get(ctx context.Context, code int64) (models.Item, error) {
	var doc itemDocument
	err := s.items.FindOne(ctx, bson.M{"_id": code}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Item{}, &models.ItemNotFoundError{ItemCode: code}
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to load item %d: %w", code, err)
	}
	return doc.model()
}

// Create inserts a new item under the next code of the items counter.
func (s *CatalogStore) Create(ctx context.Context, in models.NewItem) (models.Item, error) {
	code, err := nextSequence(ctx, s.counters, itemCounter)
	if err != nil {
		return models.Item{}, err
	}

	item := models.Item{
		Code:           code,
		Name:           in.Name,
		Description:    in.Description,
		UnitPrice:      in.UnitPrice,
		QuantityOnHand: in.InitialQuantity,
	}
	doc, err := newItemDocument(item)
	if err != nil {
		return models.Item{}, err
	}
	if _, err := s.items.InsertOne(ctx, doc); err != nil {
		return models.Item{}, fmt.Errorf("failed to insert item: %w", err)
	}
	return item, nil
}

// CompareAndSetQuantity updates the quantity only when it still equals expected.
func (s *CatalogStore) CompareAndSetQuantity(ctx context.Context, code int64, expected, newQty int) (bool, error) {
	res, err := s.items.UpdateOne(ctx,
		bson.M{"_id": code, "quantity_on_hand": expected},
		bson.M{"$set": bson.M{"quantity_on_hand": newQty}},
	)
	if err != nil {
		return false, fmt.Errorf("failed to update quantity of item %d: %w", code, err)
	}
	if res.MatchedCount == 1 {
		return true, nil
	}

	n, err := s.items.CountDocuments(ctx, bson.M{"_id": code})
	if err != nil {
		return false, fmt.Errorf("failed to probe item %d: %w", code, err)
	}
	if n == 0 {
		return false, &models.ItemNotFoundError{ItemCode: code}
	}
	return false, nil
}

// IncrementQuantity adds delta to the quantity with $inc.
func (s *CatalogStore) IncrementQuantity(ctx context.Context, code int64, delta int) error {
	res, err := s.items.UpdateOne(ctx, bson.M{"_id": code}, bson.M{"$inc": bson.M{"quantity_on_hand": delta}})
	if err != nil {
		return fmt.Errorf("failed to increment quantity of item %d: %w", code, err)
	}
	if res.MatchedCount == 0 {
		return &models.ItemNotFoundError{ItemCode: code}
	}
	return nil
}

// UpdatePriceAndQuantity overwrites price and quantity and returns the new record.
func (s *CatalogStore) UpdatePriceAndQuantity(ctx context.Context, code int64, price decimal.Decimal, quantity int) (models.Item, error) {
	p, err := toDecimal128(price)
	if err != nil {
		return models.Item{}, err
	}

	var doc itemDocument
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = s.items.FindOneAndUpdate(ctx,
		bson.M{"_id": code},
		bson.M{"$set": bson.M{"unit_price": p, "quantity_on_hand": quantity}},
		opts,
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Item{}, &models.ItemNotFoundError{ItemCode: code}
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to update item %d: %w", code, err)
	}
	return doc.model()
}

// ListAll returns every item ordered by code.
func (s *CatalogStore) ListAll(ctx context.Context) ([]models.Item, error) {
	cursor, err := s.items.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []itemDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}

	items := make([]models.Item, 0, len(docs))
	for _, doc := range docs {
		item, err := doc.model()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

var _ repository.CatalogStore = (*CatalogStore)(nil)
