package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	itemsCollection        = "items"
	salesCollection        = "sales"
	billsCollection        = "bills"
	countersCollection     = "counters"
	dailyReportsCollection = "daily_reports"
)

// Client owns the MongoDB connection shared by the stores.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens and verifies a MongoDB connection and ensures the indexes
// the stores rely on.
func Connect(ctx context.Context, uri string, dbName string) (*Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	c := &Client{client: client, db: client.Database(dbName)}
	if err := c.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) ensureIndexes(ctx context.Context) error {
	_, err := c.db.Collection(salesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: 1}}},
		{Keys: bson.D{{Key: "transaction_id", Value: 1}}},
		{Keys: bson.D{{Key: "item_name", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create sales indexes: %w", err)
	}
	return nil
}

// Catalog returns the items store.
func (c *Client) Catalog() *CatalogStore {
	return &CatalogStore{
		items:    c.db.Collection(itemsCollection),
		counters: c.db.Collection(countersCollection),
	}
}

// Ledger returns the sales ledger store.
func (c *Client) Ledger() *LedgerStore {
	return &LedgerStore{sales: c.db.Collection(salesCollection)}
}

// Bills returns the bill store.
func (c *Client) Bills() *BillStore {
	return &BillStore{
		bills:    c.db.Collection(billsCollection),
		counters: c.db.Collection(countersCollection),
	}
}

// Archive returns the daily report archive.
func (c *Client) Archive() *ArchiveStore {
	return &ArchiveStore{reports: c.db.Collection(dailyReportsCollection)}
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}

// nextSequence atomically increments and returns the named counter.
func nextSequence(ctx context.Context, counters *mongo.Collection, name string) (int64, error) {
	var out struct {
		Seq int64 `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := counters.FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).Decode(&out)
	if err != nil {
		return 0, fmt.Errorf("increment %s counter: %w", name, err)
	}
	return out.Seq, nil
}
