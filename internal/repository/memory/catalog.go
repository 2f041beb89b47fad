// Package memory provides in-memory implementations of the repository contracts.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository"
)

// Catalog is an in-memory CatalogStore.
type Catalog struct {
	mu       sync.RWMutex
	items    map[int64]models.Item
	lastCode int64
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{items: make(map[int64]models.Item)}
}

// Get returns a copy of the item.
func (c *Catalog) Get(_ context.Context, code int64) (models.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[code]
	if !ok {
		return models.Item{}, &models.ItemNotFoundError{ItemCode: code}
	}
	return item, nil
}

// Create stores the item under the next code.
func (c *Catalog) Create(_ context.Context, in models.NewItem) (models.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastCode++
	item := models.Item{
		Code:           c.lastCode,
		Name:           in.Name,
		Description:    in.Description,
		UnitPrice:      in.UnitPrice,
		QuantityOnHand: in.InitialQuantity,
	}
	c.items[item.Code] = item
	return item, nil
}

// CompareAndSetQuantity sets the quantity only if it still equals expected.
func (c *Catalog) CompareAndSetQuantity(_ context.Context, code int64, expected, newQty int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[code]
	if !ok {
		return false, &models.ItemNotFoundError{ItemCode: code}
	}
	if item.QuantityOnHand != expected {
		return false, nil
	}
	item.QuantityOnHand = newQty
	c.items[code] = item
	return true, nil
}

// IncrementQuantity adds delta to the quantity on hand.
func (c *Catalog) IncrementQuantity(_ context.Context, code int64, delta int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[code]
	if !ok {
		return &models.ItemNotFoundError{ItemCode: code}
	}
	item.QuantityOnHand += delta
	c.items[code] = item
	return nil
}

// UpdatePriceAndQuantity overwrites price and quantity.
func (c *Catalog) UpdatePriceAndQuantity(_ context.Context, code int64, price decimal.Decimal, quantity int) (models.Item, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[code]
	if !ok {
		return models.Item{}, &models.ItemNotFoundError{ItemCode: code}
	}
	item.UnitPrice = price
	item.QuantityOnHand = quantity
	c.items[code] = item
	return item, nil
}

// ListAll returns the items ordered by code.
func (c *Catalog) ListAll(_ context.Context) ([]models.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := make([]models.Item, 0, len(c.items))
	for _, item := range c.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Code < items[j].Code })
	return items, nil
}

var _ repository.CatalogStore = (*Catalog)(nil)
