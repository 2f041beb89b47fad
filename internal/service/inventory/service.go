package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository"
)

// Service manages the catalog outside of sales.
type Service struct {
	catalog repository.CatalogStore
	logger  *zap.Logger
}

// NewService wires a new inventory service instance.
func NewService(catalog repository.CatalogStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{catalog: catalog, logger: logger}
}

// ListItems returns the whole catalog ordered by code.
func (s *Service) ListItems(ctx context.Context, role models.Role) ([]models.Item, error) {
	if err := role.Require("list items", models.RoleClerk, models.RoleManager); err != nil {
		return nil, err
	}
	items, err := s.catalog.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return items, nil
}

// GetItem looks up one item by code.
func (s *Service) GetItem(ctx context.Context, role models.Role, code int64) (models.Item, error) {
	if err := role.Require("view items", models.RoleClerk, models.RoleManager); err != nil {
		return models.Item{}, err
	}
	if code <= 0 {
		return models.Item{}, &models.InvalidInputError{Field: "code", Reason: "must be positive"}
	}
	item, err := s.catalog.Get(ctx, code)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to load item %d: %w", code, err)
	}
	return item, nil
}

// AddItem registers a new item and returns it with its assigned code.
func (s *Service) AddItem(ctx context.Context, role models.Role, input models.NewItem) (models.Item, error) {
	if err := role.Require("add items", models.RoleManager); err != nil {
		return models.Item{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	if input.Name == "" {
		return models.Item{}, &models.InvalidInputError{Field: "name", Reason: "is required"}
	}
	if err := validateStock(input.UnitPrice, input.InitialQuantity, "initial_quantity"); err != nil {
		return models.Item{}, err
	}

	item, err := s.catalog.Create(ctx, input)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info("item added",
		zap.Int64("code", item.Code),
		zap.String("name", item.Name),
		zap.Int("quantity", item.QuantityOnHand))
	return item, nil
}

// UpdateItem overwrites price and quantity, as done when restocking.
func (s *Service) UpdateItem(ctx context.Context, role models.Role, code int64, price decimal.Decimal, quantity int) (models.Item, error) {
	if err := role.Require("update items", models.RoleManager); err != nil {
		return models.Item{}, err
	}
	if code <= 0 {
		return models.Item{}, &models.InvalidInputError{Field: "code", Reason: "must be positive"}
	}
	if err := validateStock(price, quantity, "quantity"); err != nil {
		return models.Item{}, err
	}

	item, err := s.catalog.UpdatePriceAndQuantity(ctx, code, price, quantity)
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to update item %d: %w", code, err)
	}

	s.logger.Info("item updated",
		zap.Int64("code", item.Code),
		zap.String("unit_price", item.UnitPrice.String()),
		zap.Int("quantity", item.QuantityOnHand))
	return item, nil
}

func validateStock(price decimal.Decimal, quantity int, quantityField string) error {
	if price.IsNegative() {
		return &models.InvalidInputError{Field: "unit_price", Reason: "must not be negative"}
	}
	if quantity < 0 {
		return &models.InvalidInputError{Field: quantityField, Reason: "must not be negative"}
	}
	return nil
}
