package models

import "github.com/shopspring/decimal"

// Item is a catalog record. QuantityOnHand never goes below zero once a
// bill has been committed.
type Item struct {
	Code           int64           `json:"code"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	QuantityOnHand int             `json:"quantity_on_hand"`
}

// NewItem carries the attributes supplied when adding an item to the catalog.
// The code is assigned by the store.
type NewItem struct {
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	InitialQuantity int             `json:"initial_quantity"`
}
