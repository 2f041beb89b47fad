package models

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound is returned when an item code does not resolve to a catalog item.
	ErrItemNotFound = errors.New("item not found")

	// ErrInsufficientStock is returned when a line asks for more than is on hand.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrConcurrentModification is returned when a stock update keeps losing
	// its compare-and-set race.
	ErrConcurrentModification = errors.New("concurrent modification detected")

	// ErrBillPersistenceFailed is returned when stock and ledger were committed
	// but the bill record could not be written. The sale needs reconciliation.
	ErrBillPersistenceFailed = errors.New("bill persistence failed")

	// ErrInvalidInput is returned for malformed submissions.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized is returned when the caller's role may not perform the action.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBillNotFound is returned when a bill sequence id is unknown.
	ErrBillNotFound = errors.New("bill not found")

	// ErrLedgerCleanupFailed is returned when a ledger batch was partly
	// written and the written entries could not be removed.
	ErrLedgerCleanupFailed = errors.New("ledger cleanup failed")
)

// ItemNotFoundError identifies the missing item code.
type ItemNotFoundError struct {
	ItemCode int64
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %d not found", e.ItemCode)
}

func (e *ItemNotFoundError) Unwrap() error {
	return ErrItemNotFound
}

// InsufficientStockError provides details about a stock shortage.
type InsufficientStockError struct {
	ItemCode  int64
	ItemName  string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for item %d (%s): available %d, requested %d",
		e.ItemCode, e.ItemName, e.Available, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

// ConcurrentModificationError reports an item whose stock stayed contested.
type ConcurrentModificationError struct {
	ItemCode int64
	Attempts int
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("item %d modified concurrently, gave up after %d attempts", e.ItemCode, e.Attempts)
}

func (e *ConcurrentModificationError) Unwrap() error {
	return ErrConcurrentModification
}

// BillPersistenceError carries the bill that could not be stored. Stock and
// ledger changes for it were kept.
type BillPersistenceError struct {
	Bill Bill
	Err  error
}

func (e *BillPersistenceError) Error() string {
	return fmt.Sprintf("bill for transaction %s not persisted: %v", e.Bill.TransactionID, e.Err)
}

func (e *BillPersistenceError) Unwrap() []error {
	return []error{ErrBillPersistenceFailed, e.Err}
}

// LedgerCleanupError lists ledger entries that may remain from a failed
// batch. They belong to no committed bill and must be reconciled.
type LedgerCleanupError struct {
	EntryIDs []string
	Err      error
}

func (e *LedgerCleanupError) Error() string {
	return fmt.Sprintf("%d ledger entries may be orphaned: %v", len(e.EntryIDs), e.Err)
}

func (e *LedgerCleanupError) Unwrap() []error {
	return []error{ErrLedgerCleanupFailed, e.Err}
}

// InvalidInputError names the offending field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// UnauthorizedError reports a role that may not perform an action.
type UnauthorizedError struct {
	Role   Role
	Action string
}

func (e *UnauthorizedError) Error() string {
	role := string(e.Role)
	if role == "" {
		role = "anonymous"
	}
	return fmt.Sprintf("role %s is not authorized to %s", role, e.Action)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// IsRetryable returns true if the error might succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
