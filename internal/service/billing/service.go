package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/supermarket/internal/domain/models"
	"github.com/mamadbah2/supermarket/internal/repository"
)

// DefaultMaxAttempts bounds the compare-and-set retries per line.
const DefaultMaxAttempts = 3

// Service is the only writer of the catalog stock, the sales ledger and the
// bill store during a sale.
type Service struct {
	catalog     repository.CatalogStore
	ledger      repository.SalesLedger
	bills       repository.BillStore
	publisher   EventPublisher
	logger      *zap.Logger
	now         func() time.Time
	newID       func() string
	maxAttempts int
}

// Option customizes a Service.
type Option func(*Service)

// WithPublisher sets the sink for BillCommitted events.
func WithPublisher(p EventPublisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithMaxAttempts overrides DefaultMaxAttempts. Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService wires the engine to its stores.
func NewService(catalog repository.CatalogStore, ledger repository.SalesLedger, bills repository.BillStore, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		catalog:     catalog,
		ledger:      ledger,
		bills:       bills,
		publisher:   nopPublisher{},
		logger:      logger,
		now:         time.Now,
		newID:       uuid.NewString,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitBill sells the requested lines as one unit of work.
//
// Lines are applied in the order given, so a later line for the same item
// sees the stock left by the earlier one. If any line fails, or the ledger
// write fails, every stock decrement already applied is reversed and nothing
// is recorded. If only the bill write fails, stock and ledger stay committed
// and a *models.BillPersistenceError is returned for reconciliation.
func (s *Service) SubmitBill(ctx context.Context, role models.Role, req models.BillRequest) (*models.Bill, error) {
	if err := role.Require("submit bills", models.RoleClerk); err != nil {
		s.logger.Warn("bill submission refused", zap.String("role", string(role)))
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	txID := s.newID()
	now := s.now().UTC()
	logger := s.logger.With(zap.String("transaction_id", txID))

	var undo compensationLog
	entries := make([]models.SalesLedgerEntry, 0, len(req.Lines))
	lines := make([]models.BillLineItem, 0, len(req.Lines))

	for _, line := range req.Lines {
		item, err := s.decrementStock(ctx, logger, line)
		if err != nil {
			return nil, s.abort(ctx, logger, &undo, err)
		}

		code, qty := line.ItemCode, line.Quantity
		undo.record(fmt.Sprintf("restock item %d", code), func(ctx context.Context) error {
			return s.catalog.IncrementQuantity(ctx, code, qty)
		})

		entries = append(entries, models.SalesLedgerEntry{
			ID:            s.newID(),
			TransactionID: txID,
			ItemCode:      code,
			ItemName:      item.Name,
			UnitPrice:     line.UnitPrice,
			Quantity:      qty,
			Timestamp:     now,
		})
		lines = append(lines, models.BillLineItem{
			ItemCode:  code,
			Name:      item.Name,
			Quantity:  qty,
			UnitPrice: line.UnitPrice,
		})
	}

	if _, err := s.ledger.AppendBatch(ctx, entries); err != nil {
		return nil, s.abort(ctx, logger, &undo, fmt.Errorf("append sales ledger: %w", err))
	}

	bill := models.Bill{
		TransactionID: txID,
		Items:         lines,
		TotalCost:     models.ComputeTotal(lines),
		ClientTotal:   req.ClientTotal,
		Date:          now,
	}
	if req.ClientTotal != nil && !req.ClientTotal.Equal(bill.TotalCost) {
		logger.Warn("client subtotal differs from computed total",
			zap.String("client_total", req.ClientTotal.String()),
			zap.String("total", bill.TotalCost.String()))
	}

	seq, err := s.bills.Append(ctx, bill)
	if err != nil {
		logger.Error("bill not persisted after stock and ledger commit, reconciliation required",
			zap.Int("lines", len(lines)),
			zap.String("total", bill.TotalCost.String()),
			zap.Error(err))
		return nil, &models.BillPersistenceError{Bill: bill, Err: err}
	}
	bill.SequenceID = seq

	s.publish(ctx, logger, bill)

	logger.Info("bill committed",
		zap.Int64("sequence_id", seq),
		zap.Int("lines", len(lines)),
		zap.String("total", bill.TotalCost.String()))
	return &bill, nil
}

// Receipt returns a committed bill for reprinting.
func (s *Service) Receipt(ctx context.Context, role models.Role, sequenceID int64) (models.Bill, error) {
	if err := role.Require("print receipts", models.RoleClerk); err != nil {
		return models.Bill{}, err
	}
	bill, err := s.bills.Get(ctx, sequenceID)
	if err != nil {
		return models.Bill{}, fmt.Errorf("load bill %d: %w", sequenceID, err)
	}
	return bill, nil
}

// decrementStock reads the item and writes the reduced quantity with a
// compare-and-set, re-reading on conflict up to maxAttempts times.
func (s *Service) decrementStock(ctx context.Context, logger *zap.Logger, line models.BillLine) (models.Item, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		item, err := s.catalog.Get(ctx, line.ItemCode)
		if err != nil {
			return models.Item{}, fmt.Errorf("load item %d: %w", line.ItemCode, err)
		}

		remaining := item.QuantityOnHand - line.Quantity
		if remaining < 0 {
			return models.Item{}, &models.InsufficientStockError{
				ItemCode:  item.Code,
				ItemName:  item.Name,
				Available: item.QuantityOnHand,
				Requested: line.Quantity,
			}
		}

		ok, err := s.catalog.CompareAndSetQuantity(ctx, item.Code, item.QuantityOnHand, remaining)
		if err != nil {
			return models.Item{}, fmt.Errorf("update stock of item %d: %w", item.Code, err)
		}
		if ok {
			return item, nil
		}

		logger.Debug("stock changed underneath, retrying",
			zap.Int64("item_code", item.Code),
			zap.Int("attempt", attempt))
	}

	return models.Item{}, &models.ConcurrentModificationError{ItemCode: line.ItemCode, Attempts: s.maxAttempts}
}

// abort reverses the recorded steps and returns cause, joined with any
// rollback failure. Rollback ignores cancellation of the request context.
func (s *Service) abort(ctx context.Context, logger *zap.Logger, undo *compensationLog, cause error) error {
	steps := undo.len()
	var orphaned *models.LedgerCleanupError
	if errors.As(cause, &orphaned) {
		logger.Error("ledger entries left by failed submission, reconciliation required",
			zap.Strings("entry_ids", orphaned.EntryIDs),
			zap.Error(cause))
	}
	if err := undo.rollback(context.WithoutCancel(ctx)); err != nil {
		logger.Error("rollback incomplete, catalog needs reconciliation",
			zap.Int("steps", steps),
			zap.NamedError("cause", cause),
			zap.Error(err))
		return fmt.Errorf("%w (rollback: %w)", cause, err)
	}

	logger.Info("bill submission rolled back", zap.Int("steps", steps), zap.Error(cause))
	return cause
}

func (s *Service) publish(ctx context.Context, logger *zap.Logger, bill models.Bill) {
	event := models.BillCommitted{
		SequenceID:    bill.SequenceID,
		TransactionID: bill.TransactionID,
		Lines:         len(bill.Items),
		Units:         bill.TotalQuantity(),
		Total:         bill.TotalCost,
		OccurredAt:    bill.Date,
	}
	if err := s.publisher.PublishBillCommitted(ctx, event); err != nil {
		logger.Warn("failed to publish bill committed event", zap.Error(err))
	}
}

func validateRequest(req models.BillRequest) error {
	if len(req.Lines) == 0 {
		return &models.InvalidInputError{Field: "lines", Reason: "at least one line is required"}
	}
	for i, line := range req.Lines {
		switch {
		case line.ItemCode <= 0:
			return &models.InvalidInputError{Field: fmt.Sprintf("lines[%d].item_code", i), Reason: "must be positive"}
		case line.Quantity <= 0:
			return &models.InvalidInputError{Field: fmt.Sprintf("lines[%d].quantity", i), Reason: "must be a positive integer"}
		case line.UnitPrice.IsNegative():
			return &models.InvalidInputError{Field: fmt.Sprintf("lines[%d].unit_price", i), Reason: "must not be negative"}
		}
	}
	return nil
}
