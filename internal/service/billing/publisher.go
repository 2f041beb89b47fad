package billing

import (
	"context"

	"github.com/mamadbah2/supermarket/internal/domain/models"
)

// EventPublisher receives committed bills.
type EventPublisher interface {
	PublishBillCommitted(ctx context.Context, event models.BillCommitted) error
}

type nopPublisher struct{}

func (nopPublisher) PublishBillCommitted(context.Context, models.BillCommitted) error {
	return nil
}
