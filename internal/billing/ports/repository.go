package ports

import (
	"context"
	"errors"

	"github.com/dejobratic/orderbilling/internal/billing/domain"
)

// BillRepository exposes persistence operations required by the consumer.
type BillRepository interface {
	Create(ctx context.Context, bill domain.Bill) error
	List(ctx context.Context) ([]domain.Bill, error)
}

// ErrDuplicateOrder is returned when a bill for the same originating
// order already exists. Redelivered events hit this instead of
// producing a second bill.
var ErrDuplicateOrder = errors.New("bill already exists for order")
