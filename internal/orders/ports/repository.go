package ports

import (
	"context"

	"github.com/dejobratic/orderbilling/internal/orders/domain"
)

// OrderRepository exposes persistence operations required by the application layer.
type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) error
	List(ctx context.Context) ([]domain.Order, error)
}
