package app

import (
	"context"
	"log/slog"

	"github.com/dejobratic/orderbilling/internal/orders/app/commands"
	"github.com/dejobratic/orderbilling/internal/orders/domain"
	"github.com/dejobratic/orderbilling/internal/orders/metrics"
	"github.com/dejobratic/orderbilling/internal/orders/ports"
)

// Service bundles use cases for handling orders via the API.
type Service struct {
	repo               ports.OrderRepository
	createOrderHandler commands.CommandHandler
}

// NewService wires required dependencies.
func NewService(
	repo ports.OrderRepository,
	events ports.EventBus,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Service {
	coreHandler := commands.NewCreateOrderCommandHandler(repo, events, logger)
	observableHandler := commands.NewObservableCommandHandler(coreHandler, logger, metrics)

	return &Service{
		repo:               repo,
		createOrderHandler: observableHandler,
	}
}

// CreateOrderInput captures payload for creating an order. The
// identifier is supplied by the caller and trusted.
type CreateOrderInput struct {
	ID          string `json:"id"`
	CustomerID  string `json:"customer_id"`
	AmountCents int64  `json:"amount_cents"`
}

// CreateOrder orchestrates order creation and event emission.
func (s *Service) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	cmd := commands.CreateOrderCommand{
		ID:          input.ID,
		CustomerID:  input.CustomerID,
		AmountCents: input.AmountCents,
	}
	return s.createOrderHandler.Handle(ctx, cmd)
}

// ListOrders returns all persisted orders.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}
