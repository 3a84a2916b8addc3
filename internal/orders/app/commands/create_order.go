package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dejobratic/orderbilling/internal/events"
	"github.com/dejobratic/orderbilling/internal/orders/domain"
	"github.com/dejobratic/orderbilling/internal/orders/ports"
)

type CreateOrderCommand struct {
	ID          string
	CustomerID  string
	AmountCents int64
}

type CommandHandler interface {
	Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error)
}

// CreateOrderCommandHandler persists a new order and then announces it
// on the event channel. The publish is strictly sequenced after a
// successful insert: a persistence failure yields zero published
// events for the call.
type CreateOrderCommandHandler struct {
	repo   ports.OrderRepository
	events ports.EventBus
	logger *slog.Logger
}

func NewCreateOrderCommandHandler(
	repo ports.OrderRepository,
	events ports.EventBus,
	logger *slog.Logger,
) *CreateOrderCommandHandler {
	return &CreateOrderCommandHandler{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	order := domain.Order{
		ID:          cmd.ID,
		CustomerID:  cmd.CustomerID,
		AmountCents: cmd.AmountCents,
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	if err := h.repo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	event := events.OrderCreated{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		AmountCents: order.AmountCents,
	}

	if err := h.events.PublishOrderCreated(ctx, event); err != nil {
		// The order is durable but the event is lost. There is no
		// outbox and no compensating delete, so the gap is surfaced in
		// the logs only and the caller still gets a success.
		h.logger.ErrorContext(ctx, "order stored but event publish failed",
			"order_id", order.ID,
			"error", err,
		)
	}

	return &order, nil
}
