package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/dejobratic/orderbilling/internal/orders/domain"
	"github.com/dejobratic/orderbilling/internal/orders/metrics"
	"github.com/dejobratic/orderbilling/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableCommandHandler struct {
	handler CommandHandler
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewObservableCommandHandler(handler CommandHandler, logger *slog.Logger, metrics *metrics.Metrics) *ObservableCommandHandler {
	return &ObservableCommandHandler{
		handler: handler,
		logger:  logger,
		metrics: metrics,
	}
}

func (o *ObservableCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "CreateOrderCommand.Handle")
	defer span.End()

	start := time.Now()
	var success bool
	defer func() {
		duration := time.Since(start).Seconds()
		o.metrics.RecordOrderCreationDuration(ctx, duration)
		o.metrics.RecordOrderCreated(ctx, success)
	}()

	o.logger.InfoContext(ctx, "creating order",
		"order_id", cmd.ID,
		"customer_id", cmd.CustomerID,
		"amount_cents", cmd.AmountCents,
	)

	order, err := o.handler.Handle(ctx, cmd)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		o.logger.ErrorContext(ctx, "failed to create order",
			"error", err,
			"order_id", cmd.ID,
		)
		return nil, err
	}

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", order.ID),
		attribute.String("order.customer_id", order.CustomerID),
		attribute.Int64("order.amount_cents", order.AmountCents),
	)

	o.logger.InfoContext(ctx, "order created successfully",
		"order_id", order.ID,
		"customer_id", order.CustomerID,
	)

	success = true
	telemetry.SetSpanSuccess(span)

	return order, nil
}
