package adapters

import (
	"context"
	"time"

	"github.com/dejobratic/orderbilling/internal/events"
	"github.com/dejobratic/orderbilling/internal/nats"
	"github.com/dejobratic/orderbilling/internal/orders/ports"
	"github.com/dejobratic/orderbilling/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableEventBus struct {
	bus     ports.EventBus
	metrics *nats.Metrics
}

func NewObservableEventBus(bus ports.EventBus, metrics *nats.Metrics) *ObservableEventBus {
	return &ObservableEventBus{
		bus:     bus,
		metrics: metrics,
	}
}

func (e *ObservableEventBus) PublishOrderCreated(ctx context.Context, event events.OrderCreated) error {
	ctx, span := telemetry.StartSpan(ctx, "EventBus.PublishOrderCreated")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", event.ID),
		attribute.String("event.type", "order.created"),
	)

	start := time.Now()
	err := e.bus.PublishOrderCreated(ctx, event)
	duration := time.Since(start).Seconds()

	e.metrics.RecordPublish(ctx, "order.created", duration, err == nil)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return nil
}
