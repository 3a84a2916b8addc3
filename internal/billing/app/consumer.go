package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dejobratic/orderbilling/internal/billing/domain"
	"github.com/dejobratic/orderbilling/internal/billing/metrics"
	"github.com/dejobratic/orderbilling/internal/billing/ports"
	"github.com/dejobratic/orderbilling/internal/events"
	"github.com/dejobratic/orderbilling/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

// Consumer is the long-lived subscription loop that turns order
// created events into bills. Processing is strictly sequential: one
// event is fully handled before the next is read from the channel.
type Consumer struct {
	source  ports.EventSource
	bills   ports.BillRepository
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewConsumer(
	source ports.EventSource,
	bills ports.BillRepository,
	logger *slog.Logger,
	metrics *metrics.Metrics,
) *Consumer {
	return &Consumer{
		source:  source,
		bills:   bills,
		logger:  logger,
		metrics: metrics,
	}
}

// Run consumes deliveries until ctx is canceled or the subscription is
// severed. A single bad message never stops the loop: malformed
// deliveries and duplicate redeliveries are logged and skipped.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "billing consumer started")

	for {
		event, err := c.source.Next(ctx)
		if err != nil {
			switch {
			case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
				c.logger.InfoContext(ctx, "billing consumer stopping", "reason", err)
				return nil
			case errors.Is(err, ports.ErrMalformedEvent):
				c.logger.WarnContext(ctx, "skipping malformed event", "error", err)
				c.metrics.RecordEventSkipped(ctx, "malformed")
				continue
			default:
				return fmt.Errorf("event subscription severed: %w", err)
			}
		}

		c.handle(ctx, event)
	}
}

func (c *Consumer) handle(ctx context.Context, event events.OrderCreated) {
	ctx, span := telemetry.StartSpan(ctx, "Consumer.HandleOrderCreated")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("order.id", event.ID),
		attribute.String("order.customer_id", event.CustomerID),
	)

	start := time.Now()
	defer func() {
		c.metrics.RecordProcessingDuration(ctx, time.Since(start).Seconds())
	}()

	bill := domain.NewBill(event)

	err := c.bills.Create(ctx, bill)
	switch {
	case errors.Is(err, ports.ErrDuplicateOrder):
		c.logger.InfoContext(ctx, "duplicate delivery, bill already exists",
			"order_id", event.ID,
		)
		c.metrics.RecordEventSkipped(ctx, "duplicate")
		telemetry.AddSpanAttributes(span, attribute.Bool("billing.duplicate", true))
		telemetry.SetSpanSuccess(span)
	case err != nil:
		// At-least-once channel: there is no local retry, recovering
		// this write depends on the channel redelivering the event.
		c.logger.ErrorContext(ctx, "failed to persist bill",
			"order_id", event.ID,
			"error", err,
		)
		c.metrics.RecordEventProcessed(ctx, false)
		telemetry.RecordSpanError(span, err)
	default:
		c.logger.InfoContext(ctx, "bill created",
			"bill_id", bill.ID,
			"order_id", event.ID,
			"customer_id", bill.CustomerID,
			"amount_cents", bill.AmountCents,
		)
		c.metrics.RecordEventProcessed(ctx, true)
		telemetry.SetSpanSuccess(span)
	}
}
