package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/dejobratic/orderbilling/internal/billing/domain"
	"github.com/dejobratic/orderbilling/internal/billing/ports"
	"github.com/dejobratic/orderbilling/internal/database"
	"github.com/dejobratic/orderbilling/internal/telemetry"
	"go.opentelemetry.io/otel/attribute"
)

type ObservableRepository struct {
	repo    ports.BillRepository
	metrics *database.Metrics
}

func NewObservableRepository(repo ports.BillRepository, metrics *database.Metrics) *ObservableRepository {
	return &ObservableRepository{
		repo:    repo,
		metrics: metrics,
	}
}

func (r *ObservableRepository) Create(ctx context.Context, bill domain.Bill) error {
	ctx, span := telemetry.StartSpan(ctx, "BillRepository.Create")
	defer span.End()

	telemetry.AddSpanAttributes(span,
		attribute.String("bill.id", bill.ID),
		attribute.String("order.id", bill.OrderID),
		attribute.String("operation", "create"),
	)

	start := time.Now()
	err := r.repo.Create(ctx, bill)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "create_bill", duration)

	// A duplicate is a skipped redelivery, not a store fault.
	if err != nil && !errors.Is(err, ports.ErrDuplicateOrder) {
		telemetry.RecordSpanError(span, err)
		return err
	}

	telemetry.SetSpanSuccess(span)
	return err
}

func (r *ObservableRepository) List(ctx context.Context) ([]domain.Bill, error) {
	ctx, span := telemetry.StartSpan(ctx, "BillRepository.List")
	defer span.End()

	telemetry.AddSpanAttributes(span, attribute.String("operation", "list"))

	start := time.Now()
	bills, err := r.repo.List(ctx)
	duration := time.Since(start).Seconds()

	r.metrics.RecordQuery(ctx, "list_bills", duration)

	if err != nil {
		telemetry.RecordSpanError(span, err)
		return nil, err
	}

	telemetry.AddSpanAttributes(span, attribute.Int("result.count", len(bills)))
	telemetry.SetSpanSuccess(span)
	return bills, nil
}
