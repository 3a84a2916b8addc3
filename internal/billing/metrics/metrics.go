package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	eventsProcessedTotal metric.Int64Counter
	eventsSkippedTotal   metric.Int64Counter
	processingDuration   metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.eventsProcessedTotal, err = meter.Int64Counter(
		"billing_events_processed_total",
		metric.WithDescription("Total order events processed by the billing consumer"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create billing_events_processed_total counter: %w", err)
	}

	m.eventsSkippedTotal, err = meter.Int64Counter(
		"billing_events_skipped_total",
		metric.WithDescription("Order events skipped without creating a bill"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create billing_events_skipped_total counter: %w", err)
	}

	m.processingDuration, err = meter.Float64Histogram(
		"billing_event_processing_duration_seconds",
		metric.WithDescription("Duration of per-event billing processing"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create billing_event_processing_duration histogram: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordEventProcessed(ctx context.Context, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.eventsProcessedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

func (m *Metrics) RecordEventSkipped(ctx context.Context, reason string) {
	m.eventsSkippedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

func (m *Metrics) RecordProcessingDuration(ctx context.Context, durationSeconds float64) {
	m.processingDuration.Record(ctx, durationSeconds)
}
