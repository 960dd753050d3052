package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type ingestionMetrics struct {
	deliveries metric.Int64Counter
	events     metric.Int64Counter
	messages   metric.Int64Counter
	failures   metric.Int64Counter
	files      metric.Int64Counter
}

func newIngestionMetrics() ingestionMetrics {
	meter := otel.Meter("github.com/JT-427/line-event-logger/internal/app/services")
	deliveries, _ := meter.Int64Counter("line.ingestion.deliveries")
	events, _ := meter.Int64Counter("line.ingestion.events")
	messages, _ := meter.Int64Counter("line.ingestion.messages")
	failures, _ := meter.Int64Counter("line.ingestion.failures")
	files, _ := meter.Int64Counter("line.ingestion.files")
	return ingestionMetrics{
		deliveries: deliveries,
		events:     events,
		messages:   messages,
		failures:   failures,
		files:      files,
	}
}

func (m ingestionMetrics) recordDelivery(ctx context.Context, outcome string) {
	m.deliveries.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m ingestionMetrics) recordEvent(ctx context.Context, eventType string) {
	m.events.Add(ctx, 1, metric.WithAttributes(attribute.String("event_type", eventType)))
}

func (m ingestionMetrics) recordMessage(ctx context.Context, messageType string) {
	m.messages.Add(ctx, 1, metric.WithAttributes(attribute.String("message_type", messageType)))
}

func (m ingestionMetrics) recordFailure(ctx context.Context, stage Stage) {
	m.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", string(stage))))
}

func (m ingestionMetrics) recordFile(ctx context.Context, messageType, outcome string) {
	m.files.Add(ctx, 1, metric.WithAttributes(
		attribute.String("message_type", messageType),
		attribute.String("outcome", outcome),
	))
}
