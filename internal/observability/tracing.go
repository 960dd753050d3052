package observability

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	dbTracerName      = "line-event-logger/db"
	storageTracerName = "line-event-logger/storage"
)

type contextKey string

const (
	accountIDKey contextKey = "observability.account_id"
	requestIDKey contextKey = "observability.request_id"
	routeKey     contextKey = "observability.route"
	eventIDKey   contextKey = "observability.webhook_event_id"
)

// Span is the application-level tracing span contract.
type Span interface {
	End()
	RecordError(error)
}

type otelSpan struct {
	inner trace.Span
}

// StartDBSpan starts a database tracing span for one query operation.
func StartDBSpan(ctx context.Context, queryName, operation string) (context.Context, Span) {
	queryName = strings.TrimSpace(queryName)
	if queryName == "" {
		queryName = "unknown"
	}
	attrs := []attribute.KeyValue{
		attribute.String("db.system.name", "sqlite"),
		attribute.String("db.query_name", queryName),
		attribute.String("db.operation", strings.TrimSpace(operation)),
	}
	if accountID, ok := AccountIDFromContext(ctx); ok {
		attrs = append(attrs, attribute.String("line.account_id", accountID))
	}

	ctx, span := otel.Tracer(dbTracerName).Start(ctx, "db."+queryName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
	return ctx, otelSpan{inner: span}
}

// StartStorageSpan starts a span for one storage backend operation.
func StartStorageSpan(ctx context.Context, backend, operation string) (context.Context, Span) {
	ctx, span := otel.Tracer(storageTracerName).Start(ctx, "storage."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("storage.backend", backend),
			attribute.String("storage.operation", operation),
		),
	)
	return ctx, otelSpan{inner: span}
}

// WithAccount enriches context and current span with the owning account.
func WithAccount(ctx context.Context, accountID string) context.Context {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, accountIDKey, accountID)
	if span := trace.SpanFromContext(ctx); span != nil {
		span.SetAttributes(attribute.String("line.account_id", accountID))
	}
	return ctx
}

// WithWebhookEvent tags context and current span with the webhook event
// being processed.
func WithWebhookEvent(ctx context.Context, eventID string) context.Context {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return ctx
	}
	ctx = context.WithValue(ctx, eventIDKey, eventID)
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("line.webhook_event_id", eventID))
	return ctx
}

// WebhookEventIDFromContext extracts the webhook event id.
func WebhookEventIDFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(eventIDKey).(string)
	return value, ok && value != ""
}

// WithRequestMetadata enriches context and current span with request metadata.
func WithRequestMetadata(ctx context.Context, requestID, route string) context.Context {
	requestID = strings.TrimSpace(requestID)
	route = strings.TrimSpace(route)
	if requestID != "" {
		ctx = context.WithValue(ctx, requestIDKey, requestID)
	}
	if route != "" {
		ctx = context.WithValue(ctx, routeKey, route)
	}
	setSpanRequestAttributes(ctx, requestID, route)
	return ctx
}

// AccountIDFromContext extracts the owning account id.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(accountIDKey).(string)
	return value, ok && value != ""
}

// RequestIDFromContext extracts request id.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(requestIDKey).(string)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

// RouteFromContext extracts normalized route path.
func RouteFromContext(ctx context.Context) (string, bool) {
	value, ok := ctx.Value(routeKey).(string)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

func setSpanRequestAttributes(ctx context.Context, requestID, route string) {
	span := trace.SpanFromContext(ctx)
	if span == nil {
		return
	}
	attrs := make([]attribute.KeyValue, 0, 2)
	if requestID != "" {
		attrs = append(attrs, attribute.String("request.id", requestID))
	}
	if route != "" {
		attrs = append(attrs, attribute.String("http.route", route))
	}
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

func (s otelSpan) End() {
	if s.inner == nil {
		return
	}
	s.inner.End()
}

func (s otelSpan) RecordError(err error) {
	if s.inner == nil || err == nil {
		return
	}
	s.inner.RecordError(err)
	s.inner.SetStatus(codes.Error, err.Error())
}
