package observability

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

type contextField struct {
	key    string
	lookup func(context.Context) (string, bool)
}

var contextFields = []contextField{
	{key: "request_id", lookup: RequestIDFromContext},
	{key: "route", lookup: RouteFromContext},
	{key: "account_id", lookup: AccountIDFromContext},
	{key: "webhook_event_id", lookup: WebhookEventIDFromContext},
}

// contextHandler copies request, account and trace identifiers from the
// record's context onto the record.
type contextHandler struct {
	next slog.Handler
}

// WrapSlogHandler adds request, account, webhook event and trace fields to
// structured logs written with a *Context method.
func WrapSlogHandler(next slog.Handler) slog.Handler {
	if next == nil {
		next = slog.NewTextHandler(io.Discard, nil)
	}
	return contextHandler{next: next}
}

func (h contextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h contextHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, field := range contextFields {
		if value, ok := field.lookup(ctx); ok {
			record.AddAttrs(slog.String(field.key, value))
		}
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.next.Handle(ctx, record)
}

func (h contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return contextHandler{next: h.next.WithAttrs(attrs)}
}

func (h contextHandler) WithGroup(name string) slog.Handler {
	return contextHandler{next: h.next.WithGroup(name)}
}
