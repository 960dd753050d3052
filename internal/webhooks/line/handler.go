// Package line receives LINE Messaging API webhook deliveries.
package line

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	appservices "github.com/JT-427/line-event-logger/internal/app/services"
)

const (
	// SignatureHeader carries the base64 HMAC-SHA256 of the body.
	SignatureHeader = "X-Line-Signature"
	maxPayloadBytes = 1 << 20
)

// Ingestor is the pipeline a delivery is handed to.
type Ingestor interface {
	Ingest(ctx context.Context, cmd appservices.IngestCommand) (appservices.IngestResult, error)
}

// Handler maps deliveries onto the ingestion pipeline.
type Handler struct {
	ingest Ingestor
	log    *slog.Logger
}

func NewHandler(ingest Ingestor, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{ingest: ingest, log: log}
}

// Handle answers 200 once every event is stored or known, 403 for a bad
// signature, 400 for a malformed body and 500 when an event was lost.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid payload"})
		return nil
	}
	if len(body) > maxPayloadBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"detail": "payload too large"})
		return nil
	}

	result, err := h.ingest.Ingest(ctx, appservices.IngestCommand{
		SignatureHeader: r.Header.Get(SignatureHeader),
		Body:            body,
	})

	switch appservices.ClassifyIngestError(err) {
	case appservices.IngestErrorInvalidSignature:
		h.log.WarnContext(ctx, "line_webhook_rejected", "reason", "invalid_signature")
		writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Invalid signature"})
		return nil
	case appservices.IngestErrorInvalidPayload:
		h.log.WarnContext(ctx, "line_webhook_rejected", "reason", "invalid_payload", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "invalid payload"})
		return nil
	}
	if err != nil {
		h.log.ErrorContext(ctx, "line_webhook_failed",
			"account_id", result.AccountID,
			"events", result.Events,
			"lost", result.Lost(),
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "events not stored"})
		return nil
	}

	h.log.InfoContext(ctx, "line_webhook_processed",
		"account_id", result.AccountID,
		"events", result.Events,
		"messages", result.Messages,
		"files", result.Files,
		"failures", len(result.Failures),
	)
	writeJSON(w, http.StatusOK, map[string]string{"message": "OK"})
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
