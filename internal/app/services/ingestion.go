package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JT-427/line-event-logger/internal/app/ports"
	"github.com/JT-427/line-event-logger/internal/observability"
)

var (
	// ErrInvalidSignature indicates the delivery signature did not match the channel secret.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrInvalidPayload indicates a body or event that is not valid webhook JSON.
	ErrInvalidPayload = errors.New("invalid payload")
	// ErrPersistence indicates an event or message could not be written.
	ErrPersistence = errors.New("persistence failure")
	// ErrUpload indicates an attachment could not be fetched or stored.
	ErrUpload = errors.New("upload failure")
)

// Stage names the pipeline step an event failed in.
type Stage string

const (
	StageParse          Stage = "parse"
	StagePersistEvent   Stage = "persist_event"
	StageFetch          Stage = "fetch"
	StageUpload         Stage = "upload"
	StagePersistMessage Stage = "persist_message"
)

// IngestErrorKind classifies ingestion failures for transport-specific mapping.
type IngestErrorKind string

const (
	IngestErrorUnknown          IngestErrorKind = "unknown"
	IngestErrorInvalidSignature IngestErrorKind = "invalid_signature"
	IngestErrorInvalidPayload   IngestErrorKind = "invalid_payload"
	IngestErrorPersistence      IngestErrorKind = "persistence"
	IngestErrorUpload           IngestErrorKind = "upload"
)

// IngestCommand is transport-agnostic webhook ingestion input.
type IngestCommand struct {
	SignatureHeader string
	Body            []byte
}

// EventFailure records one event that did not make it through the pipeline.
type EventFailure struct {
	EventID string
	Stage   Stage
	Err     error
}

// Duplicate reports whether the event or message was already stored.
func (f EventFailure) Duplicate() bool {
	return errors.Is(f.Err, ports.ErrDuplicate)
}

// IngestResult summarizes one delivery.
type IngestResult struct {
	AccountID string
	Events    int
	Messages  int
	Files     int
	Failures  []EventFailure
}

// Lost counts failures that left an event or message unstored for a reason
// other than a redelivery.
func (r IngestResult) Lost() int {
	lost := 0
	for _, failure := range r.Failures {
		if (failure.Stage == StagePersistEvent || failure.Stage == StagePersistMessage) && !failure.Duplicate() {
			lost++
		}
	}
	return lost
}

// IngestService verifies deliveries and records their events and messages.
type IngestService struct {
	channelSecret string
	accountID     string
	stores        ports.IngestionStoreFactory
	fetcher       ports.ContentFetcher
	storage       ports.FileStorage
	publisher     ports.MessagePublisher
	log           *slog.Logger
	metrics       ingestionMetrics
}

// IngestOption customizes an IngestService.
type IngestOption func(*IngestService)

// WithPublisher forwards every stored message to publisher.
func WithPublisher(publisher ports.MessagePublisher) IngestOption {
	return func(s *IngestService) {
		s.publisher = publisher
	}
}

func WithLogger(log *slog.Logger) IngestOption {
	return func(s *IngestService) {
		if log != nil {
			s.log = log
		}
	}
}

// NewIngestService constructs the ingestion pipeline. channelID is the owning
// account; when empty each delivery's destination is used instead.
func NewIngestService(channelSecret, channelID string, stores ports.IngestionStoreFactory, fetcher ports.ContentFetcher, storage ports.FileStorage, opts ...IngestOption) *IngestService {
	s := &IngestService{
		channelSecret: channelSecret,
		accountID:     strings.TrimSpace(channelID),
		stores:        stores,
		fetcher:       fetcher,
		storage:       storage,
		log:           slog.Default(),
		metrics:       newIngestionMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ClassifyIngestError classifies a returned ingestion error.
func ClassifyIngestError(err error) IngestErrorKind {
	switch {
	case err == nil:
		return IngestErrorUnknown
	case errors.Is(err, ErrInvalidSignature):
		return IngestErrorInvalidSignature
	case errors.Is(err, ErrInvalidPayload):
		return IngestErrorInvalidPayload
	case errors.Is(err, ErrPersistence):
		return IngestErrorPersistence
	case errors.Is(err, ErrUpload):
		return IngestErrorUpload
	default:
		return IngestErrorUnknown
	}
}

// Ingest verifies the delivery and processes its events in order. A failing
// event is recorded in the result and does not stop the ones after it. The
// returned error is non-nil when the delivery was rejected or when events were
// lost and the platform should redeliver.
func (s *IngestService) Ingest(ctx context.Context, cmd IngestCommand) (IngestResult, error) {
	if !VerifySignature(s.channelSecret, cmd.Body, cmd.SignatureHeader) {
		s.metrics.recordDelivery(ctx, "rejected")
		return IngestResult{}, ErrInvalidSignature
	}

	var delivery webhookDelivery
	if err := json.Unmarshal(cmd.Body, &delivery); err != nil {
		s.metrics.recordDelivery(ctx, "invalid")
		return IngestResult{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	result := IngestResult{AccountID: s.accountID}
	if result.AccountID == "" {
		result.AccountID = strings.TrimSpace(delivery.Destination)
	}
	ctx = observability.WithAccount(ctx, result.AccountID)

	if len(delivery.Events) == 0 {
		s.metrics.recordDelivery(ctx, "empty")
		return result, nil
	}

	store, err := s.stores.Open()
	if err != nil {
		s.metrics.recordDelivery(ctx, "failed")
		return result, fmt.Errorf("%w: open store: %w", ErrPersistence, err)
	}
	defer func() {
		_ = store.Close()
	}()

	for _, raw := range delivery.Events {
		failure := s.ingestEvent(ctx, store, delivery.Destination, result.AccountID, raw, &result)
		if failure == nil {
			continue
		}
		s.metrics.recordFailure(ctx, failure.Stage)
		result.Failures = append(result.Failures, *failure)
		if failure.Duplicate() {
			s.log.InfoContext(ctx, "line_event_duplicate", "event_id", failure.EventID, "stage", failure.Stage)
			continue
		}
		s.log.WarnContext(ctx, "line_event_failed", "event_id", failure.EventID, "stage", failure.Stage, "error", failure.Err)
	}

	if lost := result.Lost(); lost > 0 {
		s.metrics.recordDelivery(ctx, "failed")
		return result, fmt.Errorf("%w: %d of %d events not stored", ErrPersistence, lost, len(delivery.Events))
	}
	s.metrics.recordDelivery(ctx, "accepted")
	return result, nil
}

func (s *IngestService) ingestEvent(ctx context.Context, store ports.IngestionStore, destination, accountID string, raw json.RawMessage, result *IngestResult) *EventFailure {
	var event webhookEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return &EventFailure{Stage: StageParse, Err: fmt.Errorf("%w: %v", ErrInvalidPayload, err)}
	}
	eventID := event.eventID(raw)
	ctx = observability.WithWebhookEvent(ctx, eventID)
	sentAt := time.UnixMilli(event.Timestamp).UTC()

	record := ports.EventRecord{
		AccountID:      accountID,
		EventID:        eventID,
		Destination:    destination,
		EventType:      event.Type,
		EventTimestamp: sentAt.Format(time.RFC3339Nano),
		EventTSMs:      event.Timestamp,
		SourceJSON:     rawOrEmptyObject(event.Source),
		RawEventJSON:   string(raw),
	}
	if message := rawOrEmptyObject(event.Message); message != "{}" {
		record.MessageJSON = &message
	}
	if err := store.AppendEvent(ctx, record); err != nil {
		return &EventFailure{EventID: eventID, Stage: StagePersistEvent, Err: fmt.Errorf("%w: %w", ErrPersistence, err)}
	}
	result.Events++
	s.metrics.recordEvent(ctx, event.Type)

	if event.Type != "message" {
		return nil
	}

	message, failure := s.buildMessage(ctx, event, accountID, sentAt)
	if failure != nil {
		failure.EventID = eventID
		return failure
	}
	if message.File != nil {
		result.Files++
	}

	if err := store.SaveMessage(ctx, message); err != nil {
		if message.File != nil {
			s.storage.Delete(ctx, message.File.ID)
		}
		return &EventFailure{EventID: eventID, Stage: StagePersistMessage, Err: fmt.Errorf("%w: %w", ErrPersistence, err)}
	}
	result.Messages++
	s.metrics.recordMessage(ctx, message.MessageType)

	if s.publisher != nil {
		if err := s.publisher.PublishMessage(ctx, message); err != nil {
			s.log.WarnContext(ctx, "line_message_publish_failed", "message_id", message.MessageID, "error", err)
		}
	}
	return nil
}

func (s *IngestService) buildMessage(ctx context.Context, event webhookEvent, accountID string, sentAt time.Time) (ports.MessageRecord, *EventFailure) {
	var msg messagePayload
	if err := json.Unmarshal(event.Message, &msg); err != nil || msg.ID == "" {
		if err == nil {
			err = errors.New("message has no id")
		}
		return ports.MessageRecord{}, &EventFailure{Stage: StageParse, Err: fmt.Errorf("%w: %v", ErrInvalidPayload, err)}
	}
	var source eventSource
	if len(event.Source) > 0 {
		if err := json.Unmarshal(event.Source, &source); err != nil {
			return ports.MessageRecord{}, &EventFailure{Stage: StageParse, Err: fmt.Errorf("%w: source: %v", ErrInvalidPayload, err)}
		}
	}

	record := ports.MessageRecord{
		AccountID:   accountID,
		MessageID:   msg.ID,
		ChatType:    source.Type,
		ChatID:      source.chatID(),
		MessageType: msg.Type,
		SenderID:    source.UserID,
		Timestamp:   sentAt,
		RawJSON:     string(event.Message),
	}

	switch {
	case msg.Type == messageText:
		record.Text = msg.Text
	case msg.Type == messageSticker:
		record.StickerPackageID = msg.PackageID
		record.StickerID = msg.StickerID
	case msg.Type == messageLocation:
		location := &ports.MessageLocation{Title: msg.Title, Address: msg.Address}
		if msg.Latitude != nil {
			location.Latitude = *msg.Latitude
		}
		if msg.Longitude != nil {
			location.Longitude = *msg.Longitude
		}
		record.Location = location
	case isFileBearing(msg.Type):
		file, failure := s.storeAttachment(ctx, msg)
		if failure != nil {
			return ports.MessageRecord{}, failure
		}
		record.File = file
	}
	return record, nil
}

func (s *IngestService) storeAttachment(ctx context.Context, msg messagePayload) (*ports.MessageFile, *EventFailure) {
	content, err := s.fetcher.FetchContent(ctx, msg.ID)
	if err != nil {
		s.metrics.recordFile(ctx, msg.Type, "fetch_failed")
		return nil, &EventFailure{Stage: StageFetch, Err: fmt.Errorf("%w: fetch %s: %w", ErrUpload, msg.ID, err)}
	}

	fileName, contentType := fileDefaults(msg)
	stored, err := s.storage.Upload(ctx, content, fileName, contentType)
	if err != nil {
		s.metrics.recordFile(ctx, msg.Type, "upload_failed")
		return nil, &EventFailure{Stage: StageUpload, Err: fmt.Errorf("%w: upload %s: %w", ErrUpload, fileName, err)}
	}
	s.metrics.recordFile(ctx, msg.Type, "stored")

	file := &ports.MessageFile{
		ID:           stored.ID,
		URL:          stored.URL,
		OriginalName: stored.OriginalName,
		StorageName:  stored.Name,
		ContentType:  stored.ContentType,
		Size:         stored.Size,
		PreviewURL:   previewURL(msg),
	}
	if msg.FileSize != nil {
		file.Size = *msg.FileSize
	}
	if hasDuration(msg.Type) {
		file.Duration = msg.Duration
	}
	return file, nil
}
