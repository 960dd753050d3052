// Package notify forwards stored messages to a CloudEvents sink.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	cehttp "github.com/cloudevents/sdk-go/v2/protocol/http"

	"github.com/JT-427/line-event-logger/internal/app/ports"
	"github.com/JT-427/line-event-logger/internal/config"
	"github.com/JT-427/line-event-logger/internal/observability"
)

// MessageStoredType is the CloudEvents type of every published message.
const MessageStoredType = "com.line.message.stored"

type Publisher struct {
	client cloudevents.Client
	source string
}

type messageData struct {
	AccountID   string        `json:"account_id"`
	MessageID   string        `json:"message_id"`
	ChatType    string        `json:"chat_type"`
	ChatID      string        `json:"chat_id"`
	MessageType string        `json:"message_type"`
	SenderID    string        `json:"sender_id,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
	Text        *string       `json:"text,omitempty"`
	Sticker     *stickerData  `json:"sticker,omitempty"`
	File        *fileData     `json:"file,omitempty"`
	Location    *locationData `json:"location,omitempty"`
}

type stickerData struct {
	PackageID string `json:"package_id"`
	StickerID string `json:"sticker_id"`
}

type fileData struct {
	ID           string  `json:"id"`
	URL          string  `json:"url"`
	OriginalName string  `json:"original_name"`
	StorageName  string  `json:"storage_name"`
	ContentType  string  `json:"content_type"`
	Size         int64   `json:"size"`
	DurationMs   *int64  `json:"duration_ms,omitempty"`
	PreviewURL   *string `json:"preview_url,omitempty"`
}

type locationData struct {
	Title     string  `json:"title"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// New returns nil when no target is configured.
func New(cfg config.NotifyConfig, timeout time.Duration) (*Publisher, error) {
	target := strings.TrimSpace(cfg.TargetURL)
	if target == "" {
		return nil, nil
	}
	return newPublisher(target, cfg.Source, observability.NewHTTPClient(timeout))
}

func newPublisher(target, source string, httpClient *http.Client) (*Publisher, error) {
	protocol, err := cloudevents.NewHTTP(
		cehttp.WithTarget(target),
		cehttp.WithClient(*httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("create cloudevents transport: %w", err)
	}
	client, err := cloudevents.NewClient(protocol, cloudevents.WithTimeNow())
	if err != nil {
		return nil, fmt.Errorf("create cloudevents client: %w", err)
	}
	source = strings.TrimSpace(source)
	if source == "" {
		source = "line-event-logger"
	}
	return &Publisher{client: client, source: source}, nil
}

// PublishMessage sends one binary-mode CloudEvent per message.
func (p *Publisher) PublishMessage(ctx context.Context, message ports.MessageRecord) error {
	event := cloudevents.NewEvent()
	event.SetID(message.MessageID)
	event.SetSource(p.source)
	event.SetType(MessageStoredType)
	event.SetSubject(message.ChatType + "/" + message.ChatID)
	event.SetTime(message.Timestamp)
	if err := event.SetData(cloudevents.ApplicationJSON, toMessageData(message)); err != nil {
		return fmt.Errorf("encode message %s: %w", message.MessageID, err)
	}
	if message.AccountID != "" {
		event.SetExtension("lineaccount", message.AccountID)
	}

	result := p.client.Send(ctx, event)
	if cloudevents.IsUndelivered(result) {
		return fmt.Errorf("publish message %s: %w", message.MessageID, result)
	}
	if !cloudevents.IsACK(result) {
		return fmt.Errorf("publish message %s: sink rejected: %w", message.MessageID, result)
	}
	return nil
}

func toMessageData(message ports.MessageRecord) messageData {
	data := messageData{
		AccountID:   message.AccountID,
		MessageID:   message.MessageID,
		ChatType:    message.ChatType,
		ChatID:      message.ChatID,
		MessageType: message.MessageType,
		SenderID:    message.SenderID,
		Timestamp:   message.Timestamp.UTC(),
		Text:        message.Text,
	}
	if message.StickerPackageID != nil && message.StickerID != nil {
		data.Sticker = &stickerData{PackageID: *message.StickerPackageID, StickerID: *message.StickerID}
	}
	if file := message.File; file != nil {
		data.File = &fileData{
			ID:           file.ID,
			URL:          file.URL,
			OriginalName: file.OriginalName,
			StorageName:  file.StorageName,
			ContentType:  file.ContentType,
			Size:         file.Size,
			DurationMs:   file.Duration,
			PreviewURL:   file.PreviewURL,
		}
	}
	if loc := message.Location; loc != nil {
		data.Location = &locationData{Title: loc.Title, Address: loc.Address, Latitude: loc.Latitude, Longitude: loc.Longitude}
	}
	return data
}

var _ ports.MessagePublisher = (*Publisher)(nil)
