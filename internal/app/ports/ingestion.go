package ports

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicate reports a uniqueness violation on an event or message identifier.
var ErrDuplicate = errors.New("duplicate record")

// IngestionStore is the minimal storage contract needed by webhook ingestion.
type IngestionStore interface {
	AppendEvent(ctx context.Context, event EventRecord) error
	SaveMessage(ctx context.Context, message MessageRecord) error
	Close() error
}

// EventRecord is one raw webhook event capture.
type EventRecord struct {
	AccountID      string
	EventID        string
	Destination    string
	EventType      string
	EventTimestamp string
	EventTSMs      int64
	SourceJSON     string
	MessageJSON    *string
	RawEventJSON   string
}

// MessageRecord is the normalized form of one chat message.
type MessageRecord struct {
	AccountID        string
	MessageID        string
	ChatType         string
	ChatID           string
	MessageType      string
	SenderID         string
	Timestamp        time.Time
	Text             *string
	StickerPackageID *string
	StickerID        *string
	File             *MessageFile
	Location         *MessageLocation
	RawJSON          string
}

// MessageFile links a message to its stored copy.
type MessageFile struct {
	ID           string
	URL          string
	OriginalName string
	StorageName  string
	ContentType  string
	Size         int64
	Duration     *int64
	PreviewURL   *string
}

type MessageLocation struct {
	Title     string  `json:"title"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// IngestionStoreFactory creates request-scoped ingestion stores.
type IngestionStoreFactory interface {
	Open() (IngestionStore, error)
}
