package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/JT-427/line-event-logger/internal/app/ports"
	"github.com/JT-427/line-event-logger/internal/db"
	"github.com/JT-427/line-event-logger/internal/db/queries"
)

type ingestionStore struct {
	db      ingestionDatabase
	closeFn func() error
}

func newIngestionStore(database ingestionDatabase, closeFn func() error) *ingestionStore {
	return &ingestionStore{db: database, closeFn: closeFn}
}

func (s *ingestionStore) AppendEvent(ctx context.Context, event ports.EventRecord) error {
	err := s.db.AppendLineEvent(ctx, queries.AppendLineEventParams{
		WebhookEventID: event.EventID,
		AccountID:      event.AccountID,
		Destination:    event.Destination,
		EventType:      event.EventType,
		EventTimestamp: event.EventTimestamp,
		EventTsMs:      event.EventTSMs,
		SourceJson:     event.SourceJSON,
		MessageJson:    nullString(event.MessageJSON),
		RawEventJson:   event.RawEventJSON,
	})
	return mapWriteError("append event "+event.EventID, err)
}

func (s *ingestionStore) SaveMessage(ctx context.Context, message ports.MessageRecord) error {
	params := queries.InsertMessageParams{
		MessageID:        message.MessageID,
		AccountID:        message.AccountID,
		ChatType:         message.ChatType,
		ChatID:           message.ChatID,
		MessageType:      message.MessageType,
		SenderID:         message.SenderID,
		SentAt:           message.Timestamp.UTC().Format(time.RFC3339Nano),
		SentAtMs:         message.Timestamp.UnixMilli(),
		Text:             nullString(message.Text),
		StickerPackageID: nullString(message.StickerPackageID),
		StickerID:        nullString(message.StickerID),
		RawJson:          message.RawJSON,
	}
	if file := message.File; file != nil {
		params.FileID = sql.NullString{String: file.ID, Valid: true}
		params.FileUrl = sql.NullString{String: file.URL, Valid: true}
		params.OriginalFileName = sql.NullString{String: file.OriginalName, Valid: true}
		params.StorageFileName = sql.NullString{String: file.StorageName, Valid: true}
		params.FileSize = sql.NullInt64{Int64: file.Size, Valid: true}
		params.FileContentType = sql.NullString{String: file.ContentType, Valid: file.ContentType != ""}
		params.DurationMs = nullInt64(file.Duration)
		params.PreviewUrl = nullString(file.PreviewURL)
	}
	if loc := message.Location; loc != nil {
		params.LocationTitle = sql.NullString{String: loc.Title, Valid: true}
		params.LocationAddress = sql.NullString{String: loc.Address, Valid: true}
		params.LocationLatitude = sql.NullFloat64{Float64: loc.Latitude, Valid: true}
		params.LocationLongitude = sql.NullFloat64{Float64: loc.Longitude, Valid: true}
	}
	return mapWriteError("save message "+message.MessageID, s.db.InsertMessage(ctx, params))
}

func (s *ingestionStore) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

func mapWriteError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case db.IsUniqueViolation(err):
		return fmt.Errorf("%s: %w", op, ports.ErrDuplicate)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

var _ ports.IngestionStore = (*ingestionStore)(nil)
