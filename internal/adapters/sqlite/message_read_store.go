package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/JT-427/line-event-logger/internal/app/ports"
	"github.com/JT-427/line-event-logger/internal/db/queries"
)

const maxMessagePageSize = 500

// MessageReadStore serves stored messages from sqlite.
type MessageReadStore struct {
	db messageDatabase
}

func NewMessageReadStore(database messageDatabase) *MessageReadStore {
	return &MessageReadStore{db: database}
}

// ListMessages returns the newest messages of one chat first.
func (s *MessageReadStore) ListMessages(ctx context.Context, query ports.MessageQuery) ([]ports.MessageRecord, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = ports.DefaultMessagePageSize
	}
	if limit > maxMessagePageSize {
		limit = maxMessagePageSize
	}
	rows, err := s.db.ListMessagesByChat(ctx, queries.ListMessagesByChatParams{
		ChatType: query.ChatType,
		ChatID:   query.ChatID,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]ports.MessageRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, toMessageRecord(row))
	}
	return out, nil
}

// GetMessage loads one message by its platform id.
func (s *MessageReadStore) GetMessage(ctx context.Context, messageID string) (ports.MessageRecord, error) {
	row, err := s.db.GetMessageByMessageID(ctx, messageID)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.MessageRecord{}, ports.ErrNotFound
	}
	if err != nil {
		return ports.MessageRecord{}, err
	}
	return toMessageRecord(row), nil
}

func toMessageRecord(row queries.Message) ports.MessageRecord {
	record := ports.MessageRecord{
		AccountID:        row.AccountID,
		MessageID:        row.MessageID,
		ChatType:         row.ChatType,
		ChatID:           row.ChatID,
		MessageType:      row.MessageType,
		SenderID:         row.SenderID,
		Timestamp:        time.UnixMilli(row.SentAtMs).UTC(),
		Text:             stringPtr(row.Text),
		StickerPackageID: stringPtr(row.StickerPackageID),
		StickerID:        stringPtr(row.StickerID),
		RawJSON:          row.RawJson,
	}
	if row.FileID.Valid {
		record.File = &ports.MessageFile{
			ID:           row.FileID.String,
			URL:          row.FileUrl.String,
			OriginalName: row.OriginalFileName.String,
			StorageName:  row.StorageFileName.String,
			ContentType:  row.FileContentType.String,
			Size:         row.FileSize.Int64,
			PreviewURL:   stringPtr(row.PreviewUrl),
		}
		if row.DurationMs.Valid {
			duration := row.DurationMs.Int64
			record.File.Duration = &duration
		}
	}
	if row.LocationLatitude.Valid {
		record.Location = &ports.MessageLocation{
			Title:     row.LocationTitle.String,
			Address:   row.LocationAddress.String,
			Latitude:  row.LocationLatitude.Float64,
			Longitude: row.LocationLongitude.Float64,
		}
	}
	return record
}

func stringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	out := value.String
	return &out
}

var _ ports.MessageReader = (*MessageReadStore)(nil)
