package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/JT-427/line-event-logger/internal/app/ports"
	"github.com/JT-427/line-event-logger/internal/db"
)

func ptr[T any](value T) *T { return &value }

func TestIngestionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "ingestion-test")

	factory := NewIngestionStoreFactory(dbPath)
	store, err := factory.Open()
	if err != nil {
		t.Fatalf("open ingestion store: %v", err)
	}

	event := ports.EventRecord{
		AccountID:      "U-bot",
		EventID:        "01HEVENT",
		Destination:    "U-bot",
		EventType:      "message",
		EventTimestamp: "2026-02-19T10:00:00Z",
		EventTSMs:      1771495200000,
		SourceJSON:     `{"type":"group","groupId":"C1","userId":"U1"}`,
		MessageJSON:    ptr(`{"id":"m1","type":"image"}`),
		RawEventJSON:   `{"type":"message"}`,
	}
	if err := store.AppendEvent(ctx, event); err != nil {
		t.Fatalf("append event: %v", err)
	}
	if err := store.AppendEvent(ctx, event); !errors.Is(err, ports.ErrDuplicate) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	sent := time.UnixMilli(1771495200000).UTC()
	message := ports.MessageRecord{
		AccountID:   "U-bot",
		MessageID:   "m1",
		ChatType:    "group",
		ChatID:      "C1",
		MessageType: "video",
		SenderID:    "U1",
		Timestamp:   sent,
		File: &ports.MessageFile{
			ID:           "item-1",
			URL:          "/storage/abc_m1.mp4",
			OriginalName: "m1.mp4",
			StorageName:  "abc_m1.mp4",
			ContentType:  "video/mp4",
			Size:         2048,
			Duration:     ptr(int64(6000)),
			PreviewURL:   ptr("https://example.com/preview.jpg"),
		},
		RawJSON: `{"id":"m1","type":"video"}`,
	}
	if err := store.SaveMessage(ctx, message); err != nil {
		t.Fatalf("save message: %v", err)
	}
	if err := store.SaveMessage(ctx, message); !errors.Is(err, ports.ErrDuplicate) {
		t.Fatalf("expected duplicate message error, got %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close store: %v", err)
	}

	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("reopen db: %v", err)
	}
	defer database.Close()

	stored, err := database.GetLineEventByWebhookID(ctx, "01HEVENT")
	if err != nil {
		t.Fatalf("load event: %v", err)
	}
	if stored.AccountID != "U-bot" || !stored.MessageJson.Valid || stored.EventTsMs != event.EventTSMs {
		t.Fatalf("unexpected stored event: %+v", stored)
	}

	reader := NewMessageReadStore(database)
	loaded, err := reader.GetMessage(ctx, "m1")
	if err != nil {
		t.Fatalf("get message: %v", err)
	}
	if loaded.File == nil || loaded.File.StorageName != "abc_m1.mp4" || loaded.File.Size != 2048 {
		t.Fatalf("unexpected file bundle: %+v", loaded.File)
	}
	if loaded.File.Duration == nil || *loaded.File.Duration != 6000 {
		t.Fatalf("unexpected duration: %+v", loaded.File.Duration)
	}
	if !loaded.Timestamp.Equal(sent) {
		t.Fatalf("unexpected timestamp %s", loaded.Timestamp)
	}
	if loaded.Location != nil || loaded.Text != nil {
		t.Fatalf("unexpected optional fields: %+v", loaded)
	}

	if _, err := reader.GetMessage(ctx, "missing"); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMessageReadStoreListsChatNewestFirst(t *testing.T) {
	ctx := context.Background()
	database, err := db.New(filepath.Join(t.TempDir(), "read-test"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer database.Close()

	store := newIngestionStore(database, nil)
	base := time.Date(2026, 2, 19, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"m1", "m2", "m3"} {
		err := store.SaveMessage(ctx, ports.MessageRecord{
			AccountID:   "U-bot",
			MessageID:   id,
			ChatType:    "user",
			ChatID:      "U1",
			MessageType: "location",
			SenderID:    "U1",
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
			Location:    &ports.MessageLocation{Title: "Office", Address: "Taipei", Latitude: 25.03, Longitude: 121.56},
			RawJSON:     `{}`,
		})
		if err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	reader := NewMessageReadStore(database)
	messages, err := reader.ListMessages(ctx, ports.MessageQuery{ChatType: "user", ChatID: "U1"})
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 3 || messages[0].MessageID != "m3" {
		t.Fatalf("unexpected order: %+v", messages)
	}
	if messages[0].Location == nil || messages[0].Location.Latitude != 25.03 {
		t.Fatalf("unexpected location: %+v", messages[0].Location)
	}

	other, err := reader.ListMessages(ctx, ports.MessageQuery{ChatType: "group", ChatID: "U1", Limit: 10})
	if err != nil {
		t.Fatalf("list other chat: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("expected empty chat, got %d", len(other))
	}
}
