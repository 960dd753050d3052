package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/JT-427/line-event-logger/internal/app/ports"
	portmocks "github.com/JT-427/line-event-logger/internal/app/ports/mocks"
)

const testSecret = "channel-secret"

type pipelineMocks struct {
	factory   *portmocks.MockIngestionStoreFactory
	store     *portmocks.MockIngestionStore
	fetcher   *portmocks.MockContentFetcher
	storage   *portmocks.MockFileStorage
	publisher *portmocks.MockMessagePublisher
}

func newPipeline(t *testing.T, channelID string) (*IngestService, pipelineMocks) {
	t.Helper()
	m := pipelineMocks{
		factory:   portmocks.NewMockIngestionStoreFactory(t),
		store:     portmocks.NewMockIngestionStore(t),
		fetcher:   portmocks.NewMockContentFetcher(t),
		storage:   portmocks.NewMockFileStorage(t),
		publisher: portmocks.NewMockMessagePublisher(t),
	}
	svc := NewIngestService(testSecret, channelID, m.factory, m.fetcher, m.storage,
		WithPublisher(m.publisher),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	return svc, m
}

func (m pipelineMocks) expectStore() {
	m.factory.EXPECT().Open().Return(m.store, nil).Once()
	m.store.EXPECT().Close().Return(nil).Once()
}

func signed(body string) IngestCommand {
	return IngestCommand{SignatureHeader: Sign(testSecret, []byte(body)), Body: []byte(body)}
}

func delivery(events ...string) string {
	out := `{"destination":"U-bot","events":[`
	for i, event := range events {
		if i > 0 {
			out += ","
		}
		out += event
	}
	return out + `]}`
}

func messageEvent(eventID, message string) string {
	return fmt.Sprintf(`{"type":"message","webhookEventId":%q,"timestamp":1771495200000,"source":{"type":"group","groupId":"C1","userId":"U1"},"replyToken":"r","message":%s}`, eventID, message)
}

func TestIngestTextMessage(t *testing.T) {
	svc, m := newPipeline(t, "")
	m.expectStore()

	m.store.EXPECT().AppendEvent(mock.Anything, mock.MatchedBy(func(event ports.EventRecord) bool {
		return event.EventID == "ev-1" &&
			event.AccountID == "U-bot" &&
			event.Destination == "U-bot" &&
			event.EventType == "message" &&
			event.EventTSMs == 1771495200000 &&
			event.EventTimestamp == "2026-02-19T10:00:00Z" &&
			event.MessageJSON != nil
	})).Return(nil).Once()
	m.store.EXPECT().SaveMessage(mock.Anything, mock.MatchedBy(func(msg ports.MessageRecord) bool {
		return msg.MessageID == "t1" &&
			msg.ChatType == "group" &&
			msg.ChatID == "C1" &&
			msg.SenderID == "U1" &&
			msg.MessageType == "text" &&
			msg.Text != nil && *msg.Text == "hello" &&
			msg.File == nil &&
			msg.Timestamp.Equal(time.UnixMilli(1771495200000))
	})).Return(nil).Once()
	m.publisher.EXPECT().PublishMessage(mock.Anything, mock.Anything).Return(nil).Once()

	result, err := svc.Ingest(context.Background(), signed(delivery(messageEvent("ev-1", `{"id":"t1","type":"text","text":"hello"}`))))
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if result.Events != 1 || result.Messages != 1 || result.Files != 0 || len(result.Failures) != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.AccountID != "U-bot" {
		t.Fatalf("expected destination as owning account, got %q", result.AccountID)
	}
}

func TestIngestImageMessageFetchesAndUploadsOnce(t *testing.T) {
	svc, m := newPipeline(t, "channel-1")
	m.expectStore()

	content := []byte{0xff, 0xd8, 0xff, 0xe0}
	m.store.EXPECT().AppendEvent(mock.Anything, mock.MatchedBy(func(event ports.EventRecord) bool {
		return event.AccountID == "channel-1"
	})).Return(nil).Once()
	m.fetcher.EXPECT().FetchContent(mock.Anything, "m1").Return(content, nil).Once()
	m.storage.EXPECT().Upload(mock.Anything, content, "m1.jpg", "image/jpeg").Return(ports.StoredFile{
		ID:           "abc_m1.jpg",
		Name:         "abc_m1.jpg",
		OriginalName: "m1.jpg",
		URL:          "/storage/abc_m1.jpg",
		ContentType:  "image/jpeg",
		Size:         4,
	}, nil).Once()

	var saved ports.MessageRecord
	m.store.EXPECT().SaveMessage(mock.Anything, mock.Anything).Run(func(_ context.Context, msg ports.MessageRecord) {
		saved = msg
	}).Return(nil).Once()
	m.publisher.EXPECT().PublishMessage(mock.Anything, mock.Anything).Return(nil).Once()

	result, err := svc.Ingest(context.Background(), signed(delivery(messageEvent("ev-2", `{"id":"m1","type":"image","contentProvider":{"type":"line","previewImageUrl":"https://ignored"}}`))))
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if result.Files != 1 {
		t.Fatalf("expected one stored file, got %+v", result)
	}
	if saved.File == nil {
		t.Fatal("expected file bundle on saved message")
	}
	want := ports.MessageFile{
		ID:           "abc_m1.jpg",
		URL:          "/storage/abc_m1.jpg",
		OriginalName: "m1.jpg",
		StorageName:  "abc_m1.jpg",
		ContentType:  "image/jpeg",
		Size:         4,
	}
	if *saved.File != want {
		t.Fatalf("unexpected file bundle: %+v", *saved.File)
	}
}

func TestIngestVideoCarriesDurationAndPreview(t *testing.T) {
	svc, m := newPipeline(t, "")
	m.expectStore()

	m.store.EXPECT().AppendEvent(mock.Anything, mock.Anything).Return(nil).Once()
	m.fetcher.EXPECT().FetchContent(mock.Anything, "v1").Return([]byte("mp4"), nil).Once()
	m.storage.EXPECT().Upload(mock.Anything, []byte("mp4"), "v1.mp4", "video/mp4").Return(ports.StoredFile{ID: "item-9", Name: "x_v1.mp4", Size: 3}, nil).Once()
	m.store.EXPECT().SaveMessage(mock.Anything, mock.MatchedBy(func(msg ports.MessageRecord) bool {
		return msg.File != nil &&
			msg.File.Duration != nil && *msg.File.Duration == 6000 &&
			msg.File.PreviewURL != nil && *msg.File.PreviewURL == "https://example.com/p.jpg" &&
			msg.File.Size == 3
	})).Return(nil).Once()
	m.publisher.EXPECT().PublishMessage(mock.Anything, mock.Anything).Return(nil).Once()

	body := delivery(messageEvent("ev-3", `{"id":"v1","type":"video","duration":6000,"contentProvider":{"type":"external","previewImageUrl":"https://example.com/p.jpg"}}`))
	if _, err := svc.Ingest(context.Background(), signed(body)); err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
}

func TestIngestFileUsesPlatformNameAndDeclaredSize(t *testing.T) {
	svc, m := newPipeline(t, "")
	m.expectStore()

	m.store.EXPECT().AppendEvent(mock.Anything, mock.Anything).Return(nil).Once()
	m.fetcher.EXPECT().FetchContent(mock.Anything, "f1").Return([]byte("pdf"), nil).Once()
	m.storage.EXPECT().Upload(mock.Anything, []byte("pdf"), "report.pdf", "application/octet-stream").Return(ports.StoredFile{ID: "id-1", Name: "u_report.pdf", OriginalName: "report.pdf", Size: 3}, nil).Once()
	m.store.EXPECT().SaveMessage(mock.Anything, mock.MatchedBy(func(msg ports.MessageRecord) bool {
		return msg.File != nil && msg.File.Size == 2048 && msg.File.Duration == nil && msg.File.PreviewURL == nil
	})).Return(nil).Once()
	m.publisher.EXPECT().PublishMessage(mock.Anything, mock.Anything).Return(nil).Once()

	body := delivery(messageEvent("ev-4", `{"id":"f1","type":"file","fileName":"report.pdf","fileSize":2048}`))
	if _, err := svc.Ingest(context.Background(), signed(body)); err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
}

func TestIngestRejectsInvalidSignatureBeforePersistence(t *testing.T) {
	svc, _ := newPipeline(t, "")

	body := delivery(messageEvent("ev-1", `{"id":"t1","type":"text","text":"hello"}`))
	cmd := signed(body)
	cmd.Body = []byte(body + " ")

	_, err := svc.Ingest(context.Background(), cmd)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
	if ClassifyIngestError(err) != IngestErrorInvalidSignature {
		t.Fatalf("unexpected classification %q", ClassifyIngestError(err))
	}

	_, err = svc.Ingest(context.Background(), IngestCommand{Body: []byte(body)})
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for missing header, got %v", err)
	}
}

func TestIngestWithoutChannelSecretRejectsEverything(t *testing.T) {
	factory := portmocks.NewMockIngestionStoreFactory(t)
	svc := NewIngestService("", "", factory, portmocks.NewMockContentFetcher(t), portmocks.NewMockFileStorage(t),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	body := []byte(delivery(messageEvent("ev-forged", `{"id":"t1","type":"text","text":"hello"}`)))
	_, err := svc.Ingest(context.Background(), IngestCommand{SignatureHeader: Sign("", body), Body: body})
	if !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestIngestRejectsMalformedJSON(t *testing.T) {
	svc, _ := newPipeline(t, "")

	_, err := svc.Ingest(context.Background(), signed(`{"events":`))
	if ClassifyIngestError(err) != IngestErrorInvalidPayload {
		t.Fatalf("expected invalid payload, got %v", err)
	}
}

func TestIngestEmptyDeliveryOpensNoStore(t *testing.T) {
	svc, _ := newPipeline(t, "")

	result, err := svc.Ingest(context.Background(), signed(`{"destination":"U-bot","events":[]}`))
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if result.Events != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestIngestDuplicateEventIsSkipped(t *testing.T) {
	svc, m := newPipeline(t, "")
	m.expectStore()

	m.store.EXPECT().AppendEvent(mock.Anything, mock.MatchedBy(func(event ports.EventRecord) bool {
		return event.EventID == "ev-dup"
	})).Return(fmt.Errorf("append event ev-dup: %w", ports.ErrDuplicate)).Once()
	m.store.EXPECT().AppendEvent(mock.Anything, mock.MatchedBy(func(event ports.EventRecord) bool {
		return event.EventID == "ev-follow" && event.MessageJSON == nil
	})).Return(nil).Once()

	body := delivery(
		messageEvent("ev-dup", `{"id":"t1","type":"text","text":"hello"}`),
		`{"type":"follow","webhookEventId":"ev-follow","timestamp":1771495200000,"source":{"type":"user","userId":"U1"}}`,
	)
	result, err := svc.Ingest(context.Background(), signed(body))
	if err != nil {
		t.Fatalf("duplicates must not fail the delivery: %v", err)
	}
	if len(result.Failures) != 1 || !result.Failures[0].Duplicate() || result.Failures[0].Stage != StagePersistEvent {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}
	if result.Events != 1 || result.Messages != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
}

func TestIngestPersistenceFailureContinuesAndRequestsRedelivery(t *testing.T) {
	svc, m := newPipeline(t, "")
	m.expectStore()

	m.store.EXPECT().AppendEvent(mock.Anything, mock.MatchedBy(func(event ports.EventRecord) bool {
		return event.EventID == "ev-a"
	})).Return(errors.New("disk I/O error")).Once()
	m.store.EXPECT().AppendEvent(mock.Anything, mock.MatchedBy(func(event ports.EventRecord) bool {
		return event.EventID == "ev-b"
	})).Return(nil).Once()
	m.store.EXPECT().SaveMessage(mock.Anything, mock.Anything).Return(nil).Once()
	m.publisher.EXPECT().PublishMessage(mock.Anything, mock.Anything).Return(errors.New("sink down")).Once()

	body := delivery(
		messageEvent("ev-a", `{"id":"t1","type":"text","text":"one"}`),
		messageEvent("ev-b", `{"id":"t2","type":"sticker","packageId":"446","stickerId":"1988"}`),
	)
	result, err := svc.Ingest(context.Background(), signed(body))
	if ClassifyIngestError(err) != IngestErrorPersistence {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if result.Lost() != 1 || result.Messages != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestIngestUploadFailureSkipsMessage(t *testing.T) {
	svc, m := newPipeline(t, "")
	m.expectStore()

	m.store.EXPECT().AppendEvent(mock.Anything, mock.Anything).Return(nil).Once()
	m.fetcher.EXPECT().FetchContent(mock.Anything, "a1").Return([]byte("m4a"), nil).Once()
	m.storage.EXPECT().Upload(mock.Anything, []byte("m4a"), "a1.m4a", "audio/m4a").Return(ports.StoredFile{}, errors.New("quota exceeded")).Once()

	result, err := svc.Ingest(context.Background(), signed(delivery(messageEvent("ev-5", `{"id":"a1","type":"audio","duration":1200}`))))
	if err != nil {
		t.Fatalf("upload failures must not fail the delivery: %v", err)
	}
	if len(result.Failures) != 1 || result.Failures[0].Stage != StageUpload || !errors.Is(result.Failures[0].Err, ErrUpload) {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}
	if result.Events != 1 || result.Messages != 0 {
		t.Fatalf("unexpected counts: %+v", result)
	}
}

func TestIngestDuplicateMessageReleasesUpload(t *testing.T) {
	svc, m := newPipeline(t, "")
	m.expectStore()

	m.store.EXPECT().AppendEvent(mock.Anything, mock.Anything).Return(nil).Once()
	m.fetcher.EXPECT().FetchContent(mock.Anything, "m1").Return([]byte("jpg"), nil).Once()
	m.storage.EXPECT().Upload(mock.Anything, []byte("jpg"), "m1.jpg", "image/jpeg").Return(ports.StoredFile{ID: "item-1"}, nil).Once()
	m.store.EXPECT().SaveMessage(mock.Anything, mock.Anything).Return(ports.ErrDuplicate).Once()
	m.storage.EXPECT().Delete(mock.Anything, "item-1").Return(true).Once()

	result, err := svc.Ingest(context.Background(), signed(delivery(messageEvent("ev-6", `{"id":"m1","type":"image"}`))))
	if err != nil {
		t.Fatalf("Ingest returned error: %v", err)
	}
	if len(result.Failures) != 1 || result.Failures[0].Stage != StagePersistMessage || !result.Failures[0].Duplicate() {
		t.Fatalf("unexpected failures: %+v", result.Failures)
	}
}

func TestIngestStoreOpenFailure(t *testing.T) {
	svc, m := newPipeline(t, "")
	m.factory.EXPECT().Open().Return(nil, errors.New("database is locked")).Once()

	_, err := svc.Ingest(context.Background(), signed(delivery(messageEvent("ev-7", `{"id":"t1","type":"text","text":"x"}`))))
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestFileDefaults(t *testing.T) {
	cases := []struct {
		msg             messagePayload
		wantName        string
		wantContentType string
	}{
		{messagePayload{ID: "1", Type: "image"}, "1.jpg", "image/jpeg"},
		{messagePayload{ID: "2", Type: "video"}, "2.mp4", "video/mp4"},
		{messagePayload{ID: "3", Type: "audio"}, "3.m4a", "audio/m4a"},
		{messagePayload{ID: "4", Type: "file"}, "4.bin", "application/octet-stream"},
		{messagePayload{ID: "5", Type: "file", FileName: "a.zip", ContentType: "application/zip"}, "a.zip", "application/zip"},
		{messagePayload{ID: "6", Type: "imagemap"}, "6.bin", "application/octet-stream"},
	}
	for _, tc := range cases {
		name, contentType := fileDefaults(tc.msg)
		if name != tc.wantName || contentType != tc.wantContentType {
			t.Fatalf("fileDefaults(%+v) = %q, %q", tc.msg, name, contentType)
		}
	}
}
