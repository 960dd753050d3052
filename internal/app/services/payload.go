package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

type webhookDelivery struct {
	Destination string            `json:"destination"`
	Events      []json.RawMessage `json:"events"`
}

type webhookEvent struct {
	Type           string          `json:"type"`
	WebhookEventID string          `json:"webhookEventId"`
	Timestamp      int64           `json:"timestamp"`
	Source         json.RawMessage `json:"source"`
	Message        json.RawMessage `json:"message"`
}

type eventSource struct {
	Type    string `json:"type"`
	UserID  string `json:"userId"`
	GroupID string `json:"groupId"`
	RoomID  string `json:"roomId"`
}

// chatID is the conversation the message belongs to.
func (s eventSource) chatID() string {
	switch {
	case s.GroupID != "":
		return s.GroupID
	case s.RoomID != "":
		return s.RoomID
	default:
		return s.UserID
	}
}

type contentProvider struct {
	Type               string `json:"type"`
	OriginalContentURL string `json:"originalContentUrl"`
	PreviewImageURL    string `json:"previewImageUrl"`
}

type messagePayload struct {
	ID              string           `json:"id"`
	Type            string           `json:"type"`
	Text            *string          `json:"text"`
	PackageID       *string          `json:"packageId"`
	StickerID       *string          `json:"stickerId"`
	FileName        string           `json:"fileName"`
	ContentType     string           `json:"contentType"`
	FileSize        *int64           `json:"fileSize"`
	Duration        *int64           `json:"duration"`
	Title           string           `json:"title"`
	Address         string           `json:"address"`
	Latitude        *float64         `json:"latitude"`
	Longitude       *float64         `json:"longitude"`
	ContentProvider *contentProvider `json:"contentProvider"`
}

// eventID is the webhookEventId, or a digest of the raw event when the
// platform omitted it so redeliveries still collide.
func (e webhookEvent) eventID(raw []byte) string {
	if id := strings.TrimSpace(e.WebhookEventID); id != "" {
		return id
	}
	sum := sha256.Sum256(raw)
	return "sha256:" + hex.EncodeToString(sum[:])
}

func rawOrEmptyObject(raw json.RawMessage) string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return "{}"
	}
	return trimmed
}
