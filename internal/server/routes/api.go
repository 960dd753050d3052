package routes

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JT-427/line-event-logger/internal/app/ports"
)

// APIRoutes registers read endpoints over stored messages.
type APIRoutes struct {
	messages ports.MessageReader
}

func NewAPIRoutes(messages ports.MessageReader) *APIRoutes {
	return &APIRoutes{messages: messages}
}

type messageResponse struct {
	MessageID        string                 `json:"message_id"`
	AccountID        string                 `json:"account_id"`
	ChatType         string                 `json:"chat_type"`
	ChatID           string                 `json:"chat_id"`
	MessageType      string                 `json:"message_type"`
	SenderID         string                 `json:"sender_id"`
	Timestamp        time.Time              `json:"timestamp"`
	Text             *string                `json:"text,omitempty"`
	StickerPackageID *string                `json:"sticker_package_id,omitempty"`
	StickerID        *string                `json:"sticker_id,omitempty"`
	File             *fileResponse          `json:"file,omitempty"`
	Location         *ports.MessageLocation `json:"location,omitempty"`
}

type fileResponse struct {
	ID           string  `json:"file_id"`
	URL          string  `json:"file_url"`
	OriginalName string  `json:"original_file_name"`
	StorageName  string  `json:"storage_file_name"`
	ContentType  string  `json:"file_content_type"`
	Size         int64   `json:"file_size"`
	Duration     *int64  `json:"duration,omitempty"`
	PreviewURL   *string `json:"preview_url,omitempty"`
}

// RegisterRoutes registers API endpoints.
func (a *APIRoutes) RegisterRoutes(s *echo.Echo) {
	api := s.Group("/api/v1")

	api.GET("/messages", a.handleListMessages)
	api.GET("/messages/:message_id", a.handleGetMessage)
}

func (a *APIRoutes) handleGetMessage(c echo.Context) error {
	record, err := a.messages.GetMessage(c.Request().Context(), c.Param("message_id"))
	if errors.Is(err, ports.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"detail": "message not found"})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toMessageResponse(record))
}

func (a *APIRoutes) handleListMessages(c echo.Context) error {
	chatType := strings.TrimSpace(c.QueryParam("chat_type"))
	chatID := strings.TrimSpace(c.QueryParam("chat_id"))
	if chatType == "" || chatID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"detail": "chat_type and chat_id are required"})
	}

	var limit int64
	if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"detail": "limit must be a positive integer"})
		}
		limit = parsed
	}

	records, err := a.messages.ListMessages(c.Request().Context(), ports.MessageQuery{ChatType: chatType, ChatID: chatID, Limit: limit})
	if err != nil {
		return err
	}
	out := make([]messageResponse, 0, len(records))
	for _, record := range records {
		out = append(out, toMessageResponse(record))
	}
	return c.JSON(http.StatusOK, map[string]any{"messages": out})
}

func toMessageResponse(record ports.MessageRecord) messageResponse {
	resp := messageResponse{
		MessageID:        record.MessageID,
		AccountID:        record.AccountID,
		ChatType:         record.ChatType,
		ChatID:           record.ChatID,
		MessageType:      record.MessageType,
		SenderID:         record.SenderID,
		Timestamp:        record.Timestamp,
		Text:             record.Text,
		StickerPackageID: record.StickerPackageID,
		StickerID:        record.StickerID,
		Location:         record.Location,
	}
	if file := record.File; file != nil {
		resp.File = &fileResponse{
			ID:           file.ID,
			URL:          file.URL,
			OriginalName: file.OriginalName,
			StorageName:  file.StorageName,
			ContentType:  file.ContentType,
			Size:         file.Size,
			Duration:     file.Duration,
			PreviewURL:   file.PreviewURL,
		}
	}
	return resp
}
