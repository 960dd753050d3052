package routes

import (
	"github.com/labstack/echo/v4"

	linewebhook "github.com/JT-427/line-event-logger/internal/webhooks/line"
)

// WebhookRoutes registers webhook endpoints.
type WebhookRoutes struct {
	line *linewebhook.Handler
}

// NewWebhookRoutes constructs webhook routes.
func NewWebhookRoutes(ingest linewebhook.Ingestor) *WebhookRoutes {
	return &WebhookRoutes{
		line: linewebhook.NewHandler(ingest, nil),
	}
}

// RegisterRoutes registers webhook endpoints.
func (w *WebhookRoutes) RegisterRoutes(s *echo.Echo) {
	s.POST("/api/v1/webhook", w.handleLineWebhook)
}

func (w *WebhookRoutes) handleLineWebhook(c echo.Context) error {
	return w.line.Handle(c.Response(), c.Request())
}
