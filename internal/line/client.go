// Package line talks to the LINE Messaging API data host.
package line

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JT-427/line-event-logger/internal/config"
	"github.com/JT-427/line-event-logger/internal/observability"
)

const DefaultDataAPIURL = "https://api-data.line.me"

// APIError is a non-2xx answer from the content endpoint.
type APIError struct {
	MessageID string
	Status    int
	Body      string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("line content %s: status %d", e.MessageID, e.Status)
	}
	return fmt.Sprintf("line content %s: status %d: %s", e.MessageID, e.Status, e.Body)
}

type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(cfg config.LineConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.DataAPIURL), "/")
	if baseURL == "" {
		baseURL = DefaultDataAPIURL
	}
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:     baseURL,
		accessToken: strings.TrimSpace(cfg.ChannelAccessToken),
		httpClient:  observability.NewHTTPClient(timeout),
	}
}

// WithHTTPClient returns a copy of c that uses client for outbound calls.
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	clone := *c
	clone.httpClient = client
	return &clone
}

// FetchContent downloads the full attachment of messageID.
func (c *Client) FetchContent(ctx context.Context, messageID string) ([]byte, error) {
	messageID = strings.TrimSpace(messageID)
	if messageID == "" {
		return nil, fmt.Errorf("fetch content: missing message id")
	}

	endpoint := c.baseURL + "/v2/bot/message/" + url.PathEscape(messageID) + "/content"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch content %s: %w", messageID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{MessageID: messageID, Status: resp.StatusCode, Body: strings.TrimSpace(string(payload))}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", messageID, err)
	}
	return content, nil
}
