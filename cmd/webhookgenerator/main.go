package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"github.com/JT-427/line-event-logger/internal/app/services"
	linewebhook "github.com/JT-427/line-event-logger/internal/webhooks/line"
)

const webhookPath = "/api/v1/webhook"

type delivery struct {
	Destination string  `json:"destination"`
	Events      []event `json:"events"`
}

type event struct {
	Type            string          `json:"type"`
	Mode            string          `json:"mode"`
	Timestamp       int64           `json:"timestamp"`
	WebhookEventID  string          `json:"webhookEventId"`
	Source          source          `json:"source"`
	Message         message         `json:"message"`
	ReplyToken      string          `json:"replyToken"`
	DeliveryContext deliveryContext `json:"deliveryContext"`
}

type deliveryContext struct {
	IsRedelivery bool `json:"isRedelivery"`
}

type source struct {
	Type    string `json:"type"`
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}

type message struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

func main() {
	configPath := flag.String("config", "", "path to YAML config")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ticker := time.NewTicker(cfg.Every)
	defer ticker.Stop()

	client := &http.Client{Timeout: 10 * time.Second}
	for sent := 0; cfg.Count <= 0 || sent < cfg.Count; sent++ {
		body, err := buildDelivery(cfg, time.Now())
		if err != nil {
			fmt.Fprintln(os.Stderr, "payload error:", err)
			os.Exit(1)
		}
		if err := sendWebhook(context.Background(), client, cfg, body); err != nil {
			fmt.Fprintln(os.Stderr, "webhook error:", err)
		}
		<-ticker.C
	}
}

func loadConfig(path string) (config, error) {
	if strings.TrimSpace(path) == "" {
		return config{}, fmt.Errorf("config path is required")
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("destination", "U00000000000000000000000000000000")
	v.SetDefault("user_id", "U11111111111111111111111111111111")
	v.SetDefault("interval", "5s")
	if err := v.ReadInConfig(); err != nil {
		return config{}, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.ChannelSecret = strings.TrimSpace(cfg.ChannelSecret)
	cfg.Destination = strings.TrimSpace(cfg.Destination)
	cfg.UserID = strings.TrimSpace(cfg.UserID)
	cfg.GroupID = strings.TrimSpace(cfg.GroupID)

	if cfg.BaseURL == "" || cfg.ChannelSecret == "" || cfg.UserID == "" {
		return config{}, fmt.Errorf("config must include base_url, channel_secret, user_id")
	}

	parsed, err := time.ParseDuration(strings.TrimSpace(cfg.Interval))
	if err != nil {
		return config{}, fmt.Errorf("invalid interval duration: %w", err)
	}
	if parsed <= 0 {
		return config{}, fmt.Errorf("interval must be positive")
	}
	cfg.Every = parsed

	return cfg, nil
}

// buildDelivery renders one delivery holding a single text message event.
func buildDelivery(cfg config, now time.Time) ([]byte, error) {
	src := source{Type: "user", UserID: cfg.UserID}
	if cfg.GroupID != "" {
		src.Type = "group"
		src.GroupID = cfg.GroupID
	}

	messageID := fmt.Sprintf("%d", now.UnixNano())
	return json.Marshal(delivery{
		Destination: cfg.Destination,
		Events: []event{{
			Type:           "message",
			Mode:           "active",
			Timestamp:      now.UnixMilli(),
			WebhookEventID: uuid.NewString(),
			Source:         src,
			ReplyToken:     uuid.NewString(),
			Message: message{
				ID:   messageID,
				Type: "text",
				Text: "generated message " + messageID,
			},
		}},
	})
}

func sendWebhook(ctx context.Context, client *http.Client, cfg config, body []byte) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+webhookPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	request.Header.Set(linewebhook.SignatureHeader, services.Sign(cfg.ChannelSecret, body))
	request.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(request)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook failed: %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	fmt.Printf("Webhook status: %s\n", resp.Status)
	return nil
}
