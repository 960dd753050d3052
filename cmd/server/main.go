package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/JT-427/line-event-logger/internal/adapters/sqlite"
	"github.com/JT-427/line-event-logger/internal/app/services"
	"github.com/JT-427/line-event-logger/internal/config"
	"github.com/JT-427/line-event-logger/internal/db"
	"github.com/JT-427/line-event-logger/internal/line"
	"github.com/JT-427/line-event-logger/internal/notify"
	"github.com/JT-427/line-event-logger/internal/observability"
	"github.com/JT-427/line-event-logger/internal/server"
	"github.com/JT-427/line-event-logger/internal/server/routes"
	"github.com/JT-427/line-event-logger/internal/storage"
)

func Run() error {
	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	log := slog.New(observability.WrapSlogHandler(baseHandler))
	slog.SetDefault(log)

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if cfg.IsLocalDevelopment() && cfg.Line.ChannelAccessToken == "" {
		slog.Warn("LINE_CHANNEL_ACCESS_TOKEN not set, attachment downloads will fail")
	}

	shutdownTelemetry, err := observability.SetupOpenTelemetry(context.Background(), log, observability.OpenTelemetryConfig{
		Enabled:           cfg.Observability.Enabled,
		OTLPEndpoint:      cfg.Observability.OTLPEndpoint,
		OTLPTraceHeaders:  cfg.Observability.OTLPTraceHeaders,
		OTLPMetricHeaders: cfg.Observability.OTLPMetricHeaders,
		ServiceName:       cfg.Observability.ServiceName,
		ServiceVer:        cfg.Observability.ServiceVer,
		SamplingRatio:     cfg.Observability.SamplingRatio,
		MetricsConsole:    cfg.Observability.MetricsConsole,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(ctx); err != nil {
			slog.Error("Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	database, err := db.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database", "error", err)
		}
	}()

	if cfg.Database.LogTiming {
		go logDBLatencyStats(log, database)
	}

	backend, err := storage.New(cfg.Storage, storage.WithLogger(log))
	if err != nil {
		return fmt.Errorf("failed to configure storage: %w", err)
	}

	options := []services.IngestOption{services.WithLogger(log)}
	publisher, err := notify.New(cfg.Notify, cfg.Line.HTTPTimeout)
	if err != nil {
		return fmt.Errorf("failed to configure notifications: %w", err)
	}
	if publisher != nil {
		options = append(options, services.WithPublisher(publisher))
		slog.Info("Publishing stored messages", "target", cfg.Notify.TargetURL)
	}

	ingest := services.NewIngestService(
		cfg.Line.ChannelSecret,
		cfg.Line.ChannelID,
		sqlite.NewSharedIngestionStoreFactory(database),
		line.NewClient(cfg.Line),
		backend,
		options...,
	)

	srv := server.New(log, cfg.Observability.ServiceName)
	srv.RegisterRouter(routes.NewSystemRoutes(cfg.Observability.ServiceVer, database))
	srv.RegisterRouter(routes.NewWebhookRoutes(ingest))
	srv.RegisterRouter(routes.NewAPIRoutes(sqlite.NewMessageReadStore(database)))
	if cfg.Storage.Type == config.StorageLocal {
		srv.RegisterRouter(routes.NewStorageRoutes(cfg.Storage.URLPrefix, cfg.Storage.LocalDir))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	slog.Info("Starting server", "port", cfg.Server.Port, "storage", cfg.Storage.Type)
	return srv.Start(ctx, addr)
}

func main() {
	if err := Run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func logDBLatencyStats(log *slog.Logger, database *db.Database) {
	ticker := time.NewTicker(60 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		stats := database.QueryLatencyStats()
		for _, entry := range stats[:min(len(stats), 5)] {
			log.Info("db_query_latency",
				"query", entry.Name,
				"count", entry.Count,
				"p50_ms", entry.P50.Milliseconds(),
				"p95_ms", entry.P95.Milliseconds(),
				"max_ms", entry.Max.Milliseconds(),
			)
		}
	}
}
