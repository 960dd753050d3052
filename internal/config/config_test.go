package config

import (
	"testing"
	"time"
)

func TestLoadDefaultsForLocalDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("LINE_CHANNEL_SECRET", "secret")
	t.Setenv("STORAGE_TYPE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Port != 8000 {
		t.Fatalf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Storage.Type != StorageLocal {
		t.Fatalf("expected local storage by default, got %q", cfg.Storage.Type)
	}
	if cfg.Storage.URLPrefix != "/storage" {
		t.Fatalf("expected /storage url prefix, got %q", cfg.Storage.URLPrefix)
	}
	if cfg.Line.HTTPTimeout != 30*time.Second {
		t.Fatalf("expected 30s line timeout, got %s", cfg.Line.HTTPTimeout)
	}
	if cfg.Line.DataAPIURL != "https://api-data.line.me" {
		t.Fatalf("unexpected data api url %q", cfg.Line.DataAPIURL)
	}
}

func TestLoadRequiresChannelSecretOutsideLocal(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LINE_CHANNEL_SECRET", "")
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "token")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing channel secret in production")
	}
}

func TestLoadForToolAllowsMissingChannelOutsideLocal(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LINE_CHANNEL_SECRET", "")
	t.Setenv("LINE_CHANNEL_ACCESS_TOKEN", "")
	t.Setenv("STORAGE_TYPE", "local")

	if _, err := LoadForTool(); err != nil {
		t.Fatalf("expected no error for tool config load, got %v", err)
	}
}

func TestLoadRejectsUnknownStorageType(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("LINE_CHANNEL_SECRET", "secret")
	t.Setenv("STORAGE_TYPE", "dropbox")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown storage type")
	}
}

func TestLoadRequiresSharePointCredentials(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("LINE_CHANNEL_SECRET", "secret")
	t.Setenv("STORAGE_TYPE", "SharePoint")
	t.Setenv("SHAREPOINT_TENANT_ID", "tenant")
	t.Setenv("SHAREPOINT_CLIENT_ID", "")
	t.Setenv("SHAREPOINT_CLIENT_SECRET", "secret")
	t.Setenv("SHAREPOINT_DRIVE_ID", "drive")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing sharepoint client id")
	}

	t.Setenv("SHAREPOINT_CLIENT_ID", "client")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Type != StorageSharePoint {
		t.Fatalf("expected normalized sharepoint type, got %q", cfg.Storage.Type)
	}
	if cfg.Storage.SharePoint.DriveID != "drive" {
		t.Fatalf("unexpected drive id %q", cfg.Storage.SharePoint.DriveID)
	}
}

func TestLoadRequiresGoogleDriveCredentials(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("LINE_CHANNEL_SECRET", "secret")
	t.Setenv("STORAGE_TYPE", "google_drive")
	t.Setenv("GOOGLE_DRIVE_CREDENTIALS", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing google drive credentials")
	}
}

func TestLoadParsesOTLPHeadersAndMetricsConsole(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("LINE_CHANNEL_SECRET", "secret")
	t.Setenv("STORAGE_TYPE", "local")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "authorization=Bearer common,x-org=abc")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_HEADERS", "x-trace=trace-only")
	t.Setenv("OTEL_METRICS_CONSOLE", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.Observability.Enabled {
		t.Fatal("expected observability enabled when console metrics is true")
	}
	if cfg.Observability.OTLPTraceHeaders["authorization"] != "Bearer common" {
		t.Fatalf("expected common header in trace headers, got %#v", cfg.Observability.OTLPTraceHeaders)
	}
	if cfg.Observability.OTLPTraceHeaders["x-trace"] != "trace-only" {
		t.Fatalf("expected trace-specific header, got %#v", cfg.Observability.OTLPTraceHeaders)
	}
	if _, ok := cfg.Observability.OTLPMetricHeaders["x-trace"]; ok {
		t.Fatalf("trace header leaked into metric headers: %#v", cfg.Observability.OTLPMetricHeaders)
	}
}

func TestLoadRequiresChannelSecretInLocalDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("LINE_CHANNEL_SECRET", "")
	t.Setenv("STORAGE_TYPE", "local")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing channel secret in local development")
	}
}

func TestLoadRejectsNestedRemoteFolder(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("LINE_CHANNEL_SECRET", "secret")
	t.Setenv("STORAGE_TYPE", "sharepoint")
	t.Setenv("SHAREPOINT_TENANT_ID", "tenant")
	t.Setenv("SHAREPOINT_CLIENT_ID", "client")
	t.Setenv("SHAREPOINT_CLIENT_SECRET", "secret")
	t.Setenv("SHAREPOINT_DRIVE_ID", "drive")
	t.Setenv("STORAGE_FOLDER", "Line/Recorder")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for nested sharepoint folder")
	}

	t.Setenv("STORAGE_FOLDER", "/LineRecorder/")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Storage.Folder != "LineRecorder" {
		t.Fatalf("expected trimmed folder, got %q", cfg.Storage.Folder)
	}
}
