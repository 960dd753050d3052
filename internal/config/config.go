package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backend kinds accepted by STORAGE_TYPE.
const (
	StorageLocal       = "local"
	StorageSharePoint  = "sharepoint"
	StorageGoogleDrive = "google_drive"
)

type Config struct {
	Environment   string
	Server        ServerConfig
	Database      DatabaseConfig
	Line          LineConfig
	Storage       StorageConfig
	Notify        NotifyConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	Path      string
	LogTiming bool
}

type LineConfig struct {
	ChannelSecret      string
	ChannelAccessToken string
	ChannelID          string
	DataAPIURL         string
	HTTPTimeout        time.Duration
}

type StorageConfig struct {
	Type        string
	LocalDir    string
	URLPrefix   string
	Folder      string
	HTTPTimeout time.Duration
	SharePoint  SharePointConfig
	GoogleDrive GoogleDriveConfig
}

type SharePointConfig struct {
	TenantID     string
	ClientID     string
	ClientSecret string
	SiteID       string
	DriveID      string
}

type GoogleDriveConfig struct {
	// Credentials is a service account key, either inline JSON or a path to the key file.
	Credentials string
	ParentID    string
}

type NotifyConfig struct {
	TargetURL string
	Source    string
}

type ObservabilityConfig struct {
	Enabled           bool
	OTLPEndpoint      string
	OTLPTraceHeaders  map[string]string
	OTLPMetricHeaders map[string]string
	ServiceName       string
	ServiceVer        string
	SamplingRatio     float64
	MetricsConsole    bool
}

func Load() (Config, error) {
	return load(true)
}

// LoadForTool loads config for CLI tools that never receive webhooks.
func LoadForTool() (Config, error) {
	return load(false)
}

func load(requireChannel bool) (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("app_env", "")
	v.SetDefault("go_env", "")
	v.SetDefault("port", 8000)
	v.SetDefault("db_path", "data/line-events")
	v.SetDefault("db_timing", false)
	v.SetDefault("line_data_api_url", "https://api-data.line.me")
	v.SetDefault("line_http_timeout", "30s")
	v.SetDefault("storage_type", StorageLocal)
	v.SetDefault("storage_local_dir", "storage")
	v.SetDefault("storage_url_prefix", "/storage")
	v.SetDefault("storage_folder", "LineRecorderData")
	v.SetDefault("storage_http_timeout", "60s")
	v.SetDefault("notify_target_url", "")
	v.SetDefault("notify_source", "line-event-logger")
	v.SetDefault("otel_enabled", false)
	v.SetDefault("otel_exporter_otlp_endpoint", "")
	v.SetDefault("otel_exporter_otlp_headers", "")
	v.SetDefault("otel_exporter_otlp_traces_headers", "")
	v.SetDefault("otel_exporter_otlp_metrics_headers", "")
	v.SetDefault("otel_service_name", "line-event-logger")
	v.SetDefault("otel_service_version", "dev")
	v.SetDefault("otel_sampling_ratio", 1.0)
	v.SetDefault("otel_metrics_console", false)

	env := resolveEnvironment(v)
	port := v.GetInt("port")
	if port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT: %d", port)
	}

	lineTimeout := v.GetDuration("line_http_timeout")
	if lineTimeout <= 0 {
		lineTimeout = 30 * time.Second
	}
	storageTimeout := v.GetDuration("storage_http_timeout")
	if storageTimeout <= 0 {
		storageTimeout = 60 * time.Second
	}

	samplingRatio := v.GetFloat64("otel_sampling_ratio")
	if samplingRatio < 0 {
		samplingRatio = 0
	}
	if samplingRatio > 1 {
		samplingRatio = 1
	}

	otlpEndpoint := strings.TrimSpace(v.GetString("otel_exporter_otlp_endpoint"))
	otlpCommonHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_headers"))
	otlpTraceHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_traces_headers"))
	otlpMetricHeaders := parseOTLPHeaders(v.GetString("otel_exporter_otlp_metrics_headers"))
	metricsConsole := v.GetBool("otel_metrics_console")

	cfg := Config{
		Environment: env,
		Server:      ServerConfig{Port: port},
		Database: DatabaseConfig{
			Path:      strings.TrimSpace(v.GetString("db_path")),
			LogTiming: v.GetBool("db_timing"),
		},
		Line: LineConfig{
			ChannelSecret:      strings.TrimSpace(v.GetString("line_channel_secret")),
			ChannelAccessToken: strings.TrimSpace(v.GetString("line_channel_access_token")),
			ChannelID:          strings.TrimSpace(v.GetString("line_channel_id")),
			DataAPIURL:         strings.TrimRight(strings.TrimSpace(v.GetString("line_data_api_url")), "/"),
			HTTPTimeout:        lineTimeout,
		},
		Storage: StorageConfig{
			Type:        strings.ToLower(strings.TrimSpace(v.GetString("storage_type"))),
			LocalDir:    strings.TrimSpace(v.GetString("storage_local_dir")),
			URLPrefix:   strings.TrimRight(strings.TrimSpace(v.GetString("storage_url_prefix")), "/"),
			Folder:      strings.Trim(strings.TrimSpace(v.GetString("storage_folder")), "/"),
			HTTPTimeout: storageTimeout,
			SharePoint: SharePointConfig{
				TenantID:     strings.TrimSpace(v.GetString("sharepoint_tenant_id")),
				ClientID:     strings.TrimSpace(v.GetString("sharepoint_client_id")),
				ClientSecret: strings.TrimSpace(v.GetString("sharepoint_client_secret")),
				SiteID:       strings.TrimSpace(v.GetString("sharepoint_site_id")),
				DriveID:      strings.TrimSpace(v.GetString("sharepoint_drive_id")),
			},
			GoogleDrive: GoogleDriveConfig{
				Credentials: strings.TrimSpace(v.GetString("google_drive_credentials")),
				ParentID:    strings.TrimSpace(v.GetString("google_drive_parent_id")),
			},
		},
		Notify: NotifyConfig{
			TargetURL: strings.TrimSpace(v.GetString("notify_target_url")),
			Source:    strings.TrimSpace(v.GetString("notify_source")),
		},
		Observability: ObservabilityConfig{
			Enabled:           v.GetBool("otel_enabled") || otlpEndpoint != "" || metricsConsole,
			OTLPEndpoint:      otlpEndpoint,
			OTLPTraceHeaders:  mergeHeaderMaps(otlpCommonHeaders, otlpTraceHeaders),
			OTLPMetricHeaders: mergeHeaderMaps(otlpCommonHeaders, otlpMetricHeaders),
			ServiceName:       valueOrDefault(v.GetString("otel_service_name"), "line-event-logger"),
			ServiceVer:        valueOrDefault(v.GetString("otel_service_version"), "dev"),
			SamplingRatio:     samplingRatio,
			MetricsConsole:    metricsConsole,
		},
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/line-events"
	}
	if cfg.Storage.LocalDir == "" {
		cfg.Storage.LocalDir = "storage"
	}
	if cfg.Storage.URLPrefix == "" {
		cfg.Storage.URLPrefix = "/storage"
	}
	if cfg.Storage.Folder == "" {
		cfg.Storage.Folder = "LineRecorderData"
	}
	if cfg.Line.DataAPIURL == "" {
		cfg.Line.DataAPIURL = "https://api-data.line.me"
	}

	if requireChannel {
		if cfg.Line.ChannelSecret == "" {
			return Config{}, fmt.Errorf("LINE_CHANNEL_SECRET is required")
		}
	}
	if requireChannel && !cfg.IsLocalDevelopment() {
		if cfg.Line.ChannelAccessToken == "" {
			return Config{}, fmt.Errorf("LINE_CHANNEL_ACCESS_TOKEN is required outside local/dev environments")
		}
	}
	if err := cfg.Storage.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate reports missing credentials or a nested folder for the selected
// storage backend.
func (s StorageConfig) Validate() error {
	if s.Type != StorageLocal && strings.Contains(s.Folder, "/") {
		return fmt.Errorf("storage %q needs a single-segment STORAGE_FOLDER, got %q", s.Type, s.Folder)
	}
	switch s.Type {
	case StorageLocal:
		return nil
	case StorageSharePoint:
		var missing []string
		if s.SharePoint.TenantID == "" {
			missing = append(missing, "SHAREPOINT_TENANT_ID")
		}
		if s.SharePoint.ClientID == "" {
			missing = append(missing, "SHAREPOINT_CLIENT_ID")
		}
		if s.SharePoint.ClientSecret == "" {
			missing = append(missing, "SHAREPOINT_CLIENT_SECRET")
		}
		if s.SharePoint.DriveID == "" && s.SharePoint.SiteID == "" {
			missing = append(missing, "SHAREPOINT_DRIVE_ID or SHAREPOINT_SITE_ID")
		}
		if len(missing) > 0 {
			return fmt.Errorf("storage %q requires %s", s.Type, strings.Join(missing, ", "))
		}
		return nil
	case StorageGoogleDrive:
		if s.GoogleDrive.Credentials == "" {
			return fmt.Errorf("storage %q requires GOOGLE_DRIVE_CREDENTIALS", s.Type)
		}
		return nil
	default:
		return fmt.Errorf("unsupported STORAGE_TYPE: %q", s.Type)
	}
}

func parseOTLPHeaders(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	out := make(map[string]string)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pair := strings.SplitN(part, "=", 2)
		if len(pair) != 2 {
			continue
		}
		key := strings.TrimSpace(pair[0])
		value := strings.TrimSpace(pair[1])
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mergeHeaderMaps(base, override map[string]string) map[string]string {
	if len(base) == 0 && len(override) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

func (c Config) IsLocalDevelopment() bool {
	switch strings.ToLower(strings.TrimSpace(c.Environment)) {
	case "", "local", "dev", "development", "test":
		return true
	default:
		return false
	}
}

func resolveEnvironment(v *viper.Viper) string {
	for _, key := range []string{"app_env", "go_env"} {
		value := strings.TrimSpace(v.GetString(key))
		if value != "" {
			return strings.ToLower(value)
		}
	}
	return ""
}

func valueOrDefault(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
