// Package storage persists message attachments on a configured backend.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/JT-427/line-event-logger/internal/app/ports"
	"github.com/JT-427/line-event-logger/internal/config"
	"github.com/JT-427/line-event-logger/internal/observability"
)

const defaultContentType = "application/octet-stream"

var (
	// ErrConfiguration matches every error returned for an unusable backend configuration.
	ErrConfiguration = errors.New("storage configuration error")
	// ErrUnknownBackend is returned for an unrecognized storage kind.
	ErrUnknownBackend = fmt.Errorf("%w: unknown storage backend", ErrConfiguration)
)

// ConfigError names the setting a backend could not start without.
type ConfigError struct {
	Backend string
	Setting string
	Reason  string // defaults to "missing"
}

func (e *ConfigError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "missing"
	}
	return fmt.Sprintf("storage %s: %s %s", e.Backend, reason, e.Setting)
}

func (e *ConfigError) Unwrap() error { return ErrConfiguration }

// UploadError reports a failed call against a storage backend.
type UploadError struct {
	Backend string
	Op      string
	Status  int
	Detail  string
	Err     error
}

func (e *UploadError) Error() string {
	switch {
	case e.Status != 0 && e.Detail != "":
		return fmt.Sprintf("storage %s %s: status %d: %s", e.Backend, e.Op, e.Status, e.Detail)
	case e.Status != 0:
		return fmt.Sprintf("storage %s %s: status %d", e.Backend, e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("storage %s %s: %v", e.Backend, e.Op, e.Err)
	default:
		return fmt.Sprintf("storage %s %s failed", e.Backend, e.Op)
	}
}

func (e *UploadError) Unwrap() error { return e.Err }

type options struct {
	logger     *slog.Logger
	httpClient *http.Client
	now        func() time.Time
	graphURL   string
	tokenURL   string
	driveURL   string
}

// Option customizes backend construction.
type Option func(*options)

// WithLogger sets the logger used for best-effort failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithHTTPClient replaces the outbound client of remote backends.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// WithGraphEndpoints points the SharePoint backend at alternative Graph and token hosts.
func WithGraphEndpoints(graphURL, tokenURL string) Option {
	return func(o *options) {
		o.graphURL = strings.TrimRight(graphURL, "/")
		o.tokenURL = tokenURL
	}
}

// WithDriveEndpoint points the Google Drive backend at an alternative API host.
func WithDriveEndpoint(baseURL string) Option {
	return func(o *options) {
		o.driveURL = strings.TrimRight(baseURL, "/")
	}
}

func withClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// New builds the backend selected by cfg.Type. Each call returns an
// independent backend with its own credential cache.
func New(cfg config.StorageConfig, opts ...Option) (ports.FileStorage, error) {
	o := options{
		logger:   slog.Default(),
		now:      time.Now,
		graphURL: defaultGraphURL,
		driveURL: defaultDriveURL,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		o.httpClient = observability.NewHTTPClient(timeout)
	}

	folder := strings.Trim(strings.TrimSpace(cfg.Folder), "/")
	if folder == "" {
		folder = "LineRecorderData"
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case config.StorageLocal:
		return newLocalStorage(cfg.LocalDir, cfg.URLPrefix, o.logger), nil
	case config.StorageSharePoint:
		if strings.Contains(folder, "/") {
			return nil, &ConfigError{Backend: backendSharePoint, Setting: "STORAGE_FOLDER", Reason: "nested"}
		}
		return newSharePointStorage(cfg.SharePoint, folder, o)
	case config.StorageGoogleDrive:
		if strings.Contains(folder, "/") {
			return nil, &ConfigError{Backend: backendGoogleDrive, Setting: "STORAGE_FOLDER", Reason: "nested"}
		}
		return newGoogleDriveStorage(cfg.GoogleDrive, folder, o)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Type)
	}
}

// ResolveContentType picks a content type from the declared value, the file
// extension, then the content itself.
func ResolveContentType(declared, fileName string, content []byte) string {
	if declared = strings.TrimSpace(declared); declared != "" {
		return declared
	}
	if ext := filepath.Ext(fileName); ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}
	if len(content) > 0 {
		if detected := mimetype.Detect(content); detected != nil && detected.String() != "" {
			return detected.String()
		}
	}
	return defaultContentType
}
