package storage

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/JT-427/line-event-logger/internal/app/ports"
	"github.com/JT-427/line-event-logger/internal/observability"
)

const backendLocal = "local"

type localStorage struct {
	dir       string
	urlPrefix string
	log       *slog.Logger
}

func newLocalStorage(dir, urlPrefix string, log *slog.Logger) *localStorage {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "storage"
	}
	urlPrefix = strings.TrimRight(strings.TrimSpace(urlPrefix), "/")
	if urlPrefix == "" {
		urlPrefix = "/storage"
	}
	return &localStorage{dir: dir, urlPrefix: urlPrefix, log: log}
}

func (s *localStorage) Upload(ctx context.Context, content []byte, fileName, contentType string) (ports.StoredFile, error) {
	_, span := observability.StartStorageSpan(ctx, backendLocal, "upload")
	defer span.End()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		span.RecordError(err)
		return ports.StoredFile{}, &UploadError{Backend: backendLocal, Op: "mkdir", Err: err}
	}

	name := UniqueName(fileName)
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		span.RecordError(err)
		return ports.StoredFile{}, &UploadError{Backend: backendLocal, Op: "write", Err: err}
	}
	info, err := os.Stat(path)
	if err != nil {
		span.RecordError(err)
		return ports.StoredFile{}, &UploadError{Backend: backendLocal, Op: "stat", Err: err}
	}

	return ports.StoredFile{
		ID:           name,
		Name:         name,
		OriginalName: fileName,
		URL:          s.urlPrefix + "/" + name,
		ContentType:  ResolveContentType(contentType, fileName, content),
		Size:         info.Size(),
	}, nil
}

func (s *localStorage) Delete(ctx context.Context, storageID string) bool {
	_, span := observability.StartStorageSpan(ctx, backendLocal, "delete")
	defer span.End()

	if storageID == "" || strings.ContainsAny(storageID, `/\`) || strings.Contains(storageID, "..") {
		s.log.Warn("storage_delete_rejected", "backend", backendLocal, "storage_id", storageID)
		return false
	}
	if err := os.Remove(filepath.Join(s.dir, storageID)); err != nil {
		span.RecordError(err)
		s.log.Warn("storage_delete_failed", "backend", backendLocal, "storage_id", storageID, "error", err)
		return false
	}
	return true
}
