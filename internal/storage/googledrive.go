package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/JT-427/line-event-logger/internal/app/ports"
	"github.com/JT-427/line-event-logger/internal/config"
	"github.com/JT-427/line-event-logger/internal/observability"
)

const (
	backendGoogleDrive = "google_drive"
	defaultDriveURL    = "https://www.googleapis.com"
	driveFileScope     = "https://www.googleapis.com/auth/drive.file"
	driveFolderMime    = "application/vnd.google-apps.folder"
)

type googleDriveStorage struct {
	client   *http.Client
	baseURL  string
	folder   string
	parentID string
	creds    *credentialCache
	log      *slog.Logger
}

type driveFile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	WebViewLink string `json:"webViewLink"`
	Size        string `json:"size"`
	MimeType    string `json:"mimeType"`
}

func newGoogleDriveStorage(cfg config.GoogleDriveConfig, folder string, o options) (*googleDriveStorage, error) {
	raw, err := loadServiceAccount(cfg.Credentials)
	if err != nil {
		return nil, err
	}
	jwtCfg, err := google.JWTConfigFromJSON(raw, driveFileScope)
	if err != nil {
		return nil, fmt.Errorf("%w: google drive credentials: %v", ErrConfiguration, err)
	}

	client := o.httpClient
	exchange := func(ctx context.Context) (*oauth2.Token, error) {
		return jwtCfg.TokenSource(context.WithValue(ctx, oauth2.HTTPClient, client)).Token()
	}

	return &googleDriveStorage{
		client:   client,
		baseURL:  o.driveURL,
		folder:   folder,
		parentID: strings.TrimSpace(cfg.ParentID),
		creds:    newCredentialCache(exchange, o.now),
		log:      o.logger,
	}, nil
}

// loadServiceAccount accepts either inline key JSON or a path to the key file.
func loadServiceAccount(value string) ([]byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, &ConfigError{Backend: backendGoogleDrive, Setting: "GOOGLE_DRIVE_CREDENTIALS"}
	}
	if strings.HasPrefix(value, "{") {
		return []byte(value), nil
	}
	raw, err := os.ReadFile(value)
	if err != nil {
		return nil, fmt.Errorf("%w: read google drive credentials: %v", ErrConfiguration, err)
	}
	return raw, nil
}

func (s *googleDriveStorage) Upload(ctx context.Context, content []byte, fileName, contentType string) (ports.StoredFile, error) {
	ctx, span := observability.StartStorageSpan(ctx, backendGoogleDrive, "upload")
	defer span.End()

	stored, err := s.upload(ctx, content, fileName, contentType)
	span.RecordError(err)
	return stored, err
}

func (s *googleDriveStorage) upload(ctx context.Context, content []byte, fileName, contentType string) (ports.StoredFile, error) {
	if len(content) == 0 {
		return ports.StoredFile{}, emptyContentError(backendGoogleDrive)
	}
	token, err := s.creds.AccessToken(ctx)
	if err != nil {
		return ports.StoredFile{}, tokenError(backendGoogleDrive, err)
	}
	folderID, err := s.ensureFolder(ctx, token)
	if err != nil {
		return ports.StoredFile{}, err
	}

	name := UniqueName(fileName)
	contentType = ResolveContentType(contentType, fileName, content)
	sessionURL, err := s.createUploadSession(ctx, token, folderID, name, contentType, len(content))
	if err != nil {
		return ports.StoredFile{}, err
	}

	var file driveFile
	if err := putContent(ctx, s.client, backendGoogleDrive, sessionURL, token, contentType, content, &file); err != nil {
		return ports.StoredFile{}, err
	}

	size := int64(len(content))
	if file.Size != "" {
		if parsed, err := strconv.ParseInt(file.Size, 10, 64); err == nil {
			size = parsed
		}
	}
	stored := ports.StoredFile{
		ID:           file.ID,
		Name:         file.Name,
		OriginalName: fileName,
		URL:          file.WebViewLink,
		ContentType:  contentType,
		Size:         size,
	}
	if stored.Name == "" {
		stored.Name = name
	}
	return stored, nil
}

func (s *googleDriveStorage) ensureFolder(ctx context.Context, token string) (string, error) {
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeDriveQuery(s.folder), driveFolderMime)
	if s.parentID != "" {
		query += fmt.Sprintf(" and '%s' in parents", escapeDriveQuery(s.parentID))
	}
	params := url.Values{}
	params.Set("q", query)
	params.Set("fields", "files(id,name)")
	params.Set("spaces", "drive")

	resp, err := doRemote(ctx, s.client, remoteCall{
		backend: backendGoogleDrive,
		op:      "probe_folder",
		method:  http.MethodGet,
		url:     s.baseURL + "/drive/v3/files?" + params.Encode(),
		token:   token,
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return "", statusError(backendGoogleDrive, "probe_folder", resp)
	}
	var listing struct {
		Files []driveFile `json:"files"`
	}
	err = decodeBody(backendGoogleDrive, "probe_folder", resp, &listing)
	drain(resp)
	if err != nil {
		return "", err
	}
	if len(listing.Files) > 0 && listing.Files[0].ID != "" {
		return listing.Files[0].ID, nil
	}

	metadata := map[string]any{
		"name":     s.folder,
		"mimeType": driveFolderMime,
	}
	if s.parentID != "" {
		metadata["parents"] = []string{s.parentID}
	}
	resp, err = doRemote(ctx, s.client, remoteCall{
		backend: backendGoogleDrive,
		op:      "create_folder",
		method:  http.MethodPost,
		url:     s.baseURL + "/drive/v3/files?fields=id",
		token:   token,
		body:    metadata,
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", statusError(backendGoogleDrive, "create_folder", resp)
	}
	var created driveFile
	if err := decodeBody(backendGoogleDrive, "create_folder", resp, &created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", &UploadError{Backend: backendGoogleDrive, Op: "create_folder", Status: resp.StatusCode, Detail: "response has no id"}
	}
	s.log.Info("storage_folder_created", "backend", backendGoogleDrive, "folder", s.folder, "folder_id", created.ID)
	return created.ID, nil
}

func (s *googleDriveStorage) createUploadSession(ctx context.Context, token, folderID, name, contentType string, size int) (string, error) {
	header := http.Header{}
	header.Set("X-Upload-Content-Type", contentType)
	header.Set("X-Upload-Content-Length", strconv.Itoa(size))

	resp, err := doRemote(ctx, s.client, remoteCall{
		backend: backendGoogleDrive,
		op:      "create_session",
		method:  http.MethodPost,
		url:     s.baseURL + "/upload/drive/v3/files?uploadType=resumable&fields=id,name,webViewLink,size,mimeType",
		token:   token,
		header:  header,
		body: map[string]any{
			"name":     name,
			"parents":  []string{folderID},
			"mimeType": contentType,
		},
	})
	if err != nil {
		return "", err
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return "", statusError(backendGoogleDrive, "create_session", resp)
	}
	location := resp.Header.Get("Location")
	if location == "" {
		return "", &UploadError{Backend: backendGoogleDrive, Op: "create_session", Status: resp.StatusCode, Err: errors.New("response has no Location header")}
	}
	return location, nil
}

func (s *googleDriveStorage) Delete(ctx context.Context, storageID string) bool {
	ctx, span := observability.StartStorageSpan(ctx, backendGoogleDrive, "delete")
	defer span.End()

	if strings.TrimSpace(storageID) == "" {
		return false
	}
	token, err := s.creds.AccessToken(ctx)
	if err != nil {
		span.RecordError(err)
		s.log.Warn("storage_delete_failed", "backend", backendGoogleDrive, "storage_id", storageID, "error", err)
		return false
	}
	resp, err := doRemote(ctx, s.client, remoteCall{
		backend: backendGoogleDrive,
		op:      "delete",
		method:  http.MethodDelete,
		url:     s.baseURL + "/drive/v3/files/" + url.PathEscape(storageID),
		token:   token,
	})
	if err != nil {
		span.RecordError(err)
		s.log.Warn("storage_delete_failed", "backend", backendGoogleDrive, "storage_id", storageID, "error", err)
		return false
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusNoContent {
		s.log.Warn("storage_delete_failed", "backend", backendGoogleDrive, "storage_id", storageID, "status", resp.StatusCode)
		return false
	}
	return true
}

func escapeDriveQuery(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	return strings.ReplaceAll(value, `'`, `\'`)
}
