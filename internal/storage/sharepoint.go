package storage

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/JT-427/line-event-logger/internal/app/ports"
	"github.com/JT-427/line-event-logger/internal/config"
	"github.com/JT-427/line-event-logger/internal/observability"
)

const (
	backendSharePoint = "sharepoint"
	defaultGraphURL   = "https://graph.microsoft.com/v1.0"
	graphScope        = "https://graph.microsoft.com/.default"
)

type sharePointStorage struct {
	client    *http.Client
	driveRoot string
	folder    string
	creds     *credentialCache
	log       *slog.Logger
}

type graphDriveItem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	WebURL string `json:"webUrl"`
	Size   int64  `json:"size"`
	File   *struct {
		MimeType string `json:"mimeType"`
	} `json:"file,omitempty"`
}

func newSharePointStorage(cfg config.SharePointConfig, folder string, o options) (*sharePointStorage, error) {
	switch {
	case cfg.TenantID == "":
		return nil, &ConfigError{Backend: backendSharePoint, Setting: "SHAREPOINT_TENANT_ID"}
	case cfg.ClientID == "":
		return nil, &ConfigError{Backend: backendSharePoint, Setting: "SHAREPOINT_CLIENT_ID"}
	case cfg.ClientSecret == "":
		return nil, &ConfigError{Backend: backendSharePoint, Setting: "SHAREPOINT_CLIENT_SECRET"}
	case cfg.DriveID == "" && cfg.SiteID == "":
		return nil, &ConfigError{Backend: backendSharePoint, Setting: "SHAREPOINT_DRIVE_ID or SHAREPOINT_SITE_ID"}
	}

	tokenURL := o.tokenURL
	if tokenURL == "" {
		tokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/v2.0/token", url.PathEscape(cfg.TenantID))
	}
	oauthCfg := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     tokenURL,
		Scopes:       []string{graphScope},
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	client := o.httpClient
	exchange := func(ctx context.Context) (*oauth2.Token, error) {
		return oauthCfg.Token(context.WithValue(ctx, oauth2.HTTPClient, client))
	}

	driveRoot := o.graphURL + "/drives/" + url.PathEscape(cfg.DriveID)
	if cfg.DriveID == "" {
		driveRoot = o.graphURL + "/sites/" + url.PathEscape(cfg.SiteID) + "/drive"
	}

	return &sharePointStorage{
		client:    client,
		driveRoot: driveRoot,
		folder:    folder,
		creds:     newCredentialCache(exchange, o.now),
		log:       o.logger,
	}, nil
}

func (s *sharePointStorage) Upload(ctx context.Context, content []byte, fileName, contentType string) (ports.StoredFile, error) {
	ctx, span := observability.StartStorageSpan(ctx, backendSharePoint, "upload")
	defer span.End()

	stored, err := s.upload(ctx, content, fileName, contentType)
	span.RecordError(err)
	return stored, err
}

func (s *sharePointStorage) upload(ctx context.Context, content []byte, fileName, contentType string) (ports.StoredFile, error) {
	if len(content) == 0 {
		return ports.StoredFile{}, emptyContentError(backendSharePoint)
	}
	token, err := s.creds.AccessToken(ctx)
	if err != nil {
		return ports.StoredFile{}, tokenError(backendSharePoint, err)
	}
	if err := s.ensureFolder(ctx, token); err != nil {
		return ports.StoredFile{}, err
	}

	name := UniqueName(fileName)
	contentType = ResolveContentType(contentType, fileName, content)
	uploadURL, err := s.createUploadSession(ctx, token, name)
	if err != nil {
		return ports.StoredFile{}, err
	}

	// Graph upload URLs are pre-authorized and reject a bearer header.
	var item graphDriveItem
	if err := putContent(ctx, s.client, backendSharePoint, uploadURL, "", contentType, content, &item); err != nil {
		return ports.StoredFile{}, err
	}

	stored := ports.StoredFile{
		ID:           item.ID,
		Name:         item.Name,
		OriginalName: fileName,
		URL:          item.WebURL,
		ContentType:  contentType,
		Size:         item.Size,
	}
	if stored.Name == "" {
		stored.Name = name
	}
	if stored.Size == 0 {
		stored.Size = int64(len(content))
	}
	return stored, nil
}

func (s *sharePointStorage) ensureFolder(ctx context.Context, token string) error {
	resp, err := doRemote(ctx, s.client, remoteCall{
		backend: backendSharePoint,
		op:      "probe_folder",
		method:  http.MethodGet,
		url:     s.driveRoot + "/root:/" + escapePath(s.folder),
		token:   token,
	})
	if err != nil {
		return err
	}
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		drain(resp)
		return nil
	case resp.StatusCode != http.StatusNotFound:
		defer resp.Body.Close()
		return statusError(backendSharePoint, "probe_folder", resp)
	}
	drain(resp)

	resp, err = doRemote(ctx, s.client, remoteCall{
		backend: backendSharePoint,
		op:      "create_folder",
		method:  http.MethodPost,
		url:     s.driveRoot + "/root/children",
		token:   token,
		body: map[string]any{
			"name":                              s.folder,
			"folder":                            map[string]any{},
			"@microsoft.graph.conflictBehavior": "replace",
		},
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(backendSharePoint, "create_folder", resp)
	}
	s.log.Info("storage_folder_created", "backend", backendSharePoint, "folder", s.folder)
	return nil
}

func (s *sharePointStorage) createUploadSession(ctx context.Context, token, name string) (string, error) {
	resp, err := doRemote(ctx, s.client, remoteCall{
		backend: backendSharePoint,
		op:      "create_session",
		method:  http.MethodPost,
		url:     s.driveRoot + "/root:/" + escapePath(s.folder) + "/" + url.PathEscape(name) + ":/createUploadSession",
		token:   token,
		body: map[string]any{
			"item": map[string]any{
				"@microsoft.graph.conflictBehavior": "rename",
				"name":                              name,
			},
		},
	})
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", statusError(backendSharePoint, "create_session", resp)
	}

	var session struct {
		UploadURL string `json:"uploadUrl"`
	}
	if err := decodeBody(backendSharePoint, "create_session", resp, &session); err != nil {
		return "", err
	}
	if session.UploadURL == "" {
		return "", &UploadError{Backend: backendSharePoint, Op: "create_session", Status: resp.StatusCode, Detail: "response has no uploadUrl"}
	}
	return session.UploadURL, nil
}

func (s *sharePointStorage) Delete(ctx context.Context, storageID string) bool {
	ctx, span := observability.StartStorageSpan(ctx, backendSharePoint, "delete")
	defer span.End()

	if strings.TrimSpace(storageID) == "" {
		return false
	}
	token, err := s.creds.AccessToken(ctx)
	if err != nil {
		span.RecordError(err)
		s.log.Warn("storage_delete_failed", "backend", backendSharePoint, "storage_id", storageID, "error", err)
		return false
	}
	resp, err := doRemote(ctx, s.client, remoteCall{
		backend: backendSharePoint,
		op:      "delete",
		method:  http.MethodDelete,
		url:     s.driveRoot + "/items/" + url.PathEscape(storageID),
		token:   token,
	})
	if err != nil {
		span.RecordError(err)
		s.log.Warn("storage_delete_failed", "backend", backendSharePoint, "storage_id", storageID, "error", err)
		return false
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusNoContent {
		s.log.Warn("storage_delete_failed", "backend", backendSharePoint, "storage_id", storageID, "status", resp.StatusCode)
		return false
	}
	return true
}

func escapePath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
