package storage

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JT-427/line-event-logger/internal/config"
)

type fakeDrive struct {
	t      *testing.T
	server *httptest.Server

	// failures maps an upload step to the status its route answers with.
	failures map[string]int

	mu              sync.Mutex
	folderID        string
	tokenRequests   int
	folderCreates   int
	sessionRequests int
	listQueries     []string
	uploadHeaders   http.Header
	uploadMeta      map[string]any
	putBody         []byte
	putRange        string
}

func newFakeDrive(t *testing.T, folderID string) *fakeDrive {
	d := &fakeDrive{t: t, folderID: folderID, failures: map[string]int{}}
	d.server = httptest.NewServer(http.HandlerFunc(d.serve))
	t.Cleanup(d.server.Close)
	return d
}

func (d *fakeDrive) serve(w http.ResponseWriter, r *http.Request) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/token":
		d.tokenRequests++
		if d.fail(w, "token") {
			return
		}
		_ = r.ParseForm()
		if r.PostForm.Get("assertion") == "" {
			http.Error(w, "missing assertion", http.StatusBadRequest)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"drive-token","token_type":"Bearer","expires_in":3600}`)
	case r.Header.Get("Authorization") != "Bearer drive-token" && r.URL.Path != "/session/1":
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	case r.Method == http.MethodGet && r.URL.Path == "/drive/v3/files":
		d.listQueries = append(d.listQueries, r.URL.Query().Get("q"))
		if d.fail(w, "probe_folder") {
			return
		}
		files := []map[string]string{}
		if d.folderID != "" {
			files = append(files, map[string]string{"id": d.folderID, "name": "LineRecorderData"})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"files": files})
	case r.Method == http.MethodPost && r.URL.Path == "/drive/v3/files":
		d.folderCreates++
		if d.fail(w, "create_folder") {
			return
		}
		d.folderID = "folder-new"
		_, _ = io.WriteString(w, `{"id":"folder-new"}`)
	case r.Method == http.MethodPost && r.URL.Path == "/upload/drive/v3/files":
		if r.URL.Query().Get("uploadType") != "resumable" {
			http.Error(w, "expected resumable", http.StatusBadRequest)
			return
		}
		d.sessionRequests++
		if d.fail(w, "create_session") {
			return
		}
		d.uploadHeaders = r.Header.Clone()
		d.uploadMeta = map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&d.uploadMeta)
		w.Header().Set("Location", d.server.URL+"/session/1")
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && r.URL.Path == "/session/1":
		d.putBody, _ = io.ReadAll(r.Body)
		d.putRange = r.Header.Get("Content-Range")
		if d.fail(w, "put_content") {
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"id":          "file-7",
			"name":        "uploaded.mp4",
			"webViewLink": "https://drive.google.com/file/d/file-7/view",
			"size":        strconv.Itoa(len(d.putBody)),
		})
	case r.Method == http.MethodDelete && r.URL.Path == "/drive/v3/files/file-7":
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodDelete:
		http.Error(w, "not found", http.StatusNotFound)
	default:
		d.t.Errorf("unexpected drive request %s %s", r.Method, r.URL.String())
		http.Error(w, "unexpected", http.StatusTeapot)
	}
}

func (d *fakeDrive) fail(w http.ResponseWriter, step string) bool {
	status, ok := d.failures[step]
	if !ok {
		return false
	}
	http.Error(w, step+" refused", status)
	return true
}

func serviceAccountJSON(t *testing.T, tokenURL string) string {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	raw, err := json.Marshal(map[string]string{
		"type":           "service_account",
		"project_id":     "line-recorder",
		"private_key_id": "key-1",
		"private_key":    string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})),
		"client_email":   "recorder@line-recorder.iam.gserviceaccount.com",
		"client_id":      "1234",
		"token_uri":      tokenURL,
	})
	require.NoError(t, err)
	return string(raw)
}

func (d *fakeDrive) backend(t *testing.T, credentials, parentID string) *googleDriveStorage {
	t.Helper()
	backend, err := New(config.StorageConfig{
		Type:        "google_drive",
		GoogleDrive: config.GoogleDriveConfig{Credentials: credentials, ParentID: parentID},
	},
		WithHTTPClient(d.server.Client()),
		WithDriveEndpoint(d.server.URL),
	)
	require.NoError(t, err)
	return backend.(*googleDriveStorage)
}

func TestGoogleDriveResumableUpload(t *testing.T) {
	drive := newFakeDrive(t, "folder-1")
	backend := drive.backend(t, serviceAccountJSON(t, drive.server.URL+"/token"), "")

	content := []byte("mp4-content")
	stored, err := backend.Upload(context.Background(), content, "m9.mp4", "video/mp4")
	require.NoError(t, err)

	require.Equal(t, "file-7", stored.ID)
	require.Equal(t, "uploaded.mp4", stored.Name)
	require.Equal(t, "m9.mp4", stored.OriginalName)
	require.Equal(t, "https://drive.google.com/file/d/file-7/view", stored.URL)
	require.Equal(t, "video/mp4", stored.ContentType)
	require.EqualValues(t, len(content), stored.Size)

	require.Equal(t, content, drive.putBody)
	require.Equal(t, "bytes 0-10/11", drive.putRange)
	require.Equal(t, "video/mp4", drive.uploadHeaders.Get("X-Upload-Content-Type"))
	require.Equal(t, "11", drive.uploadHeaders.Get("X-Upload-Content-Length"))
	require.Equal(t, []any{"folder-1"}, drive.uploadMeta["parents"])
	require.Zero(t, drive.folderCreates)
}

func TestGoogleDriveCreatesFolderUnderParent(t *testing.T) {
	drive := newFakeDrive(t, "")
	backend := drive.backend(t, serviceAccountJSON(t, drive.server.URL+"/token"), "root-parent")

	for i := 0; i < 2; i++ {
		_, err := backend.Upload(context.Background(), []byte("x"), "a.bin", "")
		require.NoError(t, err)
	}
	require.Equal(t, 1, drive.folderCreates)
	require.Len(t, drive.listQueries, 2)
	require.Contains(t, drive.listQueries[0], "'root-parent' in parents")
	require.Equal(t, []any{"folder-new"}, drive.uploadMeta["parents"])
}

func TestGoogleDriveCredentialsFromFile(t *testing.T) {
	drive := newFakeDrive(t, "folder-1")
	path := filepath.Join(t.TempDir(), "sa.json")
	require.NoError(t, os.WriteFile(path, []byte(serviceAccountJSON(t, drive.server.URL+"/token")), 0o600))

	backend := drive.backend(t, path, "")
	require.True(t, backend.Delete(context.Background(), "file-7"))
	require.False(t, backend.Delete(context.Background(), "file-unknown"))
}

func TestGoogleDriveRejectsUnreadableCredentials(t *testing.T) {
	_, err := New(config.StorageConfig{
		Type:        "google_drive",
		GoogleDrive: config.GoogleDriveConfig{Credentials: filepath.Join(t.TempDir(), "missing.json")},
	})
	require.True(t, errors.Is(err, ErrConfiguration), "got %v", err)

	_, err = New(config.StorageConfig{
		Type:        "google_drive",
		GoogleDrive: config.GoogleDriveConfig{Credentials: `{"type":"service_account",`},
	})
	require.True(t, errors.Is(err, ErrConfiguration), "got %v", err)
}

func TestGoogleDriveFailuresAreUploadErrors(t *testing.T) {
	cases := []struct {
		name     string
		step     string
		status   int
		folderID string
	}{
		{name: "token rejected", step: "token", status: http.StatusUnauthorized, folderID: "folder-1"},
		{name: "folder lookup fails", step: "probe_folder", status: http.StatusInternalServerError, folderID: "folder-1"},
		{name: "folder creation forbidden", step: "create_folder", status: http.StatusForbidden},
		{name: "session refused", step: "create_session", status: http.StatusInternalServerError, folderID: "folder-1"},
		{name: "content rejected", step: "put_content", status: http.StatusInternalServerError, folderID: "folder-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			drive := newFakeDrive(t, tc.folderID)
			drive.failures[tc.step] = tc.status
			backend := drive.backend(t, serviceAccountJSON(t, drive.server.URL+"/token"), "")

			_, err := backend.Upload(context.Background(), []byte("x"), "a.txt", "")
			var uploadErr *UploadError
			require.True(t, errors.As(err, &uploadErr), "got %v", err)
			require.Equal(t, backendGoogleDrive, uploadErr.Backend)
			require.Equal(t, tc.step, uploadErr.Op)
			require.Equal(t, tc.status, uploadErr.Status)
			require.Contains(t, uploadErr.Detail, tc.step+" refused")
		})
	}
}

func TestGoogleDriveRejectsEmptyContentBeforeSession(t *testing.T) {
	drive := newFakeDrive(t, "folder-1")
	backend := drive.backend(t, serviceAccountJSON(t, drive.server.URL+"/token"), "")

	_, err := backend.Upload(context.Background(), []byte{}, "empty.bin", "")
	var uploadErr *UploadError
	require.True(t, errors.As(err, &uploadErr), "got %v", err)
	require.Equal(t, "upload", uploadErr.Op)
	require.Equal(t, "empty content", uploadErr.Detail)
	require.Zero(t, drive.sessionRequests)
	require.Zero(t, drive.tokenRequests)
}
