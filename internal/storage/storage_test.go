package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JT-427/line-event-logger/internal/config"
)

func TestNewSelectsBackendByKind(t *testing.T) {
	backend, err := New(config.StorageConfig{Type: "  LOCAL ", LocalDir: t.TempDir()})
	require.NoError(t, err)
	require.IsType(t, &localStorage{}, backend)

	first, err := New(config.StorageConfig{Type: "local", LocalDir: "a"})
	require.NoError(t, err)
	second, err := New(config.StorageConfig{Type: "local", LocalDir: "b"})
	require.NoError(t, err)
	require.NotSame(t, first, second)
}

func TestNewRejectsUnknownKind(t *testing.T) {
	_, err := New(config.StorageConfig{Type: "dropbox"})
	require.ErrorIs(t, err, ErrUnknownBackend)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestNewReportsMissingSharePointSetting(t *testing.T) {
	_, err := New(config.StorageConfig{
		Type:       "sharepoint",
		SharePoint: config.SharePointConfig{TenantID: "tenant", ClientID: "client", DriveID: "drive"},
	})
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
	require.Equal(t, "SHAREPOINT_CLIENT_SECRET", cfgErr.Setting)
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestNewRejectsNestedRemoteFolder(t *testing.T) {
	for _, cfg := range []config.StorageConfig{
		{
			Type:       "sharepoint",
			Folder:     "Line/Recorder",
			SharePoint: config.SharePointConfig{TenantID: "tenant", ClientID: "client", ClientSecret: "secret", DriveID: "drive"},
		},
		{
			Type:        "google_drive",
			Folder:      "/Line/Recorder/",
			GoogleDrive: config.GoogleDriveConfig{Credentials: "{}"},
		},
	} {
		_, err := New(cfg)
		var cfgErr *ConfigError
		require.True(t, errors.As(err, &cfgErr), "%s: got %v", cfg.Type, err)
		require.Equal(t, "STORAGE_FOLDER", cfgErr.Setting)
		require.Equal(t, "nested", cfgErr.Reason)
		require.ErrorIs(t, err, ErrConfiguration)
	}
}

func TestResolveContentType(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

	require.Equal(t, "audio/m4a", ResolveContentType("audio/m4a", "m1.m4a", nil))
	require.Equal(t, "image/png", ResolveContentType("", "chart.png", nil))
	require.Equal(t, "image/png", ResolveContentType("", "upload", png))
	require.Equal(t, "application/octet-stream", ResolveContentType("", "upload", nil))
}
