package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	// SQLite driver.
	_ "modernc.org/sqlite"

	"github.com/JT-427/line-event-logger/internal/db/queries"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	driver           = "sqlite"
	defaultPath      = "data/line-events"
	migrationTimeout = 30 * time.Second
)

// Database is the event and message store. Queries run through a latency
// tracker so slow statements show up in QueryLatencyStats.
type Database struct {
	*queries.Queries
	conn    *sql.DB
	tracker *queryLatencyTracker
}

// New opens {path}.sqlite, creating parent directories, and migrates it to
// the latest schema.
func New(path string) (*Database, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	conn, err := sql.Open(driver, sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()
	if err := migrate(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, err
	}

	tracker := newQueryLatencyTracker()
	return &Database{
		Queries: queries.New(newInstrumentedDBTX(conn, tracker)),
		conn:    conn,
		tracker: tracker,
	}, nil
}

func migrate(ctx context.Context, conn *sql.DB) error {
	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, conn, migrations)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	return nil
}

func sqliteDSN(path string) string {
	values := url.Values{}
	for _, pragma := range []string{
		"journal_mode(WAL)",
		"synchronous(NORMAL)",
		"busy_timeout(5000)",
		"temp_store(MEMORY)",
	} {
		values.Add("_pragma", pragma)
	}
	return fmt.Sprintf("file:%s.sqlite?%s", path, values.Encode())
}

// Ping reports whether the database answers.
func (c *Database) Ping(ctx context.Context) error {
	return c.conn.PingContext(ctx)
}

// Close closes the underlying database connection.
func (c *Database) Close() error {
	return c.conn.Close()
}
