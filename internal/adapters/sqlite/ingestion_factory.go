package sqlite

import (
	"fmt"

	"github.com/JT-427/line-event-logger/internal/app/ports"
	"github.com/JT-427/line-event-logger/internal/db"
)

// IngestionStoreFactory opens the store a webhook delivery writes through.
type IngestionStoreFactory struct {
	open func() (*db.Database, func() error, error)
}

// NewIngestionStoreFactory opens and migrates the database at dbPath for
// every delivery. Closing the store closes that connection. Tools that write
// rarely use it; the server shares one connection instead.
func NewIngestionStoreFactory(dbPath string) *IngestionStoreFactory {
	return &IngestionStoreFactory{open: func() (*db.Database, func() error, error) {
		database, err := db.New(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open ingestion store: %w", err)
		}
		return database, database.Close, nil
	}}
}

// NewSharedIngestionStoreFactory hands out stores over one long-lived
// connection that outlives them.
func NewSharedIngestionStoreFactory(shared *db.Database) *IngestionStoreFactory {
	return &IngestionStoreFactory{open: func() (*db.Database, func() error, error) {
		return shared, nil, nil
	}}
}

func (f *IngestionStoreFactory) Open() (ports.IngestionStore, error) {
	database, closeFn, err := f.open()
	if err != nil {
		return nil, err
	}
	return newIngestionStore(database, closeFn), nil
}

var _ ports.IngestionStoreFactory = (*IngestionStoreFactory)(nil)
