package ports

import "context"

// StoredFile is the normalized result of a storage upload. Backends never
// return vendor-specific shapes beyond this.
type StoredFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
	URL          string `json:"url"`
	ContentType  string `json:"contentType"`
	Size         int64  `json:"size"`
}

// FileStorage uploads and deletes files on one storage backend.
type FileStorage interface {
	Upload(ctx context.Context, content []byte, fileName, contentType string) (StoredFile, error)
	// Delete is best effort and reports true only on a definitive success.
	Delete(ctx context.Context, storageID string) bool
}

// ContentFetcher downloads attachment bytes from the messaging platform.
type ContentFetcher interface {
	FetchContent(ctx context.Context, messageID string) ([]byte, error)
}

// MessagePublisher forwards persisted messages to downstream consumers.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, message MessageRecord) error
}
