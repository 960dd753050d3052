package ports

import (
	"context"
	"errors"
)

// ErrNotFound reports a missing message.
var ErrNotFound = errors.New("not found")

// DefaultMessagePageSize bounds ListMessages when no limit is given.
const DefaultMessagePageSize = 50

// MessageQuery selects the recent messages of one chat.
type MessageQuery struct {
	ChatType string
	ChatID   string
	Limit    int64
}

// MessageReader serves stored messages to read endpoints.
type MessageReader interface {
	// GetMessage returns ErrNotFound when no message has the id.
	GetMessage(ctx context.Context, messageID string) (MessageRecord, error)
	ListMessages(ctx context.Context, query MessageQuery) ([]MessageRecord, error)
}
