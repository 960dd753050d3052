package sqlite

import (
	"context"

	"github.com/JT-427/line-event-logger/internal/db/queries"
)

type ingestionDatabase interface {
	AppendLineEvent(ctx context.Context, params queries.AppendLineEventParams) error
	InsertMessage(ctx context.Context, params queries.InsertMessageParams) error
}

type messageDatabase interface {
	ListMessagesByChat(ctx context.Context, params queries.ListMessagesByChatParams) ([]queries.Message, error)
	GetMessageByMessageID(ctx context.Context, messageID string) (queries.Message, error)
}
