package driven

import (
	"context"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

// ChatStore persists sessions and their messages.
type ChatStore interface {
	// GetSession retrieves a session by ID.
	GetSession(ctx context.Context, id string) (*domain.Session, error)

	// ListMessages returns at most limit messages of a session,
	// earliest first, in chronological order. limit <= 0 means all.
	ListMessages(ctx context.Context, sessionID string, limit int) ([]domain.ChatMessage, error)

	// AppendTurn persists one question/answer pair. The session row is
	// upserted and both messages inserted inside the same transaction,
	// so a failed cycle leaves no partial conversation state and two
	// racing first questions cannot produce duplicate sessions.
	AppendTurn(ctx context.Context, session domain.Session, turn domain.Turn) error

	// DeleteSession removes a session and cascades to its messages.
	DeleteSession(ctx context.Context, id string) error
}
