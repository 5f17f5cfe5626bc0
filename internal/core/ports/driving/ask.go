package driving

import (
	"context"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

// AskRequest carries one question-answering cycle's input.
type AskRequest struct {
	// CollectionID scopes retrieval. Required.
	CollectionID string

	// SessionID resumes an existing conversation. Empty means a new
	// session is created lazily with the first turn.
	SessionID string

	// Question is the natural-language question.
	Question string

	// K is the number of seed chunks to retrieve. Zero uses the
	// configured default.
	K int

	// History optionally overrides stored history. When nil, history
	// is loaded from the session.
	History []domain.ChatMessage
}

// AskService answers questions against a collection's documents.
type AskService interface {
	// Ask runs one full retrieval-and-generation cycle and persists
	// the resulting turn. Any failure before persistence leaves no
	// partial conversation state.
	Ask(ctx context.Context, req AskRequest) (*domain.Answer, error)
}
