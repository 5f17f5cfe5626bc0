package driving

import (
	"context"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

// LibraryService manages collections, their documents and sessions.
type LibraryService interface {
	// CreateCollection creates a collection. A non-empty code makes it
	// private; the code is stored hashed and never returned.
	CreateCollection(ctx context.Context, name, description, code string, public bool) (*domain.Collection, error)

	// ListCollections returns all collections.
	ListCollections(ctx context.Context) ([]domain.Collection, error)

	// Unlock verifies an access code against a private collection.
	// Public collections always unlock.
	Unlock(ctx context.Context, collectionID, code string) error

	// ListDocuments returns the documents of a collection with chunk counts.
	ListDocuments(ctx context.Context, collectionID string) ([]domain.DocumentInfo, error)

	// DeleteDocument removes a document, its chunks and its vectors.
	DeleteDocument(ctx context.Context, documentID string) error

	// DeleteCollection removes a collection and everything it owns.
	DeleteCollection(ctx context.Context, collectionID string) error

	// SessionMessages returns a session's messages in chronological order.
	SessionMessages(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
}
