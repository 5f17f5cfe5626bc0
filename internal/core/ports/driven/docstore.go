package driven

import (
	"context"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

// DocumentStore persists documents and chunks.
// Backed by SQLite for durable storage.
type DocumentStore interface {
	// SaveDocument stores a document together with all of its chunks
	// as a single transaction. Either everything is persisted or
	// nothing is: a failed file must leave no partial chunk rows.
	SaveDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns listing views for a collection,
	// newest first, with per-document chunk counts.
	ListDocuments(ctx context.Context, collectionID string) ([]domain.DocumentInfo, error)

	// DeleteDocument removes a document and cascades to its chunks.
	DeleteDocument(ctx context.Context, id string) error

	// GetChunk retrieves a specific chunk by ID.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// GetChunkRange returns chunks of one document whose index lies in
	// [from, to] inclusive, ordered ascending by index. Indices outside
	// the document's valid range are simply absent.
	GetChunkRange(ctx context.Context, documentID string, from, to int) ([]domain.Chunk, error)

	// ListChunkIDs returns the chunk IDs of a document in index order.
	ListChunkIDs(ctx context.Context, documentID string) ([]string, error)

	// HasChunks reports whether a collection has any indexed chunks.
	HasChunks(ctx context.Context, collectionID string) (bool, error)

	// AllChunks streams every stored chunk, used to warm the vector
	// index at startup.
	AllChunks(ctx context.Context) ([]domain.Chunk, error)
}
