package driven

import "context"

// VectorIndex provides semantic similarity search over chunk vectors.
// It is an explicitly owned, injectable component constructed once per
// process; implementations must serialise mutations while allowing
// concurrent reads.
type VectorIndex interface {
	// Add inserts a vector for the given chunk ID, tagged with its
	// collection scope. First ingestion and subsequent ingestions use
	// the same code path.
	Add(ctx context.Context, chunkID, collectionID string, embedding []float32) error

	// Delete removes a vector from the index.
	Delete(ctx context.Context, chunkID string) error

	// Search finds the k nearest neighbours to the query vector,
	// best match first. When scope is non-empty only vectors tagged
	// with that collection participate; an empty scope match set
	// yields an empty result, not an error.
	Search(ctx context.Context, query []float32, k int, scope string) ([]VectorHit, error)

	// Len returns the number of stored vectors.
	Len() int

	// Close releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Score is the similarity score; higher ranks first.
	Score float64
}
