package domain

import "time"

// Document represents one successfully ingested file.
// It is created once per ingestion and immutable afterwards,
// except for deletion, which cascades to its chunks.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// CollectionID links to the owning Collection.
	CollectionID string

	// Filename is the original upload name, kept for display.
	Filename string

	// Size is the raw upload size in bytes.
	Size int64

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk is a bounded contiguous span of a document's normalised text.
// Chunks are embedded and retrieved independently. For a given document,
// Index values form a contiguous range starting at 0 with no gaps.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// CollectionID is the retrieval scope, denormalised from the
	// parent document so scoped search never needs a join.
	CollectionID string

	// Index is the zero-based sequential position within the document.
	Index int

	// Filename is the owning file's name, denormalised for display.
	Filename string

	// Text is the normalised text span.
	Text string

	// Embedding is the vector representation. Its dimension is
	// constant across the whole index.
	Embedding []float32
}

// DocumentInfo is a listing view of a document with its chunk count.
type DocumentInfo struct {
	ID         string
	Filename   string
	Size       int64
	ChunkCount int
	CreatedAt  time.Time
}
