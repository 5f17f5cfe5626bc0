package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChunking indicates an invalid chunking configuration,
	// such as overlap greater than or equal to chunk size. It is fatal
	// to the single operation and never silently corrected.
	ErrInvalidChunking = errors.New("invalid chunking configuration")

	// ErrEmptyDocument indicates a document produced no text or no
	// chunks after normalisation. Surfaced per file during ingestion;
	// it does not abort a batch.
	ErrEmptyDocument = errors.New("document is empty after processing")

	// ErrNoTextExtracted indicates the decoder produced no usable text,
	// for example a scanned, image-only PDF.
	ErrNoTextExtracted = errors.New("no text could be extracted")

	// ErrUnsupportedFormat indicates an unknown file extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrCollectionEmpty indicates the collection has no indexed chunks
	// yet. This is a normal pre-ingestion state, not a data error.
	ErrCollectionEmpty = errors.New("collection has no indexed documents")

	// ErrUpstream indicates the embedding or generation capability
	// failed or timed out. The core does not retry; the error is
	// propagated without leaking provider internals.
	ErrUpstream = errors.New("upstream AI service failed")

	// ErrAccessDenied indicates a wrong or missing collection access code.
	ErrAccessDenied = errors.New("access denied")
)
