// Package domain defines the core business entities for Archivus.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Collection: A scoping unit for retrieval and chat
//   - Document: An ingested document owned by a collection
//   - Chunk: An embeddable, retrievable span of a document
//   - Session: A conversation attached to a collection
//   - ChatMessage: One user or assistant message within a session
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
