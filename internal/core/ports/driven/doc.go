// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Decoder: Extracts raw text from an uploaded file format
//   - DocumentStore: Document and chunk persistence
//   - CollectionStore: Collection persistence
//   - ChatStore: Session and message persistence
//   - EmbeddingProvider: Maps text to fixed-dimension vectors
//   - AnswerGenerator: Produces answers from question + context
//   - VectorIndex: Nearest-neighbour retrieval over chunk vectors
package driven
