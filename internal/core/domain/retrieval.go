package domain

// Seed is a chunk returned directly by nearest-neighbour retrieval,
// before neighbour expansion, with its similarity score.
type Seed struct {
	// Chunk is the retrieved chunk.
	Chunk Chunk

	// Score is the similarity score; higher is better.
	Score float64
}

// Answer is the result of one question-answering cycle.
type Answer struct {
	// SessionID identifies the conversation the turn was persisted to.
	// For a question without a pre-existing session this is the
	// freshly created identity.
	SessionID string

	// Question is the question as asked.
	Question string

	// Text is the generated answer.
	Text string

	// Seeds are the retrieved chunks in rank order, best first.
	Seeds []Seed

	// Context is the assembled, deduplicated, budget-truncated
	// text that was passed to the generator.
	Context string

	// Truncated reports whether the context budget dropped parts.
	Truncated bool
}
