package driven

import (
	"context"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

// AnswerGenerator produces the final answer from a question, the
// assembled context and bounded conversation history.
//
// Implementations may include:
//   - Groq (Llama models via OpenAI-compatible API)
//   - OpenAI
//   - Local models via inference servers
type AnswerGenerator interface {
	// Generate produces an answer grounded in the supplied context text.
	// history is ordered oldest first and already capped by the caller.
	Generate(ctx context.Context, question, contextText string, history []domain.ChatMessage) (string, error)

	// ModelName returns the name of the generation model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
