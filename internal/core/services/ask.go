package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/archivus-ai/archivus/internal/core/domain"
	"github.com/archivus-ai/archivus/internal/core/ports/driven"
	"github.com/archivus-ai/archivus/internal/core/ports/driving"
	"github.com/archivus-ai/archivus/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// DefaultTopK is the number of seed chunks retrieved per question.
const DefaultTopK = 5

// AskService runs the question-answering cycle: embed, retrieve,
// expand, assemble, generate, persist. Failure at any stage before
// the final persist leaves no conversation state.
type AskService struct {
	docStore    driven.DocumentStore
	collections driven.CollectionStore
	embedder    driven.EmbeddingProvider
	generator   driven.AnswerGenerator
	index       driven.VectorIndex
	expander    *Expander
	history     *HistoryService
	maxContext  int
}

// NewAskService creates an ask service. A non-positive maxContext
// falls back to DefaultMaxContextChars.
func NewAskService(
	docStore driven.DocumentStore,
	collections driven.CollectionStore,
	embedder driven.EmbeddingProvider,
	generator driven.AnswerGenerator,
	index driven.VectorIndex,
	expander *Expander,
	history *HistoryService,
	maxContext int,
) *AskService {
	if maxContext <= 0 {
		maxContext = DefaultMaxContextChars
	}
	return &AskService{
		docStore:    docStore,
		collections: collections,
		embedder:    embedder,
		generator:   generator,
		index:       index,
		expander:    expander,
		history:     history,
		maxContext:  maxContext,
	}
}

// Ask answers one question against a collection's documents and
// persists the turn.
func (s *AskService) Ask(ctx context.Context, req driving.AskRequest) (*domain.Answer, error) {
	logger.Section("Question Cycle")

	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if req.CollectionID == "" {
		return nil, fmt.Errorf("%w: missing collection", domain.ErrInvalidInput)
	}

	if _, err := s.collections.Get(ctx, req.CollectionID); err != nil {
		return nil, fmt.Errorf("looking up collection %s: %w", req.CollectionID, err)
	}

	// A collection with no indexed chunks is a normal pre-ingestion
	// state, reported distinctly before anything is written.
	has, err := s.docStore.HasChunks(ctx, req.CollectionID)
	if err != nil {
		return nil, fmt.Errorf("checking collection %s: %w", req.CollectionID, err)
	}
	if !has {
		return nil, fmt.Errorf("%w: collection %s", domain.ErrCollectionEmpty, req.CollectionID)
	}

	// Sessions are created lazily: the identity is minted here but
	// only persisted with the completed first turn.
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
		logger.Debug("New session %s", sessionID)
	}

	history := req.History
	if history == nil {
		history, err = s.history.Load(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
	}
	logger.Debug("History: %d message(s)", len(history))

	queryVector, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	k := req.K
	if k <= 0 {
		k = DefaultTopK
	}
	hits, err := s.index.Search(ctx, queryVector, k, req.CollectionID)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}
	logger.Debug("Retrieved %d seed(s)", len(hits))

	seeds := make([]domain.Seed, 0, len(hits))
	expansions := make([][]domain.Chunk, 0, len(hits))
	for _, hit := range hits {
		chunk, err := s.docStore.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			return nil, fmt.Errorf("loading chunk %s: %w", hit.ChunkID, err)
		}
		seeds = append(seeds, domain.Seed{Chunk: *chunk, Score: hit.Score})

		neighbourhood, err := s.expander.Expand(ctx, chunk.DocumentID, chunk.Index)
		if err != nil {
			return nil, err
		}
		expansions = append(expansions, neighbourhood)
	}

	contextText, kept, truncated := AssembleContext(expansions, s.maxContext)
	logger.Debug("Assembled context: %d part(s), %d chars, truncated=%t", kept, len(contextText), truncated)

	answerText, err := s.generator.Generate(ctx, question, contextText, s.history.CapForGeneration(history))
	if err != nil {
		return nil, fmt.Errorf("generating answer: %w", err)
	}

	session := domain.Session{
		ID:           sessionID,
		CollectionID: req.CollectionID,
	}
	if err := s.history.AppendTurn(ctx, session, domain.Turn{
		Question: question,
		Answer:   answerText,
	}); err != nil {
		return nil, err
	}
	logger.Info("Turn persisted to session %s", sessionID)

	return &domain.Answer{
		SessionID: sessionID,
		Question:  question,
		Text:      answerText,
		Seeds:     seeds,
		Context:   contextText,
		Truncated: truncated,
	}, nil
}
