package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/archivus-ai/archivus/internal/core/domain"
	"github.com/archivus-ai/archivus/internal/core/ports/driven"
)

// Conversation history defaults. Loading takes the earliest messages
// of a session; sending keeps the most recent ones. The two windows
// are deliberately independent knobs.
const (
	DefaultMaxHistoryLoaded = 20
	DefaultMaxHistorySent   = 10
)

// HistoryService composes bounded conversation history around the
// chat store.
type HistoryService struct {
	chatStore driven.ChatStore
	maxLoaded int
	maxSent   int
}

// NewHistoryService creates a history service. Non-positive limits
// fall back to the defaults.
func NewHistoryService(chatStore driven.ChatStore, maxLoaded, maxSent int) *HistoryService {
	if maxLoaded <= 0 {
		maxLoaded = DefaultMaxHistoryLoaded
	}
	if maxSent <= 0 {
		maxSent = DefaultMaxHistorySent
	}
	return &HistoryService{
		chatStore: chatStore,
		maxLoaded: maxLoaded,
		maxSent:   maxSent,
	}
}

// Load returns the earliest stored messages of a session, at most the
// configured load limit, in chronological order. An unknown session
// is an empty conversation, not an error.
func (h *HistoryService) Load(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	if sessionID == "" {
		return nil, nil
	}
	messages, err := h.chatStore.ListMessages(ctx, sessionID, h.maxLoaded)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading history for session %s: %w", sessionID, err)
	}
	return messages, nil
}

// CapForGeneration keeps the most recent messages up to the send
// limit, preserving chronological order.
func (h *HistoryService) CapForGeneration(history []domain.ChatMessage) []domain.ChatMessage {
	if len(history) <= h.maxSent {
		return history
	}
	return history[len(history)-h.maxSent:]
}

// AppendTurn persists one question/answer pair, creating the session
// lazily on first use. The write is atomic: a failed cycle leaves no
// partial conversation state.
func (h *HistoryService) AppendTurn(ctx context.Context, session domain.Session, turn domain.Turn) error {
	if err := h.chatStore.AppendTurn(ctx, session, turn); err != nil {
		return fmt.Errorf("persisting turn for session %s: %w", session.ID, err)
	}
	return nil
}
