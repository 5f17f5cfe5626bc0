package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/archivus-ai/archivus/internal/core/domain"
	"github.com/archivus-ai/archivus/internal/core/ports/driven"
)

// Ensure ChatStore implements the interface.
var _ driven.ChatStore = (*ChatStore)(nil)

// ChatStore is an in-memory implementation of driven.ChatStore.
type ChatStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
	messages map[string][]domain.ChatMessage // sessionID -> messages in order
}

// NewChatStore creates a new in-memory chat store.
func NewChatStore() *ChatStore {
	return &ChatStore{
		sessions: make(map[string]domain.Session),
		messages: make(map[string][]domain.ChatMessage),
	}
}

// GetSession retrieves a session by ID.
func (s *ChatStore) GetSession(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &session, nil
}

// ListMessages returns at most limit messages, earliest first.
// limit <= 0 returns all messages.
func (s *ChatStore) ListMessages(_ context.Context, sessionID string, limit int) ([]domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages := s.messages[sessionID]
	if limit > 0 && limit < len(messages) {
		messages = messages[:limit]
	}
	out := make([]domain.ChatMessage, len(messages))
	copy(out, messages)
	return out, nil
}

// AppendTurn upserts the session and appends the question and answer
// messages under one lock acquisition.
func (s *ChatStore) AppendTurn(_ context.Context, session domain.Session, turn domain.Turn) error {
	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.sessions[session.ID]
	if ok {
		existing.UpdatedAt = now
		s.sessions[session.ID] = existing
	} else {
		if session.CreatedAt.IsZero() {
			session.CreatedAt = now
		}
		session.UpdatedAt = now
		s.sessions[session.ID] = session
	}

	s.messages[session.ID] = append(s.messages[session.ID],
		domain.ChatMessage{
			ID:        uuid.NewString(),
			SessionID: session.ID,
			Role:      domain.RoleUser,
			Content:   turn.Question,
			CreatedAt: now,
		},
		domain.ChatMessage{
			ID:        uuid.NewString(),
			SessionID: session.ID,
			Role:      domain.RoleAssistant,
			Content:   turn.Answer,
			CreatedAt: now,
		})
	return nil
}

// DeleteSession removes a session and its messages.
func (s *ChatStore) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	delete(s.messages, id)
	return nil
}
