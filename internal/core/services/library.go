package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/archivus-ai/archivus/internal/core/domain"
	"github.com/archivus-ai/archivus/internal/core/ports/driven"
	"github.com/archivus-ai/archivus/internal/core/ports/driving"
	"github.com/archivus-ai/archivus/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService manages collections, their documents and sessions.
type LibraryService struct {
	collections driven.CollectionStore
	docStore    driven.DocumentStore
	chatStore   driven.ChatStore
	index       driven.VectorIndex
}

// NewLibraryService creates a library service.
func NewLibraryService(
	collections driven.CollectionStore,
	docStore driven.DocumentStore,
	chatStore driven.ChatStore,
	index driven.VectorIndex,
) *LibraryService {
	return &LibraryService{
		collections: collections,
		docStore:    docStore,
		chatStore:   chatStore,
		index:       index,
	}
}

// CreateCollection creates a collection. A private collection needs a
// non-empty access code; only its hash is stored.
func (s *LibraryService) CreateCollection(ctx context.Context, name, description, code string, public bool) (*domain.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}
	if !public && code == "" {
		return nil, fmt.Errorf("%w: private collection needs an access code", domain.ErrInvalidInput)
	}

	collection := domain.Collection{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Public:      public,
		CreatedAt:   time.Now().UTC(),
	}
	if !public {
		collection.CodeHash = hashCode(code)
	}

	if err := s.collections.Save(ctx, collection); err != nil {
		return nil, fmt.Errorf("saving collection: %w", err)
	}

	logger.Info("Collection %q created (%s)", name, collection.ID)
	return &collection, nil
}

// ListCollections returns all collections.
func (s *LibraryService) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	collections, err := s.collections.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return collections, nil
}

// Unlock verifies an access code against a collection. Public
// collections always unlock.
func (s *LibraryService) Unlock(ctx context.Context, collectionID, code string) error {
	collection, err := s.collections.Get(ctx, collectionID)
	if err != nil {
		return fmt.Errorf("looking up collection %s: %w", collectionID, err)
	}
	if collection.Public {
		return nil
	}

	supplied := hashCode(code)
	if subtle.ConstantTimeCompare([]byte(supplied), []byte(collection.CodeHash)) != 1 {
		return fmt.Errorf("%w: collection %s", domain.ErrAccessDenied, collectionID)
	}
	return nil
}

// ListDocuments returns the documents of a collection with chunk counts.
func (s *LibraryService) ListDocuments(ctx context.Context, collectionID string) ([]domain.DocumentInfo, error) {
	if _, err := s.collections.Get(ctx, collectionID); err != nil {
		return nil, fmt.Errorf("looking up collection %s: %w", collectionID, err)
	}
	infos, err := s.docStore.ListDocuments(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return infos, nil
}

// DeleteDocument removes a document, its chunks and its index vectors.
func (s *LibraryService) DeleteDocument(ctx context.Context, documentID string) error {
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return fmt.Errorf("looking up document %s: %w", documentID, err)
	}

	if err := s.removeVectors(ctx, documentID); err != nil {
		return err
	}

	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("deleting document %s: %w", documentID, err)
	}

	logger.Info("Document %s deleted", documentID)
	return nil
}

// DeleteCollection removes a collection and everything it owns,
// including the documents' index vectors.
func (s *LibraryService) DeleteCollection(ctx context.Context, collectionID string) error {
	if _, err := s.collections.Get(ctx, collectionID); err != nil {
		return fmt.Errorf("looking up collection %s: %w", collectionID, err)
	}

	infos, err := s.docStore.ListDocuments(ctx, collectionID)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}
	for _, info := range infos {
		if err := s.removeVectors(ctx, info.ID); err != nil {
			return err
		}
	}

	if err := s.collections.Delete(ctx, collectionID); err != nil {
		return fmt.Errorf("deleting collection %s: %w", collectionID, err)
	}

	logger.Info("Collection %s deleted (%d document(s))", collectionID, len(infos))
	return nil
}

// SessionMessages returns a session's messages in chronological order.
func (s *LibraryService) SessionMessages(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	if _, err := s.chatStore.GetSession(ctx, sessionID); err != nil {
		return nil, fmt.Errorf("looking up session %s: %w", sessionID, err)
	}
	messages, err := s.chatStore.ListMessages(ctx, sessionID, 0)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return messages, nil
}

// removeVectors drops every chunk vector of one document from the index.
func (s *LibraryService) removeVectors(ctx context.Context, documentID string) error {
	ids, err := s.docStore.ListChunkIDs(ctx, documentID)
	if err != nil {
		return fmt.Errorf("listing chunks of document %s: %w", documentID, err)
	}
	for _, id := range ids {
		if err := s.index.Delete(ctx, id); err != nil {
			return fmt.Errorf("removing vector %s: %w", id, err)
		}
	}
	return nil
}

// hashCode hashes an access code for storage and comparison.
func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
