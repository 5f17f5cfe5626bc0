package driven

import (
	"context"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

// CollectionStore persists collections.
type CollectionStore interface {
	// Save stores or updates a collection.
	Save(ctx context.Context, collection domain.Collection) error

	// Get retrieves a collection by ID.
	Get(ctx context.Context, id string) (*domain.Collection, error)

	// List returns all collections, newest first.
	List(ctx context.Context) ([]domain.Collection, error)

	// Delete removes a collection. Documents, sessions and their
	// dependants are removed by cascade.
	Delete(ctx context.Context, id string) error
}
