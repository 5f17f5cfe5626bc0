package services

import (
	"context"
	"fmt"

	"github.com/archivus-ai/archivus/internal/core/domain"
	"github.com/archivus-ai/archivus/internal/core/ports/driven"
)

// DefaultWindow is the neighbour radius used when none is configured.
const DefaultWindow = 2

// Expander fetches the neighbourhood of a retrieved chunk. A single
// retrieved chunk can cut off the explanatory context of a relevant
// idea; fetching its neighbours restores it without re-ranking.
type Expander struct {
	docStore driven.DocumentStore
	window   int
}

// NewExpander creates an expander with the given neighbour radius.
// A non-positive window falls back to DefaultWindow.
func NewExpander(docStore driven.DocumentStore, window int) *Expander {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Expander{
		docStore: docStore,
		window:   window,
	}
}

// Expand returns the chunks of one document whose index lies in
// [center-window, center+window], ascending. Indices outside the
// document's range are simply absent.
func (e *Expander) Expand(ctx context.Context, documentID string, center int) ([]domain.Chunk, error) {
	chunks, err := e.docStore.GetChunkRange(ctx, documentID, center-e.window, center+e.window)
	if err != nil {
		return nil, fmt.Errorf("expanding around chunk %d of document %s: %w", center, documentID, err)
	}
	return chunks, nil
}
