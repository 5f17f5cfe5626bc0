package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagemem "github.com/archivus-ai/archivus/internal/adapters/driven/storage/memory"
	"github.com/archivus-ai/archivus/internal/core/domain"
)

func seedChunkedDocument(t *testing.T, store *storagemem.DocumentStore, docID string, count int) {
	t.Helper()

	chunks := make([]domain.Chunk, count)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:           fmt.Sprintf("%s-c%d", docID, i),
			DocumentID:   docID,
			CollectionID: "col-1",
			Index:        i,
			Text:         fmt.Sprintf("chunk %d", i),
		}
	}
	require.NoError(t, store.SaveDocument(context.Background(), &domain.Document{
		ID: docID, CollectionID: "col-1", Filename: docID + ".txt",
	}, chunks))
}

func TestExpander_Window(t *testing.T) {
	store := storagemem.NewDocumentStore()
	seedChunkedDocument(t, store, "doc-1", 8)
	expander := NewExpander(store, 1)

	chunks, err := expander.Expand(context.Background(), "doc-1", 3)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Equal(t, 2, chunks[0].Index)
	assert.Equal(t, 3, chunks[1].Index)
	assert.Equal(t, 4, chunks[2].Index)
}

func TestExpander_ClipsAtDocumentEdges(t *testing.T) {
	store := storagemem.NewDocumentStore()
	seedChunkedDocument(t, store, "doc-1", 4)
	expander := NewExpander(store, 2)

	t.Run("start of document", func(t *testing.T) {
		chunks, err := expander.Expand(context.Background(), "doc-1", 0)
		require.NoError(t, err)
		require.Len(t, chunks, 3)
		assert.Equal(t, 0, chunks[0].Index)
		assert.Equal(t, 2, chunks[2].Index)
	})

	t.Run("end of document", func(t *testing.T) {
		chunks, err := expander.Expand(context.Background(), "doc-1", 3)
		require.NoError(t, err)
		require.Len(t, chunks, 3)
		assert.Equal(t, 1, chunks[0].Index)
		assert.Equal(t, 3, chunks[2].Index)
	})
}

func TestExpander_StrictlyAscendingNoDuplicates(t *testing.T) {
	store := storagemem.NewDocumentStore()
	seedChunkedDocument(t, store, "doc-1", 10)
	expander := NewExpander(store, 3)

	chunks, err := expander.Expand(context.Background(), "doc-1", 5)
	require.NoError(t, err)
	for i := 1; i < len(chunks); i++ {
		assert.Greater(t, chunks[i].Index, chunks[i-1].Index)
	}
}

func TestNewExpander_DefaultWindow(t *testing.T) {
	store := storagemem.NewDocumentStore()
	seedChunkedDocument(t, store, "doc-1", 10)
	expander := NewExpander(store, 0)

	chunks, err := expander.Expand(context.Background(), "doc-1", 5)
	require.NoError(t, err)
	assert.Len(t, chunks, 2*DefaultWindow+1)
}
