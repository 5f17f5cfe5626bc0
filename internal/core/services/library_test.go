package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storagemem "github.com/archivus-ai/archivus/internal/adapters/driven/storage/memory"
	vectormem "github.com/archivus-ai/archivus/internal/adapters/driven/vector/memory"
	"github.com/archivus-ai/archivus/internal/core/domain"
)

type libraryFixture struct {
	collections *storagemem.CollectionStore
	docStore    *storagemem.DocumentStore
	chatStore   *storagemem.ChatStore
	index       *vectormem.Index
}

func newLibraryFixture(t *testing.T) (*libraryFixture, *LibraryService) {
	t.Helper()

	f := &libraryFixture{
		collections: storagemem.NewCollectionStore(),
		docStore:    storagemem.NewDocumentStore(),
		chatStore:   storagemem.NewChatStore(),
	}
	index, err := vectormem.New(3)
	require.NoError(t, err)
	f.index = index

	return f, NewLibraryService(f.collections, f.docStore, f.chatStore, f.index)
}

// seedIndexedDoc stores a document with three indexed chunks.
func (f *libraryFixture) seedIndexedDoc(t *testing.T, collectionID, docID string) {
	t.Helper()
	ctx := context.Background()

	doc := &domain.Document{
		ID:           docID,
		CollectionID: collectionID,
		Filename:     docID + ".txt",
		CreatedAt:    time.Now().UTC(),
	}
	chunks := make([]domain.Chunk, 3)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			ID:           fmt.Sprintf("%s-chunk-%d", docID, i),
			DocumentID:   docID,
			CollectionID: collectionID,
			Index:        i,
			Text:         fmt.Sprintf("text %d", i),
			Embedding:    []float32{1, 0, 0},
		}
	}
	require.NoError(t, f.docStore.SaveDocument(ctx, doc, chunks))
	for _, chunk := range chunks {
		require.NoError(t, f.index.Add(ctx, chunk.ID, collectionID, chunk.Embedding))
	}
}

func TestCreateCollection(t *testing.T) {
	t.Run("Public", func(t *testing.T) {
		f, service := newLibraryFixture(t)

		collection, err := service.CreateCollection(context.Background(), "  Notes  ", " shared notes ", "", true)
		require.NoError(t, err)
		assert.NotEmpty(t, collection.ID)
		assert.Equal(t, "Notes", collection.Name)
		assert.Equal(t, "shared notes", collection.Description)
		assert.True(t, collection.Public)
		assert.Empty(t, collection.CodeHash)

		stored, err := f.collections.Get(context.Background(), collection.ID)
		require.NoError(t, err)
		assert.Equal(t, "Notes", stored.Name)
	})

	t.Run("PrivateStoresHashOnly", func(t *testing.T) {
		_, service := newLibraryFixture(t)

		collection, err := service.CreateCollection(context.Background(), "Vault", "", "s3cret", false)
		require.NoError(t, err)
		assert.False(t, collection.Public)
		assert.NotEmpty(t, collection.CodeHash)
		assert.NotContains(t, collection.CodeHash, "s3cret")
	})

	t.Run("EmptyName", func(t *testing.T) {
		_, service := newLibraryFixture(t)

		_, err := service.CreateCollection(context.Background(), "   ", "", "", true)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("PrivateWithoutCode", func(t *testing.T) {
		_, service := newLibraryFixture(t)

		_, err := service.CreateCollection(context.Background(), "Vault", "", "", false)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestUnlock(t *testing.T) {
	ctx := context.Background()

	t.Run("PublicAlwaysUnlocks", func(t *testing.T) {
		_, service := newLibraryFixture(t)
		collection, err := service.CreateCollection(ctx, "Open", "", "", true)
		require.NoError(t, err)

		assert.NoError(t, service.Unlock(ctx, collection.ID, ""))
		assert.NoError(t, service.Unlock(ctx, collection.ID, "whatever"))
	})

	t.Run("PrivateRightCode", func(t *testing.T) {
		_, service := newLibraryFixture(t)
		collection, err := service.CreateCollection(ctx, "Vault", "", "s3cret", false)
		require.NoError(t, err)

		assert.NoError(t, service.Unlock(ctx, collection.ID, "s3cret"))
	})

	t.Run("PrivateWrongCode", func(t *testing.T) {
		_, service := newLibraryFixture(t)
		collection, err := service.CreateCollection(ctx, "Vault", "", "s3cret", false)
		require.NoError(t, err)

		assert.ErrorIs(t, service.Unlock(ctx, collection.ID, "guess"), domain.ErrAccessDenied)
		assert.ErrorIs(t, service.Unlock(ctx, collection.ID, ""), domain.ErrAccessDenied)
	})

	t.Run("UnknownCollection", func(t *testing.T) {
		_, service := newLibraryFixture(t)
		assert.ErrorIs(t, service.Unlock(ctx, "missing", "any"), domain.ErrNotFound)
	})
}

func TestListCollections(t *testing.T) {
	_, service := newLibraryFixture(t)
	ctx := context.Background()

	_, err := service.CreateCollection(ctx, "First", "", "", true)
	require.NoError(t, err)
	_, err = service.CreateCollection(ctx, "Second", "", "", true)
	require.NoError(t, err)

	collections, err := service.ListCollections(ctx)
	require.NoError(t, err)
	assert.Len(t, collections, 2)
}

func TestLibraryListDocuments(t *testing.T) {
	f, service := newLibraryFixture(t)
	ctx := context.Background()

	collection, err := service.CreateCollection(ctx, "Notes", "", "", true)
	require.NoError(t, err)
	f.seedIndexedDoc(t, collection.ID, "doc-1")

	infos, err := service.ListDocuments(ctx, collection.ID)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "doc-1", infos[0].ID)
	assert.Equal(t, 3, infos[0].ChunkCount)

	_, err = service.ListDocuments(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteDocument(t *testing.T) {
	f, service := newLibraryFixture(t)
	ctx := context.Background()

	collection, err := service.CreateCollection(ctx, "Notes", "", "", true)
	require.NoError(t, err)
	f.seedIndexedDoc(t, collection.ID, "doc-1")
	f.seedIndexedDoc(t, collection.ID, "doc-2")
	require.Equal(t, 6, f.index.Len())

	require.NoError(t, service.DeleteDocument(ctx, "doc-1"))

	// Rows and vectors of doc-1 are gone, doc-2 untouched.
	_, err = f.docStore.GetDocument(ctx, "doc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 3, f.index.Len())

	assert.ErrorIs(t, service.DeleteDocument(ctx, "doc-1"), domain.ErrNotFound)
}

func TestDeleteCollection(t *testing.T) {
	f, service := newLibraryFixture(t)
	ctx := context.Background()

	collection, err := service.CreateCollection(ctx, "Notes", "", "", true)
	require.NoError(t, err)
	f.seedIndexedDoc(t, collection.ID, "doc-1")
	f.seedIndexedDoc(t, collection.ID, "doc-2")

	require.NoError(t, service.DeleteCollection(ctx, collection.ID))

	_, err = f.collections.Get(ctx, collection.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, f.index.Len())

	assert.ErrorIs(t, service.DeleteCollection(ctx, collection.ID), domain.ErrNotFound)
}

func TestSessionMessages(t *testing.T) {
	f, service := newLibraryFixture(t)
	ctx := context.Background()

	session := domain.Session{ID: "session-1", CollectionID: "col-1"}
	require.NoError(t, f.chatStore.AppendTurn(ctx, session, domain.Turn{Question: "q1", Answer: "a1"}))
	require.NoError(t, f.chatStore.AppendTurn(ctx, session, domain.Turn{Question: "q2", Answer: "a2"}))

	messages, err := service.SessionMessages(ctx, "session-1")
	require.NoError(t, err)
	require.Len(t, messages, 4)
	assert.Equal(t, "q1", messages[0].Content)
	assert.Equal(t, "a2", messages[3].Content)

	_, err = service.SessionMessages(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
