package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/archivus-ai/archivus/internal/core/domain"
)

func TestCollectionStore_SaveGetList(t *testing.T) {
	store := NewCollectionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Collection{ID: "col-1", Name: "First"}))
	require.NoError(t, store.Save(ctx, domain.Collection{ID: "col-2", Name: "Second", Public: true}))

	got, err := store.Get(ctx, "col-2")
	require.NoError(t, err)
	assert.Equal(t, "Second", got.Name)
	assert.True(t, got.Public)

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollectionStore_UpdateKeepsCreatedAt(t *testing.T) {
	store := NewCollectionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Collection{ID: "col-1", Name: "Old"}))
	first, err := store.Get(ctx, "col-1")
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, domain.Collection{ID: "col-1", Name: "New"}))
	second, err := store.Get(ctx, "col-1")
	require.NoError(t, err)

	assert.Equal(t, "New", second.Name)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
}

func TestCollectionStore_Delete(t *testing.T) {
	store := NewCollectionStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.Collection{ID: "col-1", Name: "Doomed"}))
	require.NoError(t, store.Delete(ctx, "col-1"))

	_, err := store.Get(ctx, "col-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
