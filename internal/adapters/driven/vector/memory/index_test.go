package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid dimension", func(t *testing.T) {
		idx, err := New(3)
		require.NoError(t, err)
		assert.Equal(t, 0, idx.Len())
	})

	t.Run("invalid dimension", func(t *testing.T) {
		_, err := New(0)
		assert.Error(t, err)
	})
}

func TestIndex_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	require.NoError(t, idx.Add(ctx, "a", "col1", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "b", "col1", []float32{0, 1}))
	require.NoError(t, idx.Add(ctx, "c", "col1", []float32{0.9, 0.1}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 2, "")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].ChunkID)
	assert.Equal(t, "c", hits[1].ChunkID)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestIndex_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx, err := New(3)
	require.NoError(t, err)

	assert.Error(t, idx.Add(ctx, "a", "col", []float32{1, 0}))
	_, err = idx.Search(ctx, []float32{1, 0}, 1, "")
	assert.Error(t, err)
}

func TestIndex_KLargerThanIndex(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	require.NoError(t, idx.Add(ctx, "a", "col", []float32{1, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 10, "")
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestIndex_ScopeIsolation(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	// The globally nearest vector belongs to another collection.
	require.NoError(t, idx.Add(ctx, "other", "colB", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "mine", "colA", []float32{0.5, 0.5}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 5, "colA")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "mine", hits[0].ChunkID)
}

func TestIndex_EmptyScope(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	require.NoError(t, idx.Add(ctx, "a", "colA", []float32{1, 0}))

	hits, err := idx.Search(ctx, []float32{1, 0}, 5, "missing")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_TieBreakInsertionOrder(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	// Identical vectors score identically; earliest insertion wins.
	require.NoError(t, idx.Add(ctx, "first", "col", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "second", "col", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "third", "col", []float32{2, 0})) // same direction, normalised equal

	hits, err := idx.Search(ctx, []float32{1, 0}, 3, "")
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []string{"first", "second", "third"},
		[]string{hits[0].ChunkID, hits[1].ChunkID, hits[2].ChunkID})
}

func TestIndex_ReAddReplacesVector(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	require.NoError(t, idx.Add(ctx, "a", "col", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "a", "col", []float32{0, 1}))
	assert.Equal(t, 1, idx.Len())

	hits, err := idx.Search(ctx, []float32{0, 1}, 1, "")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
}

func TestIndex_Delete(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	require.NoError(t, idx.Add(ctx, "a", "col", []float32{1, 0}))
	require.NoError(t, idx.Add(ctx, "b", "col", []float32{0, 1}))
	require.NoError(t, idx.Delete(ctx, "a"))
	assert.Equal(t, 1, idx.Len())

	hits, err := idx.Search(ctx, []float32{1, 0}, 5, "")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "b", hits[0].ChunkID)

	// Unknown IDs are a no-op.
	assert.NoError(t, idx.Delete(ctx, "missing"))
}

func TestIndex_ConcurrentAddAndSearch(t *testing.T) {
	ctx := context.Background()
	idx, err := New(2)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				id := string(rune('a'+n)) + string(rune('0'+j%10))
				_ = idx.Add(ctx, id, "col", []float32{float32(n + 1), float32(j + 1)})
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = idx.Search(ctx, []float32{1, 1}, 5, "col")
			}
		}()
	}
	wg.Wait()

	// 8 writers x 10 distinct IDs each; no writes may be lost.
	assert.Equal(t, 80, idx.Len())
}
