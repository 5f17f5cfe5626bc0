// Package memory provides an in-memory vector index with brute-force
// inner-product search. Vectors are unit-normalised on insertion and
// query, so inner-product and L2 orderings are equivalent. Suitable for
// corpora up to a few hundred thousand chunks; the VectorIndex port
// allows swapping in an ANN-backed implementation without touching core.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/archivus-ai/archivus/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// entry is one stored vector with its scope tag. Entries keep their
// insertion order, which breaks score ties (earliest first).
type entry struct {
	chunkID      string
	collectionID string
	vector       []float32
}

// Index stores chunk vectors and answers top-k nearest-neighbour
// queries, optionally scoped to one collection. A single-writer lock
// serialises mutations while allowing concurrent searches.
type Index struct {
	mu        sync.RWMutex
	dimension int
	entries   []entry
	byChunk   map[string]int // chunkID -> position in entries
}

// New creates an empty index for vectors of the given dimension.
func New(dimension int) (*Index, error) {
	if dimension <= 0 {
		return nil, fmt.Errorf("vector index: dimension must be positive, got %d", dimension)
	}
	return &Index{
		dimension: dimension,
		byChunk:   make(map[string]int),
	}, nil
}

// Add inserts a vector for the given chunk ID. Re-adding an existing
// chunk ID replaces its vector in place, keeping the original insertion
// order. First and subsequent ingestions share this code path.
func (x *Index) Add(_ context.Context, chunkID, collectionID string, embedding []float32) error {
	if len(embedding) != x.dimension {
		return fmt.Errorf("vector index: dimension mismatch: expected %d, got %d", x.dimension, len(embedding))
	}

	normalised := normalise(embedding)

	x.mu.Lock()
	defer x.mu.Unlock()

	if pos, ok := x.byChunk[chunkID]; ok {
		x.entries[pos].collectionID = collectionID
		x.entries[pos].vector = normalised
		return nil
	}

	x.byChunk[chunkID] = len(x.entries)
	x.entries = append(x.entries, entry{
		chunkID:      chunkID,
		collectionID: collectionID,
		vector:       normalised,
	})
	return nil
}

// Delete removes a vector from the index. Deleting an unknown chunk ID
// is a no-op.
func (x *Index) Delete(_ context.Context, chunkID string) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	pos, ok := x.byChunk[chunkID]
	if !ok {
		return nil
	}

	x.entries = append(x.entries[:pos:pos], x.entries[pos+1:]...)
	delete(x.byChunk, chunkID)
	for i := pos; i < len(x.entries); i++ {
		x.byChunk[x.entries[i].chunkID] = i
	}
	return nil
}

// Search returns the k nearest neighbours to the query vector, best
// match first. Ties are broken by insertion order. When scope is
// non-empty, only vectors tagged with that collection participate; a
// scope with no vectors yields an empty result, not an error.
func (x *Index) Search(_ context.Context, query []float32, k int, scope string) ([]driven.VectorHit, error) {
	if len(query) != x.dimension {
		return nil, fmt.Errorf("vector index: dimension mismatch: expected %d, got %d", x.dimension, len(query))
	}
	if k <= 0 {
		return nil, nil
	}

	normalised := normalise(query)

	x.mu.RLock()
	defer x.mu.RUnlock()

	type scored struct {
		order int
		hit   driven.VectorHit
	}

	candidates := make([]scored, 0, len(x.entries))
	for i, e := range x.entries {
		if scope != "" && e.collectionID != scope {
			continue
		}
		candidates = append(candidates, scored{
			order: i,
			hit: driven.VectorHit{
				ChunkID: e.chunkID,
				Score:   dot(normalised, e.vector),
			},
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].hit.Score != candidates[j].hit.Score {
			return candidates[i].hit.Score > candidates[j].hit.Score
		}
		return candidates[i].order < candidates[j].order
	})

	if k > len(candidates) {
		k = len(candidates)
	}

	hits := make([]driven.VectorHit, k)
	for i := 0; i < k; i++ {
		hits[i] = candidates[i].hit
	}
	return hits, nil
}

// Len returns the number of stored vectors.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Close releases resources.
func (x *Index) Close() error {
	return nil
}

// normalise returns a unit-length copy of v. Zero vectors are returned
// as zero-filled copies rather than NaN.
func normalise(v []float32) []float32 {
	var sum float64
	for _, f := range v {
		sum += float64(f) * float64(f)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i, f := range v {
		out[i] = float32(float64(f) / norm)
	}
	return out
}

// dot computes the inner product of two equal-length vectors.
func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
