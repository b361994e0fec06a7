// Package vectorstore implements an exact flat nearest-neighbor index over
// embedding vectors, with companion-file persistence. Exact search is fine
// at this corpus scale (well under 100k chunks).
package vectorstore

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"campusqa/internal/domain"
)

// Errors returned by index operations.
var (
	ErrNotFound          = errors.New("vector index not found")
	ErrCorrupt           = errors.New("vector index corrupt")
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

// Hit is one nearest-neighbor match: a position into the chunk list plus
// the raw squared-L2 distance.
type Hit struct {
	Index    int
	Distance float32
}

// FlatIndex stores vectors and position-aligned chunk metadata. The i-th
// vector always corresponds to the i-th chunk. After Build or Load the
// index is read-only; rebuilds go into a fresh instance.
type FlatIndex struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float32
	chunks    []domain.Chunk
}

func NewFlatIndex() *FlatIndex { return &FlatIndex{} }

// Build replaces the index content. Vectors and chunks must be equal-length
// and every vector must share one dimension.
func (x *FlatIndex) Build(vectors [][]float32, chunks []domain.Chunk) error {
	if len(vectors) != len(chunks) {
		return fmt.Errorf("vectors (%d) and chunks (%d) length mismatch", len(vectors), len(chunks))
	}
	dim := 0
	for i, v := range vectors {
		if len(v) == 0 {
			return fmt.Errorf("%w: vector %d is empty", ErrDimensionMismatch, i)
		}
		if dim == 0 {
			dim = len(v)
		} else if len(v) != dim {
			return fmt.Errorf("%w: vector %d has %d dims, want %d", ErrDimensionMismatch, i, len(v), dim)
		}
	}
	x.mu.Lock()
	defer x.mu.Unlock()
	x.dimension = dim
	x.vectors = vectors
	x.chunks = chunks
	return nil
}

// Search returns up to topK nearest chunks by ascending squared-L2
// distance. An empty or never-built index yields an empty result, not an
// error; cold start is a normal state.
func (x *FlatIndex) Search(query []float32, topK int) ([]Hit, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()
	if len(x.vectors) == 0 {
		return nil, nil
	}
	if len(query) != x.dimension {
		return nil, fmt.Errorf("%w: query has %d dims, index has %d", ErrDimensionMismatch, len(query), x.dimension)
	}
	if topK <= 0 {
		topK = 5
	}
	hits := make([]Hit, len(x.vectors))
	for i, v := range x.vectors {
		hits[i] = Hit{Index: i, Distance: sqDistance(query, v)}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	if topK > len(hits) {
		topK = len(hits)
	}
	return hits[:topK], nil
}

// Chunk returns the chunk at position i.
func (x *FlatIndex) Chunk(i int) domain.Chunk {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.chunks[i]
}

// Size reports the number of indexed vectors.
func (x *FlatIndex) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.vectors)
}

// Dimension reports the vector dimensionality, 0 when empty.
func (x *FlatIndex) Dimension() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.dimension
}

func sqDistance(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
