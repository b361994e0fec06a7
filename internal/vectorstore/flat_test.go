package vectorstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusqa/internal/domain"
	"campusqa/internal/vectorstore"
)

func sampleChunks(n int) []domain.Chunk {
	chunks := make([]domain.Chunk, n)
	for i := range chunks {
		chunks[i] = domain.Chunk{Text: string(rune('a' + i)), SourceID: "doc", SectionIndex: i}
	}
	return chunks
}

func TestFlatIndex(t *testing.T) {
	t.Run("search on empty index returns nothing", func(t *testing.T) {
		idx := vectorstore.NewFlatIndex()
		hits, err := idx.Search([]float32{1, 0}, 5)
		require.NoError(t, err)
		assert.Empty(t, hits)
		assert.Equal(t, 0, idx.Size())
	})

	t.Run("build rejects misaligned input", func(t *testing.T) {
		idx := vectorstore.NewFlatIndex()
		err := idx.Build([][]float32{{1, 0}}, sampleChunks(2))
		assert.Error(t, err)
	})

	t.Run("build rejects inconsistent dimensions", func(t *testing.T) {
		idx := vectorstore.NewFlatIndex()
		err := idx.Build([][]float32{{1, 0}, {1, 0, 0}}, sampleChunks(2))
		assert.ErrorIs(t, err, vectorstore.ErrDimensionMismatch)
	})

	t.Run("search orders by ascending distance and bounds topK", func(t *testing.T) {
		idx := vectorstore.NewFlatIndex()
		vectors := [][]float32{
			{0, 0}, // d=2 from (1,1)
			{1, 1}, // d=0
			{1, 0}, // d=1
			{5, 5}, // d=32
		}
		require.NoError(t, idx.Build(vectors, sampleChunks(4)))

		hits, err := idx.Search([]float32{1, 1}, 3)
		require.NoError(t, err)
		require.Len(t, hits, 3)
		assert.Equal(t, 1, hits[0].Index)
		assert.Equal(t, 2, hits[1].Index)
		assert.Equal(t, 0, hits[2].Index)
		for i := 1; i < len(hits); i++ {
			assert.GreaterOrEqual(t, hits[i].Distance, hits[i-1].Distance)
		}

		all, err := idx.Search([]float32{1, 1}, 50)
		require.NoError(t, err)
		assert.Len(t, all, 4)
	})

	t.Run("vectors stay aligned with chunks", func(t *testing.T) {
		idx := vectorstore.NewFlatIndex()
		chunks := sampleChunks(3)
		require.NoError(t, idx.Build([][]float32{{0, 1}, {1, 0}, {1, 1}}, chunks))
		hits, err := idx.Search([]float32{1, 0}, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, chunks[1], idx.Chunk(hits[0].Index))
	})

	t.Run("build replaces prior content", func(t *testing.T) {
		idx := vectorstore.NewFlatIndex()
		require.NoError(t, idx.Build([][]float32{{1, 0}}, sampleChunks(1)))
		require.NoError(t, idx.Build([][]float32{{1, 0}, {0, 1}, {1, 1}}, sampleChunks(3)))
		assert.Equal(t, 3, idx.Size())
	})

	t.Run("query dimension must match", func(t *testing.T) {
		idx := vectorstore.NewFlatIndex()
		require.NoError(t, idx.Build([][]float32{{1, 0}}, sampleChunks(1)))
		_, err := idx.Search([]float32{1, 0, 0}, 1)
		assert.ErrorIs(t, err, vectorstore.ErrDimensionMismatch)
	})
}
