package vectorstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusqa/internal/domain"
	"campusqa/internal/vectorstore"
)

func buildSample(t *testing.T) *vectorstore.FlatIndex {
	t.Helper()
	idx := vectorstore.NewFlatIndex()
	chunks := []domain.Chunk{
		{Text: "Hostel fee is 80000 rupees per year.", SourceID: "hostel_info", SectionIndex: 0},
		{Text: "Admission requires JEE score.", SourceID: "admissions", SectionIndex: 0, Metadata: map[string]string{"exam": "JEE"}},
	}
	require.NoError(t, idx.Build([][]float32{{0.1, 0.2, 0.3}, {0.9, 0.8, 0.7}}, chunks))
	return idx
}

func TestPersistence(t *testing.T) {
	t.Run("save then load round-trips chunks exactly", func(t *testing.T) {
		dir := t.TempDir()
		idx := buildSample(t)
		require.NoError(t, idx.Save(dir))
		assert.True(t, vectorstore.Exists(dir))

		loaded, err := vectorstore.Load(dir)
		require.NoError(t, err)
		require.Equal(t, idx.Size(), loaded.Size())
		assert.Equal(t, idx.Dimension(), loaded.Dimension())
		for i := 0; i < idx.Size(); i++ {
			assert.Equal(t, idx.Chunk(i), loaded.Chunk(i))
		}

		// Alignment survives the round trip: nearest neighbor of the first
		// stored vector must still be the first chunk.
		hits, err := loaded.Search([]float32{0.1, 0.2, 0.3}, 1)
		require.NoError(t, err)
		require.Len(t, hits, 1)
		assert.Equal(t, "hostel_info", loaded.Chunk(hits[0].Index).SourceID)
	})

	t.Run("missing artifacts are ErrNotFound", func(t *testing.T) {
		_, err := vectorstore.Load(t.TempDir())
		assert.ErrorIs(t, err, vectorstore.ErrNotFound)

		dir := t.TempDir()
		require.NoError(t, buildSample(t).Save(dir))
		require.NoError(t, os.Remove(filepath.Join(dir, vectorstore.MetadataFileName)))
		_, err = vectorstore.Load(dir)
		assert.ErrorIs(t, err, vectorstore.ErrNotFound)
		assert.False(t, vectorstore.Exists(dir))
	})

	t.Run("truncated metadata is ErrCorrupt", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, buildSample(t).Save(dir))

		metaPath := filepath.Join(dir, vectorstore.MetadataFileName)
		data, err := os.ReadFile(metaPath)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(metaPath, data[:len(data)/2], 0o644))

		_, err = vectorstore.Load(dir)
		assert.ErrorIs(t, err, vectorstore.ErrCorrupt)
	})

	t.Run("chunk count mismatch is ErrCorrupt", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, buildSample(t).Save(dir))

		// Overwrite metadata with a consistent-looking but shorter list.
		smaller := vectorstore.NewFlatIndex()
		require.NoError(t, smaller.Build(
			[][]float32{{0.1, 0.2, 0.3}},
			[]domain.Chunk{{Text: "Hostel fee is 80000 rupees per year.", SourceID: "hostel_info"}},
		))
		other := t.TempDir()
		require.NoError(t, smaller.Save(other))
		data, err := os.ReadFile(filepath.Join(other, vectorstore.MetadataFileName))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, vectorstore.MetadataFileName), data, 0o644))

		_, err = vectorstore.Load(dir)
		assert.ErrorIs(t, err, vectorstore.ErrCorrupt)
	})

	t.Run("truncated vectors blob is ErrCorrupt", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, buildSample(t).Save(dir))

		vecPath := filepath.Join(dir, vectorstore.VectorsFileName)
		data, err := os.ReadFile(vecPath)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(vecPath, data[:len(data)/3], 0o644))

		_, err = vectorstore.Load(dir)
		assert.ErrorIs(t, err, vectorstore.ErrCorrupt)
	})
}
