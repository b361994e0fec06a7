package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusqa/internal/ranker"
	"campusqa/internal/service"
)

// topicEmbedder maps texts onto fixed topical axes so distances are
// deterministic: texts sharing a topic land close together, texts with no
// known topic land far from everything.
type topicEmbedder struct{}

func (topicEmbedder) Name() string   { return "fake/topic" }
func (topicEmbedder) Dimension() int { return 4 }

func (topicEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		q := strings.ToLower(text)
		v := make([]float32, 4)
		known := false
		for axis, word := range []string{"hostel", "fee", "admission"} {
			if strings.Contains(q, word) {
				v[axis] = 1
				known = true
			}
		}
		if !known {
			v[3] = 5
		}
		out[i] = v
	}
	return out, nil
}

type failingTranslator struct{}

func (failingTranslator) Name() string { return "failing" }

func (failingTranslator) Detect(ctx context.Context, text string) (string, error) {
	return "", errors.New("translation service down")
}

func (failingTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	return "", errors.New("translation service down")
}

func writeCorpus(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
}

func newService(t *testing.T, docsDir, indexDir string) *service.QueryService {
	t.Helper()
	return service.New(service.Options{
		DocumentsDir: docsDir,
		IndexDir:     indexDir,
		Embedder:     topicEmbedder{},
		Policies:     ranker.DefaultPolicyTable(),
		Logger:       zerolog.Nop(),
	})
}

func TestQueryService(t *testing.T) {
	ctx := context.Background()
	corpus := map[string]string{
		"hostel_info.md":    "Hostel fees are Rs 87,000 per year for a 4-bed non AC room in the men's hostel.",
		"admission_info.md": "Admission requires registering on the portal and uploading your mark sheets.",
	}

	t.Run("relevant chunk outranks the off-topic one", func(t *testing.T) {
		docs, index := t.TempDir(), t.TempDir()
		writeCorpus(t, docs, corpus)
		svc := newService(t, docs, index)

		n, err := svc.BuildIndex(ctx, true)
		require.NoError(t, err)
		require.Equal(t, 2, n)

		out, err := svc.Answer(ctx, "how much is the hostel fee", "en")
		require.NoError(t, err)
		assert.Contains(t, out, "Hostel Fee Structure")
		assert.Contains(t, out, "*Source: hostel_info*")
		assert.NotContains(t, out, "admission_info")
	})

	t.Run("nonsense query gets the guidance message, not an error", func(t *testing.T) {
		docs, index := t.TempDir(), t.TempDir()
		writeCorpus(t, docs, corpus)
		svc := newService(t, docs, index)
		_, err := svc.BuildIndex(ctx, true)
		require.NoError(t, err)

		out, err := svc.Answer(ctx, "qwerty zxcvbn asdfgh", "en")
		require.NoError(t, err)
		assert.Contains(t, out, "try asking about")
	})

	t.Run("greeting short-circuits retrieval", func(t *testing.T) {
		// No index loaded: a greeting must still succeed.
		svc := newService(t, t.TempDir(), t.TempDir())
		out, err := svc.Answer(ctx, "hello!", "en")
		require.NoError(t, err)
		assert.Contains(t, out, "How can I help you today?")
	})

	t.Run("query before index load fails cleanly", func(t *testing.T) {
		svc := newService(t, t.TempDir(), t.TempDir())
		_, err := svc.Answer(ctx, "hostel fee", "en")
		assert.ErrorIs(t, err, service.ErrIndexNotLoaded)
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		svc := newService(t, t.TempDir(), t.TempDir())
		_, err := svc.Answer(ctx, "   ", "en")
		assert.ErrorIs(t, err, service.ErrEmptyQuery)
	})

	t.Run("translation failure degrades to base language", func(t *testing.T) {
		docs, index := t.TempDir(), t.TempDir()
		writeCorpus(t, docs, corpus)
		svc := service.New(service.Options{
			DocumentsDir: docs,
			IndexDir:     index,
			Embedder:     topicEmbedder{},
			Translator:   failingTranslator{},
			Policies:     ranker.DefaultPolicyTable(),
			Logger:       zerolog.Nop(),
		})
		_, err := svc.BuildIndex(ctx, true)
		require.NoError(t, err)

		out, err := svc.Answer(ctx, "hostel fee", "ta")
		require.NoError(t, err)
		assert.Contains(t, out, "Hostel Fee Structure")
	})

	t.Run("force rebuild replaces the index instead of appending", func(t *testing.T) {
		docs, index := t.TempDir(), t.TempDir()
		writeCorpus(t, docs, corpus)
		svc := newService(t, docs, index)

		n, err := svc.BuildIndex(ctx, true)
		require.NoError(t, err)
		require.Equal(t, 2, n)

		require.NoError(t, os.Remove(filepath.Join(docs, "admission_info.md")))
		n, err = svc.BuildIndex(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, svc.Health().Chunks)
	})

	t.Run("non-force build loads an existing index", func(t *testing.T) {
		docs, index := t.TempDir(), t.TempDir()
		writeCorpus(t, docs, corpus)
		first := newService(t, docs, index)
		_, err := first.BuildIndex(ctx, true)
		require.NoError(t, err)

		// Fresh process, same index directory: no rebuild needed.
		second := newService(t, docs, index)
		n, err := second.BuildIndex(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("empty corpus is an error", func(t *testing.T) {
		svc := newService(t, t.TempDir(), t.TempDir())
		_, err := svc.BuildIndex(ctx, true)
		assert.ErrorIs(t, err, service.ErrNoDocuments)
	})

	t.Run("health reports index state", func(t *testing.T) {
		docs, index := t.TempDir(), t.TempDir()
		writeCorpus(t, docs, corpus)
		svc := newService(t, docs, index)

		h := svc.Health()
		assert.False(t, h.IndexLoaded)
		assert.Equal(t, "fake/topic", h.Embedder)

		_, err := svc.BuildIndex(ctx, true)
		require.NoError(t, err)
		h = svc.Health()
		assert.True(t, h.IndexLoaded)
		assert.Equal(t, 2, h.Chunks)
	})
}
