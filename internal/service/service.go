// Package service wires the retrieval pipeline together: index building
// from the document corpus, and query answering through language handling,
// intent classification, vector search, ranking and formatting.
package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"

	"campusqa/internal/chunker"
	"campusqa/internal/domain"
	"campusqa/internal/embedding"
	"campusqa/internal/format"
	"campusqa/internal/intent"
	"campusqa/internal/ranker"
	"campusqa/internal/translate"
	"campusqa/internal/vectorstore"
)

// Errors returned by query and index operations.
var (
	ErrEmptyQuery        = errors.New("empty query")
	ErrIndexNotLoaded    = errors.New("index not loaded")
	ErrNoDocuments       = errors.New("no documents found")
	ErrNoRelevantResults = errors.New("no relevant results")
)

// Options assembles a QueryService from its collaborators.
type Options struct {
	DocumentsDir string
	IndexDir     string
	BaseLanguage string
	Embedder     embedding.Embedder
	Translator   translate.Translator
	Classifier   *intent.Classifier
	Formatter    *format.Formatter
	Policies     ranker.PolicyTable
	Markdown     domain.Chunker
	JSON         domain.Chunker
	Logger       zerolog.Logger
}

// QueryService orchestrates the full question-answering pipeline. The
// active index is swapped atomically so rebuilds never block queries.
type QueryService struct {
	documentsDir string
	indexDir     string
	baseLanguage string
	embedder     embedding.Embedder
	translator   translate.Translator
	classifier   *intent.Classifier
	formatter    *format.Formatter
	policies     ranker.PolicyTable
	markdown     domain.Chunker
	jsonChunker  domain.Chunker
	log          zerolog.Logger

	index atomic.Pointer[vectorstore.FlatIndex]
}

func New(opts Options) *QueryService {
	if opts.BaseLanguage == "" {
		opts.BaseLanguage = "en"
	}
	if opts.Translator == nil {
		opts.Translator = translate.Noop{BaseLanguage: opts.BaseLanguage}
	}
	if opts.Classifier == nil {
		opts.Classifier = intent.NewClassifier(nil)
	}
	if opts.Formatter == nil {
		opts.Formatter = format.NewFormatter(format.DefaultFacts())
	}
	if opts.Markdown == nil {
		opts.Markdown = chunker.NewMarkdownChunker(0, 0)
	}
	if opts.JSON == nil {
		opts.JSON = chunker.NewJSONChunker(0, 0)
	}
	return &QueryService{
		documentsDir: opts.DocumentsDir,
		indexDir:     opts.IndexDir,
		baseLanguage: opts.BaseLanguage,
		embedder:     opts.Embedder,
		translator:   opts.Translator,
		classifier:   opts.Classifier,
		formatter:    opts.Formatter,
		policies:     opts.Policies,
		markdown:     opts.Markdown,
		jsonChunker:  opts.JSON,
		log:          opts.Logger,
	}
}

// Load reads a previously saved index from disk and makes it active.
func (s *QueryService) Load(ctx context.Context) error {
	idx, err := vectorstore.Load(s.indexDir)
	if err != nil {
		return err
	}
	if dim := s.embedder.Dimension(); dim > 0 && idx.Dimension() > 0 && idx.Dimension() != dim {
		return fmt.Errorf("%w: index has %d dims, embedder %q produces %d",
			vectorstore.ErrDimensionMismatch, idx.Dimension(), s.embedder.Name(), dim)
	}
	s.index.Store(idx)
	s.log.Info().Int("chunks", idx.Size()).Int("dimension", idx.Dimension()).Msg("index loaded")
	return nil
}

// BuildIndex chunks every corpus document, embeds the chunks and replaces
// the active index with a freshly built one. When force is false and a
// saved index already exists it is loaded instead of rebuilt. Returns the
// number of indexed chunks.
func (s *QueryService) BuildIndex(ctx context.Context, force bool) (int, error) {
	if !force && vectorstore.Exists(s.indexDir) {
		s.log.Info().Str("dir", s.indexDir).Msg("index exists, loading instead of rebuilding")
		if err := s.Load(ctx); err != nil {
			return 0, err
		}
		return s.index.Load().Size(), nil
	}

	chunks, err := s.chunkCorpus()
	if err != nil {
		return 0, err
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w in %s", ErrNoDocuments, s.documentsDir)
	}
	texts := make([]string, len(chunks))
	for i, ch := range chunks {
		texts[i] = ch.Text
	}
	s.log.Info().Int("chunks", len(chunks)).Str("embedder", s.embedder.Name()).Msg("embedding corpus")
	vectors, err := s.embedder.Embed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed corpus: %w", err)
	}

	// Always a fresh index: a rebuild replaces content, never appends.
	idx := vectorstore.NewFlatIndex()
	if err := idx.Build(vectors, chunks); err != nil {
		return 0, err
	}
	if err := idx.Save(s.indexDir); err != nil {
		return 0, fmt.Errorf("save index: %w", err)
	}
	s.index.Store(idx)
	s.log.Info().Int("chunks", idx.Size()).Str("dir", s.indexDir).Msg("index built")
	return idx.Size(), nil
}

func (s *QueryService) chunkCorpus() ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	err := filepath.WalkDir(s.documentsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		var c domain.Chunker
		switch strings.ToLower(filepath.Ext(path)) {
		case ".md", ".txt":
			c = s.markdown
		case ".json":
			c = s.jsonChunker
		default:
			return nil
		}
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			s.log.Warn().Err(readErr).Str("path", path).Msg("skipping unreadable document")
			return nil
		}
		doc := domain.Document{
			SourceID: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Path:     path,
			Content:  string(data),
		}
		docChunks, chunkErr := c.Chunk(doc)
		if chunkErr != nil {
			s.log.Warn().Err(chunkErr).Str("path", path).Msg("skipping unparseable document")
			return nil
		}
		chunks = append(chunks, docChunks...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// Answer runs the full pipeline for one user query and returns the reply
// in the requested language. language may be empty, in which case it is
// detected. Translation failures degrade to base-language text; they never
// abort the query.
func (s *QueryService) Answer(ctx context.Context, query, language string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}

	lang := language
	if lang == "" {
		detected, err := s.translator.Detect(ctx, query)
		if err != nil {
			s.log.Warn().Err(err).Msg("language detection failed, assuming base language")
			detected = s.baseLanguage
		}
		lang = detected
	}

	// All classification and retrieval happens in the base language.
	working := query
	if lang != s.baseLanguage {
		translated, err := s.translator.Translate(ctx, query, lang, s.baseLanguage)
		if err != nil {
			s.log.Warn().Err(err).Str("lang", lang).Msg("query translation failed, using original text")
		} else {
			working = translated
		}
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if intent.IsGreeting(working) {
		return s.deliver(ctx, s.formatter.Greeting(), lang), nil
	}

	in := s.classifier.Classify(working)
	policy := s.policies.ForIntent(in)
	s.log.Debug().Str("intent", string(in)).Float64("threshold", policy.Threshold).
		Int("top_k", policy.TopK).Msg("query classified")

	ranked, err := s.retrieve(ctx, working, policy)
	if errors.Is(err, ErrNoRelevantResults) {
		return s.deliver(ctx, s.formatter.NoResults(), lang), nil
	}
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.deliver(ctx, s.formatter.Format(in, ranked), lang), nil
}

func (s *QueryService) retrieve(ctx context.Context, query string, policy ranker.Policy) ([]domain.Result, error) {
	idx := s.index.Load()
	if idx == nil {
		return nil, ErrIndexNotLoaded
	}
	vectors, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits, err := idx.Search(vectors[0], policy.TopK)
	if err != nil {
		return nil, err
	}
	results := make([]domain.Result, len(hits))
	for i, h := range hits {
		results[i] = domain.Result{Chunk: idx.Chunk(h.Index), Distance: h.Distance}
	}
	ranked := ranker.Rank(results, policy.Threshold, policy.TopK)
	if len(ranked) == 0 {
		return nil, ErrNoRelevantResults
	}
	return ranked, nil
}

// deliver translates a base-language reply into the user's language,
// falling back to the untranslated text when the service fails.
func (s *QueryService) deliver(ctx context.Context, text, lang string) string {
	if lang == s.baseLanguage {
		return text
	}
	translated, err := s.translator.Translate(ctx, text, s.baseLanguage, lang)
	if err != nil {
		s.log.Warn().Err(err).Str("lang", lang).Msg("response translation failed, returning base language")
		return text
	}
	return translated
}

// Health reports readiness of the service's collaborators.
type Health struct {
	IndexLoaded bool   `json:"index_loaded"`
	Chunks      int    `json:"chunks"`
	Embedder    string `json:"embedder"`
	Translator  string `json:"translator"`
}

func (s *QueryService) Health() Health {
	h := Health{
		Embedder:   s.embedder.Name(),
		Translator: s.translator.Name(),
	}
	if idx := s.index.Load(); idx != nil {
		h.IndexLoaded = true
		h.Chunks = idx.Size()
	}
	return h
}
