package service

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"campusqa/internal/chunker"
	"campusqa/internal/config"
	"campusqa/internal/embedding"
	"campusqa/internal/format"
	"campusqa/internal/intent"
	"campusqa/internal/translate"
)

// FromConfig assembles a QueryService with collaborators selected by
// configuration.
func FromConfig(cfg *config.AppConfig, log zerolog.Logger) (*QueryService, error) {
	var emb embedding.Embedder
	switch cfg.Embedder.Type {
	case "ollama", "":
		emb = embedding.NewOllamaEmbedder(embedding.OllamaConfig{
			BaseURL:    cfg.Embedder.BaseURL,
			Model:      cfg.Embedder.Model,
			Dimensions: cfg.Embedder.Dimensions,
			Timeout:    time.Duration(cfg.Embedder.TimeoutSec) * time.Second,
		})
	case "openai":
		client, err := embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
			APIKeyEnv: cfg.Embedder.APIKeyEnv,
			Model:     cfg.Embedder.Model,
		})
		if err != nil {
			return nil, err
		}
		emb = client
	default:
		return nil, fmt.Errorf("unknown embedder: %s", cfg.Embedder.Type)
	}

	var tr translate.Translator
	switch cfg.Translator.Type {
	case "none", "":
		tr = translate.Noop{BaseLanguage: cfg.BaseLanguage}
	case "libretranslate":
		tr = translate.NewLibreClient(translate.LibreConfig{
			URL:       cfg.Translator.URL,
			APIKeyEnv: cfg.Translator.APIKeyEnv,
			Timeout:   time.Duration(cfg.Translator.TimeoutSec) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown translator: %s", cfg.Translator.Type)
	}

	return New(Options{
		DocumentsDir: cfg.DocumentsDir,
		IndexDir:     cfg.IndexDir,
		BaseLanguage: cfg.BaseLanguage,
		Embedder:     emb,
		Translator:   tr,
		Classifier:   intent.NewClassifier(cfg.Intents),
		Formatter:    format.NewFormatter(cfg.Facts),
		Policies:     cfg.Retrieval,
		Markdown:     chunker.NewMarkdownChunker(cfg.Chunker.MaxChunkChars, cfg.Chunker.MinSectionChars),
		JSON:         chunker.NewJSONChunker(0, cfg.Chunker.MinSectionChars),
		Logger:       log,
	}), nil
}
