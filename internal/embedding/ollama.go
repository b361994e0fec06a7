package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	defaultOllamaURL  = "http://localhost:11434"
	defaultModel      = "all-minilm:l6-v2"
	defaultDimensions = 384
	defaultTimeout    = 30 * time.Second

	apiPathTags       = "/api/tags"
	apiPathEmbeddings = "/api/embeddings"
)

// OllamaEmbedder generates embeddings through a local Ollama server.
// The backend availability check runs once, on the first Embed call,
// so loading a persisted index never waits on the model.
type OllamaEmbedder struct {
	baseURL    string
	model      string
	dimensions int
	client     *http.Client

	initOnce sync.Once
	initErr  error
}

type OllamaConfig struct {
	BaseURL    string
	Model      string
	Dimensions int
	Timeout    time.Duration
}

func NewOllamaEmbedder(cfg OllamaConfig) *OllamaEmbedder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultOllamaURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = defaultDimensions
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &OllamaEmbedder{
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

func (e *OllamaEmbedder) Name() string { return "ollama/" + e.model }

func (e *OllamaEmbedder) Dimension() int { return e.dimensions }

// ensureReady verifies the backend once. Concurrent first callers share a
// single check; a failed check is permanent for this instance.
func (e *OllamaEmbedder) ensureReady(ctx context.Context) error {
	e.initOnce.Do(func() {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.baseURL+apiPathTags, nil)
		if err != nil {
			e.initErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
			return
		}
		resp, err := e.client.Do(req)
		if err != nil {
			e.initErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
			return
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			e.initErr = fmt.Errorf("%w: ollama returned status %d", ErrUnavailable, resp.StatusCode)
		}
	})
	return e.initErr
}

func (e *OllamaEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if err := e.ensureReady(ctx); err != nil {
		return nil, err
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.embedOne(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}

func (e *OllamaEmbedder) embedOne(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(ollamaEmbedRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+apiPathEmbeddings, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: ollama returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var result ollamaEmbedResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(result.Embedding) != e.dimensions {
		return nil, fmt.Errorf("unexpected embedding dimensions: got %d, want %d", len(result.Embedding), e.dimensions)
	}
	return result.Embedding, nil
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float32 `json:"embedding"`
}
