package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"campusqa/internal/format"
	"campusqa/internal/intent"
	"campusqa/internal/ranker"
)

// EmbedderConfig selects and configures the embedding backend.
type EmbedderConfig struct {
	Type       string `yaml:"type"` // "ollama" or "openai"
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"base_url,omitempty"`
	APIKeyEnv  string `yaml:"api_key_env,omitempty"`
	Dimensions int    `yaml:"dimensions,omitempty"`
	TimeoutSec int    `yaml:"timeout_secs,omitempty"`
}

// ChunkerConfig bounds document splitting.
type ChunkerConfig struct {
	MaxChunkChars   int `yaml:"max_chunk_chars"`
	MinSectionChars int `yaml:"min_section_chars"`
}

// TranslatorConfig selects and configures the translation collaborator.
type TranslatorConfig struct {
	Type       string `yaml:"type"` // "none" or "libretranslate"
	URL        string `yaml:"url,omitempty"`
	APIKeyEnv  string `yaml:"api_key_env,omitempty"`
	TimeoutSec int    `yaml:"timeout_secs,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	DocumentsDir string             `yaml:"documents_dir"`
	IndexDir     string             `yaml:"index_dir"`
	BaseLanguage string             `yaml:"base_language"`
	Server       ServerConfig       `yaml:"server"`
	Embedder     EmbedderConfig     `yaml:"embedder"`
	Chunker      ChunkerConfig      `yaml:"chunker"`
	Retrieval    ranker.PolicyTable `yaml:"retrieval"`
	Intents      intent.Keywords    `yaml:"intents,omitempty"`
	Translator   TranslatorConfig   `yaml:"translator"`
	Facts        format.Facts       `yaml:"facts"`
}

// Load reads a config from path. A missing file returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.DocumentsDir == "" {
		cfg.DocumentsDir = "data_md"
	}
	if cfg.IndexDir == "" {
		cfg.IndexDir = "index"
	}
	if cfg.BaseLanguage == "" {
		cfg.BaseLanguage = "en"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8002"
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "ollama"
	}
	if cfg.Embedder.Type == "openai" && cfg.Embedder.APIKeyEnv == "" {
		cfg.Embedder.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Chunker.MaxChunkChars == 0 {
		cfg.Chunker.MaxChunkChars = 800
	}
	if cfg.Chunker.MinSectionChars == 0 {
		cfg.Chunker.MinSectionChars = 20
	}
	if cfg.Retrieval.Default.TopK == 0 && cfg.Retrieval.Default.Threshold == 0 {
		cfg.Retrieval = ranker.DefaultPolicyTable()
	}
	if cfg.Translator.Type == "" {
		cfg.Translator.Type = "none"
	}
	if cfg.Facts.Institution == "" {
		cfg.Facts = format.DefaultFacts()
	}
}
