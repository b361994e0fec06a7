package domain

// Document is a single source file loaded from the corpus directory.
type Document struct {
	SourceID string
	Path     string
	Content  string
}

// Chunk is a bounded unit of retrievable text with citation metadata.
// Chunks are created once at index-build time and immutable afterwards.
type Chunk struct {
	Text         string            `json:"text"`
	SourceID     string            `json:"source_id"`
	SectionIndex int               `json:"section_index"`
	ChunkIndex   int               `json:"chunk_index"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// Result is a retrieved chunk with its raw distance and normalized score.
type Result struct {
	Chunk    Chunk
	Distance float32
	Score    float64
}

// Chunker splits documents into chunks suitable for retrieval indexing.
type Chunker interface {
	Chunk(document Document) ([]Chunk, error)
}
