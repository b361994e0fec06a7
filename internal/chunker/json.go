package chunker

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"campusqa/internal/domain"
)

// JSONChunker flattens structured key/value documents into "key: value"
// text lines before applying the same length-bounded splitting as the
// markdown path. Scalar top-level values are kept as chunk metadata for
// traceability.
type JSONChunker struct {
	maxChunkChars   int
	minSectionChars int
}

func NewJSONChunker(maxChunkChars, minSectionChars int) *JSONChunker {
	if maxChunkChars <= 0 {
		maxChunkChars = 500
	}
	if minSectionChars <= 0 {
		minSectionChars = 20
	}
	return &JSONChunker{maxChunkChars: maxChunkChars, minSectionChars: minSectionChars}
}

func (c *JSONChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	var data any
	if err := json.Unmarshal([]byte(document.Content), &data); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", document.SourceID, err)
	}

	var chunks []domain.Chunk
	appendItem := func(sectionIdx int, item any) {
		text := flattenItem(item)
		if len(text) < c.minSectionChars {
			return
		}
		meta := scalarFields(item)
		if len(text) <= c.maxChunkChars {
			chunks = append(chunks, domain.Chunk{
				Text:         text,
				SourceID:     document.SourceID,
				SectionIndex: sectionIdx,
				ChunkIndex:   0,
				Metadata:     meta,
			})
			return
		}
		for subIdx, part := range splitWords(text, c.maxChunkChars) {
			chunks = append(chunks, domain.Chunk{
				Text:         part,
				SourceID:     document.SourceID,
				SectionIndex: sectionIdx,
				ChunkIndex:   subIdx,
				Metadata:     meta,
			})
		}
	}

	switch v := data.(type) {
	case []any:
		for idx, item := range v {
			appendItem(idx, item)
		}
	case map[string]any:
		// One chunk per top-level key, in stable order.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for idx, k := range keys {
			appendItem(idx, map[string]any{k: v[k]})
		}
	default:
		appendItem(0, v)
	}
	return chunks, nil
}

// flattenItem renders arbitrary JSON values as searchable text. Objects
// become "key: value" fragments joined by " | "; arrays are space-joined.
func flattenItem(item any) string {
	switch v := item.(type) {
	case string:
		return v
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			switch inner := v[k].(type) {
			case map[string]any:
				parts = append(parts, flattenItem(inner))
			case []any:
				elems := make([]string, 0, len(inner))
				for _, e := range inner {
					elems = append(elems, flattenItem(e))
				}
				parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(elems, " ")))
			default:
				parts = append(parts, fmt.Sprintf("%s: %s", k, scalarString(inner)))
			}
		}
		return strings.Join(parts, " | ")
	case []any:
		parts := make([]string, 0, len(v))
		for _, e := range v {
			parts = append(parts, flattenItem(e))
		}
		return strings.Join(parts, " | ")
	default:
		return scalarString(v)
	}
}

func scalarFields(item any) map[string]string {
	obj, ok := item.(map[string]any)
	if !ok {
		return nil
	}
	meta := make(map[string]string)
	for k, v := range obj {
		switch v.(type) {
		case string, float64, bool:
			meta[k] = scalarString(v)
		}
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%g", s)
	case bool:
		return fmt.Sprintf("%t", s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}
