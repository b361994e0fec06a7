package chunker

import (
	"strings"

	"campusqa/internal/domain"
)

// MarkdownChunker splits prose documents into length-bounded chunks.
// Sections are separated by blank lines; oversized sections are re-split
// on word boundaries so no chunk exceeds the configured limit.
type MarkdownChunker struct {
	maxChunkChars   int
	minSectionChars int
}

func NewMarkdownChunker(maxChunkChars, minSectionChars int) *MarkdownChunker {
	if maxChunkChars <= 0 {
		maxChunkChars = 800
	}
	if minSectionChars <= 0 {
		minSectionChars = 20
	}
	return &MarkdownChunker{maxChunkChars: maxChunkChars, minSectionChars: minSectionChars}
}

func (c *MarkdownChunker) Chunk(document domain.Document) ([]domain.Chunk, error) {
	sections := strings.Split(document.Content, "\n\n")
	var chunks []domain.Chunk
	for idx, section := range sections {
		section = strings.TrimSpace(section)
		if len(section) < c.minSectionChars {
			continue
		}
		if len(section) <= c.maxChunkChars {
			chunks = append(chunks, domain.Chunk{
				Text:         section,
				SourceID:     document.SourceID,
				SectionIndex: idx,
				ChunkIndex:   0,
			})
			continue
		}
		for subIdx, part := range splitWords(section, c.maxChunkChars) {
			chunks = append(chunks, domain.Chunk{
				Text:         part,
				SourceID:     document.SourceID,
				SectionIndex: idx,
				ChunkIndex:   subIdx,
			})
		}
	}
	return chunks, nil
}

// splitWords accumulates whitespace-separated words into parts of at most
// maxChars characters. A single word longer than maxChars becomes its own
// part rather than being cut mid-word.
func splitWords(text string, maxChars int) []string {
	words := strings.Fields(text)
	var parts []string
	var current []string
	length := 0
	for _, word := range words {
		wordLen := len(word) + 1 // separating space
		if length+wordLen > maxChars && len(current) > 0 {
			parts = append(parts, strings.Join(current, " "))
			current = []string{word}
			length = wordLen
		} else {
			current = append(current, word)
			length += wordLen
		}
	}
	if len(current) > 0 {
		parts = append(parts, strings.Join(current, " "))
	}
	return parts
}
