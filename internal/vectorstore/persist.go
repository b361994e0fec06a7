package vectorstore

import (
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"campusqa/internal/domain"
)

const (
	// VectorsFileName holds the binary vector blob.
	VectorsFileName = "vectors.gob"
	// MetadataFileName holds the chunk list and the redundant vector count.
	MetadataFileName = "chunks.json"

	currentFormatVersion = 1
)

type vectorsBlob struct {
	Version   int
	Dimension int
	Vectors   [][]float32
}

type metadataBlob struct {
	Version      int            `json:"version"`
	TotalVectors int            `json:"total_vectors"`
	Chunks       []domain.Chunk `json:"chunks"`
}

// Save writes both artifacts into dir. Each file is written to a temp path
// and renamed into place, vectors first and metadata last, so a reader
// never observes a new metadata file alongside stale vectors.
func (x *FlatIndex) Save(dir string) error {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	if err := writeGob(filepath.Join(dir, VectorsFileName), vectorsBlob{
		Version:   currentFormatVersion,
		Dimension: x.dimension,
		Vectors:   x.vectors,
	}); err != nil {
		return fmt.Errorf("writing vectors: %w", err)
	}
	meta := metadataBlob{
		Version:      currentFormatVersion,
		TotalVectors: len(x.vectors),
		Chunks:       x.chunks,
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding metadata: %w", err)
	}
	if err := writeAtomic(filepath.Join(dir, MetadataFileName), data); err != nil {
		return fmt.Errorf("writing metadata: %w", err)
	}
	return nil
}

// Load reads both artifacts from dir into a fresh index. A missing file is
// ErrNotFound; an unreadable file or a chunk count that disagrees with the
// vector count is ErrCorrupt.
func Load(dir string) (*FlatIndex, error) {
	var blob vectorsBlob
	if err := readGob(filepath.Join(dir, VectorsFileName), &blob); err != nil {
		return nil, err
	}
	if blob.Version != currentFormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrCorrupt, blob.Version)
	}

	metaPath := filepath.Join(dir, MetadataFileName)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s missing", ErrNotFound, MetadataFileName)
		}
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	var meta metadataBlob
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: decoding metadata: %v", ErrCorrupt, err)
	}
	if meta.TotalVectors != len(blob.Vectors) || len(meta.Chunks) != len(blob.Vectors) {
		return nil, fmt.Errorf("%w: metadata lists %d chunks (count field %d), vectors blob has %d",
			ErrCorrupt, len(meta.Chunks), meta.TotalVectors, len(blob.Vectors))
	}

	idx := NewFlatIndex()
	if err := idx.Build(blob.Vectors, meta.Chunks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return idx, nil
}

// Exists reports whether both persisted artifacts are present in dir.
func Exists(dir string) bool {
	for _, name := range []string{VectorsFileName, MetadataFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

func writeGob(path string, v any) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := gob.NewEncoder(f).Encode(v); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func readGob(path string, v any) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s missing", ErrNotFound, filepath.Base(path))
		}
		return err
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(v); err != nil {
		return fmt.Errorf("%w: decoding %s: %v", ErrCorrupt, filepath.Base(path), err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
