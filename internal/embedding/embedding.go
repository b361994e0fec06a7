// Package embedding converts text into fixed-dimension vectors via an
// external model backend.
package embedding

import (
	"context"
	"errors"
)

// ErrUnavailable reports that the embedding backend failed to initialize
// or errored mid-call. Callers should treat it as retryable.
var ErrUnavailable = errors.New("embedding backend unavailable")

// Embedder converts text into numeric vectors. One vector is returned per
// input string, preserving order and count. Implementations may defer
// expensive model initialization until the first Embed call.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}
