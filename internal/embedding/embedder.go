// Package embedding provides question embedding via ONNX with a
// deterministic hash-based fallback, plus LRU caching.
package embedding

import (
	"context"
	"errors"
	"os"
	"time"
)

// ErrUnavailable is returned when no embedding model can be loaded. Callers
// degrade to lexical matching instead of surfacing this to users.
var ErrUnavailable = errors.New("embedding model unavailable")

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// New returns an ONNX embedder when modelPath points to an existing model
// file and the build supports it, otherwise the deterministic hash embedder.
// The returned bool reports whether the real model was loaded.
func New(modelPath string, dimensions, maxTokens, cacheSize int) (Embedder, bool, error) {
	if modelPath != "" {
		if _, err := os.Stat(modelPath); err == nil {
			e, err := NewONNXEmbedder(modelPath, dimensions, maxTokens, cacheSize)
			if err == nil {
				return e, true, nil
			}
		}
	}
	return NewMockEmbedder(dimensions), false, nil
}

// EmbedWithTimeout runs Embed under a deadline. On timeout or error it
// returns ErrUnavailable so the caller can fall through to lexical tiers.
func EmbedWithTimeout(ctx context.Context, e Embedder, text string, timeout time.Duration) ([]float32, error) {
	if timeout <= 0 {
		return e.Embed(ctx, text)
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		vec []float32
		err error
	}
	ch := make(chan result, 1)
	go func() {
		vec, err := e.Embed(ctx, text)
		ch <- result{vec: vec, err: err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			return nil, ErrUnavailable
		}
		return r.vec, nil
	case <-ctx.Done():
		return nil, ErrUnavailable
	}
}
