package embedding

import (
	"context"
	"math"

	"github.com/digiraksha/mitra/pkg/utils"
)

// MockEmbedder derives a unit vector from the question's hash. The same
// question always maps to the same vector, which keeps exact repeats of
// trained questions matchable even without a real model; paraphrases get
// unrelated vectors, so callers rely on the lexical tiers for those.
type MockEmbedder struct {
	dimensions int
}

// NewMockEmbedder returns a deterministic embedder of the given
// dimensionality (384 when non-positive, matching the MiniLM default).
func NewMockEmbedder(dimensions int) *MockEmbedder {
	if dimensions <= 0 {
		dimensions = 384
	}
	return &MockEmbedder{dimensions: dimensions}
}

// Embed maps the question hash through a sine series and normalizes.
func (e *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	h := hashString(text)
	emb := make([]float32, e.dimensions)
	for i := 0; i < e.dimensions; i++ {
		emb[i] = float32(math.Sin(float64(h*(i+1)))*0.1 + 0.01)
	}
	utils.NormalizeL2(emb)
	return emb, nil
}

// EmbedBatch embeds each question in turn.
func (e *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		emb, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = emb
	}
	return out, nil
}

// Dimensions returns the embedding dimensionality.
func (e *MockEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op; there is no model to release.
func (e *MockEmbedder) Close() error {
	return nil
}
