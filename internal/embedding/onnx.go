//go:build cgo
// +build cgo

package embedding

import (
	"context"
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/digiraksha/mitra/pkg/utils"
)

// ONNXEmbedder runs a MiniLM-style sentence encoder through ONNX
// Runtime. Tensors are allocated once at the model's fixed shape and
// reused across questions, so inference is serialized by a mutex.
type ONNXEmbedder struct {
	session    *ort.AdvancedSession
	dimensions int
	maxTokens  int
	cache      *queryCache
	tokenizer  Tokenizer

	ids    *ort.Tensor[int64]
	mask   *ort.Tensor[int64]
	types  *ort.Tensor[int64]
	output *ort.Tensor[float32]
	mu     sync.Mutex
}

// NewONNXEmbedder loads the model at modelPath and prepares the reusable
// input and output tensors. Initializing the runtime environment is
// idempotent, so repeated constructions are safe.
func NewONNXEmbedder(modelPath string, dimensions, maxTokens, cacheSize int) (*ONNXEmbedder, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("initialize onnx runtime: %w", err)
	}

	tokenizer := SimpleTokenizer{}
	ids, mask, types := tokenizer.Tokenize("", maxTokens)

	var created []ort.ArbitraryTensor
	destroyCreated := func() {
		for _, t := range created {
			_ = t.Destroy()
		}
	}
	newInput := func(name string, data []int64) (*ort.Tensor[int64], error) {
		t, err := ort.NewTensor(ort.NewShape(1, int64(maxTokens)), data)
		if err != nil {
			destroyCreated()
			return nil, fmt.Errorf("create %s tensor: %w", name, err)
		}
		created = append(created, t)
		return t, nil
	}

	idsTensor, err := newInput("input_ids", ids)
	if err != nil {
		return nil, err
	}
	maskTensor, err := newInput("attention_mask", mask)
	if err != nil {
		return nil, err
	}
	typesTensor, err := newInput("token_type_ids", types)
	if err != nil {
		return nil, err
	}
	outputTensor, err := ort.NewTensor(ort.NewShape(1, int64(dimensions)), make([]float32, dimensions))
	if err != nil {
		destroyCreated()
		return nil, fmt.Errorf("create output tensor: %w", err)
	}
	created = append(created, outputTensor)

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"output"},
		[]ort.ArbitraryTensor{idsTensor, maskTensor, typesTensor},
		[]ort.ArbitraryTensor{outputTensor},
		nil,
	)
	if err != nil {
		destroyCreated()
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &ONNXEmbedder{
		session:    session,
		dimensions: dimensions,
		maxTokens:  maxTokens,
		cache:      newQueryCache(cacheSize),
		tokenizer:  tokenizer,
		ids:        idsTensor,
		mask:       maskTensor,
		types:      typesTensor,
		output:     outputTensor,
	}, nil
}

// Embed returns the normalized embedding for a question, serving repeats
// from the cache.
func (e *ONNXEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := e.cache.Get(text); ok {
		return vec, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ids, mask, types := e.tokenizer.Tokenize(text, e.maxTokens)
	copy(e.ids.GetData(), ids)
	copy(e.mask.GetData(), mask)
	copy(e.types.GetData(), types)

	if err := e.session.Run(); err != nil {
		return nil, fmt.Errorf("onnx inference: %w", err)
	}

	vec := make([]float32, e.dimensions)
	copy(vec, e.output.GetData()[:e.dimensions])
	utils.NormalizeL2(vec)

	e.cache.Set(text, vec)
	return vec, nil
}

// EmbedBatch embeds each question in turn; the session only takes one
// sequence at a time.
func (e *ONNXEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// Dimensions returns the embedding dimensionality.
func (e *ONNXEmbedder) Dimensions() int {
	return e.dimensions
}

// Close releases the session and its tensors. Safe to call more than
// once.
func (e *ONNXEmbedder) Close() error {
	var err error
	if e.session != nil {
		err = e.session.Destroy()
		e.session = nil
	}
	for _, t := range []*ort.Tensor[int64]{e.ids, e.mask, e.types} {
		if t != nil {
			_ = t.Destroy()
		}
	}
	e.ids, e.mask, e.types = nil, nil, nil
	if e.output != nil {
		_ = e.output.Destroy()
		e.output = nil
	}
	return err
}
