//go:build !cgo
// +build !cgo

package embedding

import (
	"context"
	"errors"
)

// ONNXEmbedder is a placeholder in cgo-free builds; the real encoder
// lives in onnx.go behind the cgo tag.
type ONNXEmbedder struct{}

// NewONNXEmbedder always fails without cgo. New falls back to the
// deterministic mock embedder in that configuration.
func NewONNXEmbedder(string, int, int, int) (*ONNXEmbedder, error) {
	return nil, errors.New("onnx embedder requires cgo and the onnxruntime shared library")
}

func (*ONNXEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, ErrUnavailable
}

func (*ONNXEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, ErrUnavailable
}

func (*ONNXEmbedder) Dimensions() int { return 0 }

func (*ONNXEmbedder) Close() error { return nil }
