// Package vector provides an in-memory embedding index with brute-force
// cosine search and a binary on-disk snapshot format.
package vector

import "context"

// Index defines embedding storage and similarity search over QA records.
type Index interface {
	Add(ctx context.Context, ids []string, vectors [][]float32) error
	Search(ctx context.Context, query []float32, k int) ([]*Result, error)
	Remove(ctx context.Context, ids []string) error
	Save(path string) error
	Load(path string) error
	Size() int
	Close() error
}

// Result is a single similarity hit. ID is the QA record ID.
type Result struct {
	ID    string
	Score float64 // cosine similarity for normalized vectors, 0-1
}
