// Package trainer ingests QA training files into the store.
package trainer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/digiraksha/mitra/internal/models"
)

// Store is the ingestion target; satisfied by qastore.Store.
type Store interface {
	AddPairs(ctx context.Context, pairs []models.QAPairInput) (int, error)
	Count() int
}

// Result summarizes one training run.
type Result struct {
	Added   int `json:"added"`
	Skipped int `json:"skipped"`
	Total   int `json:"total"`
}

// Trainer loads QA pairs from JSON files and feeds them into the store.
type Trainer struct {
	store  Store
	logger *zap.Logger
}

func New(store Store, logger *zap.Logger) *Trainer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Trainer{store: store, logger: logger}
}

// TrainPairs validates and ingests pairs directly. Pairs with an empty
// question or answer are skipped, not rejected.
func (t *Trainer) TrainPairs(ctx context.Context, pairs []models.QAPairInput) (*Result, error) {
	valid := make([]models.QAPairInput, 0, len(pairs))
	skipped := 0
	for _, p := range pairs {
		if strings.TrimSpace(p.Question) == "" || strings.TrimSpace(p.Answer) == "" {
			skipped++
			continue
		}
		valid = append(valid, p)
	}
	added, err := t.store.AddPairs(ctx, valid)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest pairs: %w", err)
	}
	// Duplicates filtered by the store count as skipped too.
	skipped += len(valid) - added
	return &Result{Added: added, Skipped: skipped, Total: t.store.Count()}, nil
}

// TrainFile parses a JSON array of {question, answer, category} objects
// and ingests it.
func (t *Trainer) TrainFile(ctx context.Context, path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read training file: %w", err)
	}
	var pairs []models.QAPairInput
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("failed to parse training file %s: %w", path, err)
	}
	res, err := t.TrainPairs(ctx, pairs)
	if err != nil {
		return nil, err
	}
	t.logger.Info("training file ingested",
		zap.String("path", path),
		zap.Int("added", res.Added),
		zap.Int("skipped", res.Skipped),
		zap.Int("total", res.Total))
	return res, nil
}
