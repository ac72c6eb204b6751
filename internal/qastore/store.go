package qastore

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/digiraksha/mitra/internal/embedding"
	"github.com/digiraksha/mitra/internal/models"
	"github.com/digiraksha/mitra/internal/recordid"
	"github.com/digiraksha/mitra/internal/vector"
	"github.com/digiraksha/mitra/pkg/utils"
)

// Store combines durable SQLite records with an in-memory embedding index.
// Reads are served lock-free against an immutable snapshot; ingestion
// rebuilds the index off to the side and swaps it in atomically, so readers
// never observe a partially rebuilt index.
type Store struct {
	sqlite    *SQLiteStore
	embedder  embedding.Embedder
	indexPath string
	logger    *zap.Logger

	mu      sync.RWMutex
	records []*models.QARecord
	byID    map[string]*models.QARecord
	index   vector.Index
}

// Open loads all persisted records and the embedding index snapshot. If the
// snapshot's vector count does not match the record count the index is
// considered stale and is rebuilt synchronously before Open returns.
func Open(ctx context.Context, dbPath, indexPath string, embedder embedding.Embedder, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sqlite, err := NewSQLiteStore(dbPath)
	if err != nil {
		return nil, err
	}

	records, err := sqlite.ListRecords(ctx)
	if err != nil {
		_ = sqlite.Close()
		return nil, fmt.Errorf("failed to load qa records: %w", err)
	}

	idx, err := vector.NewMemoryIndex(embedder.Dimensions())
	if err != nil {
		_ = sqlite.Close()
		return nil, err
	}
	if err := idx.Load(indexPath); err != nil {
		logger.Warn("failed to load embedding index, will rebuild", zap.Error(err))
		idx, _ = vector.NewMemoryIndex(embedder.Dimensions())
	}

	s := &Store{
		sqlite:    sqlite,
		embedder:  embedder,
		indexPath: indexPath,
		logger:    logger,
		records:   records,
		byID:      indexByID(records),
		index:     idx,
	}

	if idx.Size() != len(records) {
		logger.Info("embedding index stale, rebuilding",
			zap.Int("index_vectors", idx.Size()),
			zap.Int("records", len(records)))
		if err := s.rebuildIndex(ctx); err != nil {
			_ = sqlite.Close()
			return nil, fmt.Errorf("failed to rebuild embedding index: %w", err)
		}
	}

	logger.Info("qa store ready", zap.Int("records", len(records)))
	return s, nil
}

func indexByID(records []*models.QARecord) map[string]*models.QARecord {
	byID := make(map[string]*models.QARecord, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	return byID
}

// AddPairs ingests new QA pairs, skipping any whose normalized question is
// already stored, then rebuilds and swaps the embedding index. Returns the
// number of records actually added.
func (s *Store) AddPairs(ctx context.Context, pairs []models.QAPairInput) (int, error) {
	added := 0
	for _, pair := range pairs {
		question := pair.Question
		if question == "" || pair.Answer == "" {
			continue
		}
		id := recordid.QARecordID(question)
		s.mu.RLock()
		_, exists := s.byID[id]
		s.mu.RUnlock()
		if exists {
			continue
		}
		category := pair.Category
		if category == "" {
			category = models.CategoryGeneral
		}
		rec := &models.QARecord{
			ID:       id,
			Question: question,
			Answer:   pair.Answer,
			Category: category,
			Keywords: utils.ExtractKeywords(question),
		}
		if err := s.sqlite.InsertRecord(ctx, rec); err != nil {
			return added, fmt.Errorf("failed to persist record: %w", err)
		}
		s.mu.Lock()
		s.records = append(s.records, rec)
		s.byID[rec.ID] = rec
		s.mu.Unlock()
		added++
	}

	if added > 0 {
		if err := s.rebuildIndex(ctx); err != nil {
			return added, err
		}
	}
	return added, nil
}

// rebuildIndex embeds every stored question into a fresh index and swaps it
// in under the write lock. The snapshot on disk is refreshed afterwards.
func (s *Store) rebuildIndex(ctx context.Context) error {
	s.mu.RLock()
	records := make([]*models.QARecord, len(s.records))
	copy(records, s.records)
	s.mu.RUnlock()

	fresh, err := vector.NewMemoryIndex(s.embedder.Dimensions())
	if err != nil {
		return err
	}
	if len(records) > 0 {
		questions := make([]string, len(records))
		ids := make([]string, len(records))
		for i, rec := range records {
			questions[i] = rec.Question
			ids[i] = rec.ID
		}
		vectors, err := s.embedder.EmbedBatch(ctx, questions)
		if err != nil {
			return fmt.Errorf("failed to embed questions: %w", err)
		}
		if err := fresh.Add(ctx, ids, vectors); err != nil {
			return err
		}
		for i, rec := range records {
			rec.Embedding = vectors[i]
		}
	}

	s.mu.Lock()
	s.index = fresh
	s.mu.Unlock()

	if err := fresh.Save(s.indexPath); err != nil {
		s.logger.Warn("failed to save embedding index snapshot", zap.Error(err))
	}
	s.logger.Info("embedding index rebuilt", zap.Int("vectors", fresh.Size()))
	return nil
}

// Records returns the current record snapshot in insertion order.
func (s *Store) Records() []*models.QARecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.QARecord, len(s.records))
	copy(out, s.records)
	return out
}

// RecordByID returns the record with the given ID.
func (s *Store) RecordByID(id string) (*models.QARecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.byID[id]
	return rec, ok
}

// SearchSimilar queries the current embedding index.
func (s *Store) SearchSimilar(ctx context.Context, query []float32, k int) ([]*vector.Result, error) {
	s.mu.RLock()
	idx := s.index
	s.mu.RUnlock()
	return idx.Search(ctx, query, k)
}

// Count returns the number of stored records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// IndexSize returns the number of vectors in the active index.
func (s *Store) IndexSize() int {
	s.mu.RLock()
	idx := s.index
	s.mu.RUnlock()
	return idx.Size()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.sqlite.Close()
}
