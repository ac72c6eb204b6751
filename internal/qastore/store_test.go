package qastore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/digiraksha/mitra/internal/embedding"
	"github.com/digiraksha/mitra/internal/models"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mitra.db")
	indexPath := filepath.Join(dir, "embeddings.bin")
	store, err := Open(context.Background(), dbPath, indexPath, embedding.NewMockEmbedder(64), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, dir
}

func samplePairs() []models.QAPairInput {
	return []models.QAPairInput{
		{Question: "How do I secure my UPI account?", Answer: "Enable app lock and never share your PIN.", Category: models.CategorySecurityMeasures},
		{Question: "How do I report a fraud?", Answer: "Call 1930 and file a complaint on the cybercrime portal.", Category: models.CategoryEmergencyHelp},
	}
}

func TestAddPairsAndCount(t *testing.T) {
	store, _ := openTestStore(t)
	added, err := store.AddPairs(context.Background(), samplePairs())
	if err != nil {
		t.Fatalf("AddPairs: %v", err)
	}
	if added != 2 {
		t.Errorf("expected 2 added, got %d", added)
	}
	if store.Count() != 2 {
		t.Errorf("expected 2 records, got %d", store.Count())
	}
	if store.IndexSize() != 2 {
		t.Errorf("index should track record count, got %d", store.IndexSize())
	}
}

func TestAddPairsIdempotent(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	if _, err := store.AddPairs(ctx, samplePairs()); err != nil {
		t.Fatalf("AddPairs: %v", err)
	}
	added, err := store.AddPairs(ctx, samplePairs())
	if err != nil {
		t.Fatalf("AddPairs again: %v", err)
	}
	if added != 0 {
		t.Errorf("re-ingesting the same pairs should add 0, got %d", added)
	}
	if store.Count() != 2 {
		t.Errorf("expected 2 records, got %d", store.Count())
	}
}

func TestAddPairsDedupNormalizesQuestion(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	_, _ = store.AddPairs(ctx, []models.QAPairInput{
		{Question: "How do I block my card?", Answer: "Call the helpline."},
	})
	added, _ := store.AddPairs(ctx, []models.QAPairInput{
		{Question: "  how do I BLOCK my card?  ", Answer: "different answer"},
	})
	if added != 0 {
		t.Errorf("case/whitespace variant should dedup, got %d added", added)
	}
}

func TestAddPairsSkipsEmpty(t *testing.T) {
	store, _ := openTestStore(t)
	added, err := store.AddPairs(context.Background(), []models.QAPairInput{
		{Question: "", Answer: "answer"},
		{Question: "question", Answer: ""},
	})
	if err != nil {
		t.Fatalf("AddPairs: %v", err)
	}
	if added != 0 {
		t.Errorf("empty question or answer must be skipped, got %d", added)
	}
}

func TestSearchSimilarFindsTrainedQuestion(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	if _, err := store.AddPairs(ctx, samplePairs()); err != nil {
		t.Fatalf("AddPairs: %v", err)
	}
	embedder := embedding.NewMockEmbedder(64)
	// The mock embedder is deterministic, so the exact question embeds to
	// the exact stored vector.
	vec, err := embedder.Embed(ctx, "How do I secure my UPI account?")
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	hits, err := store.SearchSimilar(ctx, vec, 1)
	if err != nil {
		t.Fatalf("SearchSimilar: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	rec, ok := store.RecordByID(hits[0].ID)
	if !ok {
		t.Fatal("hit ID not resolvable")
	}
	if rec.Question != "How do I secure my UPI account?" {
		t.Errorf("wrong record matched: %s", rec.Question)
	}
	if hits[0].Score < 0.99 {
		t.Errorf("identical text should score ~1, got %f", hits[0].Score)
	}
}

func TestReopenLoadsPersistedRecords(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mitra.db")
	indexPath := filepath.Join(dir, "embeddings.bin")
	ctx := context.Background()

	store, err := Open(ctx, dbPath, indexPath, embedding.NewMockEmbedder(64), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.AddPairs(ctx, samplePairs()); err != nil {
		t.Fatalf("AddPairs: %v", err)
	}
	_ = store.Close()

	reopened, err := Open(ctx, dbPath, indexPath, embedding.NewMockEmbedder(64), nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if reopened.Count() != 2 {
		t.Errorf("expected 2 records after reopen, got %d", reopened.Count())
	}
	if reopened.IndexSize() != 2 {
		t.Errorf("expected 2 vectors after reopen, got %d", reopened.IndexSize())
	}
}

func TestStaleIndexRebuiltOnOpen(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "mitra.db")
	indexPath := filepath.Join(dir, "embeddings.bin")
	ctx := context.Background()

	store, err := Open(ctx, dbPath, indexPath, embedding.NewMockEmbedder(64), nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.AddPairs(ctx, samplePairs()); err != nil {
		t.Fatalf("AddPairs: %v", err)
	}
	_ = store.Close()

	// Corrupting the snapshot forces the count mismatch path.
	if err := os.Remove(indexPath); err != nil {
		t.Fatalf("remove index: %v", err)
	}

	reopened, err := Open(ctx, dbPath, indexPath, embedding.NewMockEmbedder(64), nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if reopened.IndexSize() != reopened.Count() {
		t.Errorf("stale index must be rebuilt before serving: index=%d records=%d",
			reopened.IndexSize(), reopened.Count())
	}
	if _, err := os.Stat(indexPath); err != nil {
		t.Errorf("rebuild should refresh the snapshot: %v", err)
	}
}

func TestRecordsSnapshotInsertionOrder(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	_, _ = store.AddPairs(ctx, samplePairs())
	records := store.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Question != "How do I secure my UPI account?" {
		t.Errorf("records out of insertion order: %s first", records[0].Question)
	}
	if len(records[0].Keywords) == 0 {
		t.Error("keywords should be extracted at ingestion time")
	}
}
