package trainer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/digiraksha/mitra/internal/embedding"
	"github.com/digiraksha/mitra/internal/models"
	"github.com/digiraksha/mitra/internal/qastore"
)

func newTestTrainer(t *testing.T) *Trainer {
	t.Helper()
	dir := t.TempDir()
	store, err := qastore.Open(context.Background(),
		filepath.Join(dir, "mitra.db"), filepath.Join(dir, "embeddings.bin"),
		embedding.NewMockEmbedder(64), nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return New(store, nil)
}

func TestTrainPairs(t *testing.T) {
	tr := newTestTrainer(t)
	res, err := tr.TrainPairs(context.Background(), []models.QAPairInput{
		{Question: "How do I block my card?", Answer: "Call your bank helpline immediately."},
		{Question: "What is a SIM swap?", Answer: "An attacker takes over your phone number.", Category: "fraud_types"},
		{Question: "  ", Answer: "orphan answer"},
		{Question: "no answer here", Answer: ""},
	})
	if err != nil {
		t.Fatalf("TrainPairs: %v", err)
	}
	if res.Added != 2 || res.Skipped != 2 || res.Total != 2 {
		t.Errorf("got added=%d skipped=%d total=%d, want 2/2/2", res.Added, res.Skipped, res.Total)
	}
}

func TestTrainPairsDuplicatesSkipped(t *testing.T) {
	tr := newTestTrainer(t)
	pairs := []models.QAPairInput{
		{Question: "How do I block my card?", Answer: "Call your bank helpline immediately."},
	}
	if _, err := tr.TrainPairs(context.Background(), pairs); err != nil {
		t.Fatalf("first run: %v", err)
	}
	res, err := tr.TrainPairs(context.Background(), pairs)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Added != 0 || res.Skipped != 1 || res.Total != 1 {
		t.Errorf("re-ingest: got added=%d skipped=%d total=%d, want 0/1/1", res.Added, res.Skipped, res.Total)
	}
}

func TestTrainFile(t *testing.T) {
	tr := newTestTrainer(t)
	path := filepath.Join(t.TempDir(), "training.json")
	content := `[
		{"question": "Is UPI safe at night?", "answer": "Yes, but watch for unusual collect requests.", "category": "security_measures"},
		{"question": "What is phishing?", "answer": "Fraudulent messages that imitate your bank."}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := tr.TrainFile(context.Background(), path)
	if err != nil {
		t.Fatalf("TrainFile: %v", err)
	}
	if res.Added != 2 {
		t.Errorf("expected 2 added, got %d", res.Added)
	}
}

func TestTrainFileErrors(t *testing.T) {
	tr := newTestTrainer(t)
	if _, err := tr.TrainFile(context.Background(), "does-not-exist.json"); err == nil {
		t.Error("missing file should error")
	}
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := tr.TrainFile(context.Background(), path); err == nil {
		t.Error("malformed JSON should error")
	}
}
