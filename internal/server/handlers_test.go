package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/digiraksha/mitra/internal/chat"
	"github.com/digiraksha/mitra/internal/classifier"
	"github.com/digiraksha/mitra/internal/config"
	"github.com/digiraksha/mitra/internal/conversation"
	"github.com/digiraksha/mitra/internal/embedding"
	"github.com/digiraksha/mitra/internal/emotion"
	"github.com/digiraksha/mitra/internal/fraud"
	"github.com/digiraksha/mitra/internal/knowledge"
	"github.com/digiraksha/mitra/internal/models"
	"github.com/digiraksha/mitra/internal/personality"
	"github.com/digiraksha/mitra/internal/qastore"
	"github.com/digiraksha/mitra/internal/resolver"
	"github.com/digiraksha/mitra/internal/trainer"
)

type fixedScorer struct{ p float64 }

func (s fixedScorer) Score(_ context.Context, _ []float32) (float64, error) {
	return s.p, nil
}

func newTestServer(t *testing.T, scorer fraud.Scorer) *Server {
	t.Helper()
	dir := t.TempDir()
	embedder := embedding.NewMockEmbedder(64)
	store, err := qastore.Open(context.Background(),
		filepath.Join(dir, "mitra.db"), filepath.Join(dir, "embeddings.bin"), embedder, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	kb := knowledge.New(nil)
	t.Cleanup(func() { _ = kb.Close() })
	registry := personality.NewRegistry()
	orchestrator := chat.New(
		classifier.New(nil),
		emotion.NewAnalyzer(nil, nil),
		resolver.New(store, embedder, resolver.Options{}, nil),
		knowledge.NewComposer(kb),
		personality.NewShaper(registry, nil),
		registry,
		conversation.NewTracker(nil),
		nil,
	)

	return NewServer(
		orchestrator,
		trainer.New(store, nil),
		store,
		registry,
		fraud.NewChecker(scorer, nil),
		config.Default(),
		"",
		zap.NewNop(),
	)
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHandleChat(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.Router()

	rr := doJSON(t, router, http.MethodPost, "/api/v1/chat",
		map[string]string{"message": "Hello!", "user_id": "u1"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var resp models.ChatResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Answer == "" || resp.ResponseID == "" {
		t.Errorf("incomplete response: %+v", resp)
	}
	if resp.Personality != personality.DefaultProfile {
		t.Errorf("expected default personality, got %s", resp.Personality)
	}
}

func TestHandleChatEmptyMessage(t *testing.T) {
	srv := newTestServer(t, nil)
	rr := doJSON(t, srv.Router(), http.MethodPost, "/api/v1/chat",
		map[string]string{"message": "   "})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestHandleChatInvalidBody(t *testing.T) {
	srv := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	srv.Router().ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestHandleTrain(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.Router()

	body := map[string]interface{}{"pairs": []map[string]string{
		{"question": "How do I block my card?", "answer": "Call your bank helpline immediately."},
	}}
	rr := doJSON(t, router, http.MethodPost, "/api/v1/train", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var res trainer.Result
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Added != 1 || res.Total != 1 {
		t.Errorf("unexpected result: %+v", res)
	}

	// Re-train with the same pair: idempotent.
	rr = doJSON(t, router, http.MethodPost, "/api/v1/train", body)
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Added != 0 || res.Total != 1 {
		t.Errorf("re-train should add nothing: %+v", res)
	}
}

func TestHandleTrainEmptyPairs(t *testing.T) {
	srv := newTestServer(t, nil)
	rr := doJSON(t, srv.Router(), http.MethodPost, "/api/v1/train",
		map[string]interface{}{"pairs": []map[string]string{}})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rr.Code)
	}
}

func TestHandleContextSummary(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.Router()

	rr := doJSON(t, router, http.MethodGet, "/api/v1/context/u9/summary", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var summary models.EmotionalStateSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Status != "no_history" {
		t.Errorf("expected no_history, got %s", summary.Status)
	}

	doJSON(t, router, http.MethodPost, "/api/v1/chat",
		map[string]string{"message": "I am worried about a scam", "user_id": "u9"})
	rr = doJSON(t, router, http.MethodGet, "/api/v1/context/u9/summary", nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Status != "analyzed" {
		t.Errorf("expected analyzed after chatting, got %s", summary.Status)
	}
}

func TestHandlePersonalities(t *testing.T) {
	srv := newTestServer(t, nil)
	router := srv.Router()

	rr := doJSON(t, router, http.MethodGet, "/api/v1/personalities", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var list struct {
		Personalities []string `json:"personalities"`
		Active        string   `json:"active"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Personalities) != 3 {
		t.Errorf("expected 3 personalities, got %v", list.Personalities)
	}
	if list.Active != personality.DefaultProfile {
		t.Errorf("expected default active, got %s", list.Active)
	}

	rr = doJSON(t, router, http.MethodPut, "/api/v1/personality",
		map[string]string{"name": personality.ProfileFriendlyCompanion})
	if rr.Code != http.StatusOK {
		t.Fatalf("set personality: status %d: %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, router, http.MethodGet, "/api/v1/personalities", nil)
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Active != personality.ProfileFriendlyCompanion {
		t.Errorf("active not updated: %s", list.Active)
	}
}

func TestHandlePersonalitySetUnknown(t *testing.T) {
	srv := newTestServer(t, nil)
	rr := doJSON(t, srv.Router(), http.MethodPut, "/api/v1/personality",
		map[string]string{"name": "grumpy_cat"})
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestHandleFraudCheck(t *testing.T) {
	srv := newTestServer(t, fixedScorer{p: 0.85})
	rr := doJSON(t, srv.Router(), http.MethodPost, "/api/v1/fraud/check",
		map[string]string{"upi_id": "winner2024@freemoney"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	var report fraud.Report
	if err := json.Unmarshal(rr.Body.Bytes(), &report); err != nil {
		t.Fatal(err)
	}
	if report.RiskLevel != fraud.RiskDanger {
		t.Errorf("expected danger, got %s", report.RiskLevel)
	}
}

func TestHandleFraudCheckWithoutModel(t *testing.T) {
	srv := newTestServer(t, nil)
	rr := doJSON(t, srv.Router(), http.MethodPost, "/api/v1/fraud/check",
		map[string]string{"upi_id": "user@paytm"})
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rr.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	srv := newTestServer(t, nil)
	rr := doJSON(t, srv.Router(), http.MethodGet, "/api/v1/status", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var status map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"qa_records", "vector_index_size", "personality", "config"} {
		if _, ok := status[key]; !ok {
			t.Errorf("status missing %q: %v", key, status)
		}
	}
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(t, nil)
	rr := doJSON(t, srv.Router(), http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t, nil)
	// Prime the request counter so its series shows up in the scrape.
	doJSON(t, srv.Router(), http.MethodGet, "/health", nil)
	rr := doJSON(t, srv.Router(), http.MethodGet, "/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("mitra_http_requests_total")) {
		t.Error("metrics output missing request counter")
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	srv := newTestServer(t, nil)
	rr := doJSON(t, srv.Router(), http.MethodGet, fmt.Sprintf("/api/v1/%s", "nope"), nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}
