package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/digiraksha/mitra/internal/chat"
	"github.com/digiraksha/mitra/internal/config"
	"github.com/digiraksha/mitra/internal/fraud"
	"github.com/digiraksha/mitra/internal/metrics"
	"github.com/digiraksha/mitra/internal/models"
	"github.com/digiraksha/mitra/internal/qastore"
)

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Personality == "" {
		s.mu.Lock()
		req.Personality = s.defaultPersonality
		s.mu.Unlock()
	}
	resp, err := s.orchestrator.Chat(r.Context(), &req)
	if err != nil {
		if errors.Is(err, chat.ErrMalformedInput) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("chat failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.ChatResponsesTotal.WithLabelValues(resp.Source).Inc()
	if resp.MatchType != "" {
		metrics.ResolverMatchesTotal.WithLabelValues(resp.MatchType).Inc()
	}
	s.respondJSON(w, http.StatusOK, resp)
}

type trainRequest struct {
	Pairs []models.QAPairInput `json:"pairs"`
}

func (s *Server) handleTrain(w http.ResponseWriter, r *http.Request) {
	var req trainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Pairs) == 0 {
		s.respondError(w, http.StatusBadRequest, "pairs is required")
		return
	}
	res, err := s.trainer.TrainPairs(r.Context(), req.Pairs)
	if err != nil {
		s.logger.Error("training failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	metrics.QARecordsTotal.Set(float64(s.store.Count()))
	s.respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleContextSummary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	s.respondJSON(w, http.StatusOK, s.orchestrator.ContextSummary(userID))
}

func (s *Server) handlePersonalitiesList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	active := s.defaultPersonality
	s.mu.Unlock()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"personalities": s.profiles.List(),
		"active":        active,
	})
}

type personalityRequest struct {
	Name       string `json:"name"`
	LessFormal bool   `json:"less_formal,omitempty"`
	MoreHumor  bool   `json:"more_humor,omitempty"`
}

func (s *Server) handlePersonalitySet(w http.ResponseWriter, r *http.Request) {
	var req personalityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if s.profiles.Get(req.Name).Key != req.Name {
		s.respondError(w, http.StatusNotFound, "unknown personality")
		return
	}
	if req.LessFormal || req.MoreHumor {
		if _, err := s.profiles.Adjust(req.Name, req.LessFormal, req.MoreHumor); err != nil {
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	s.mu.Lock()
	s.defaultPersonality = req.Name
	s.config.Chat.DefaultPersonality = req.Name
	s.mu.Unlock()
	if s.configPath != "" {
		if err := config.Save(s.configPath, s.config); err != nil {
			s.logger.Warn("failed to persist personality", zap.Error(err))
		}
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"active": req.Name, "status": "updated"})
}

type fraudCheckRequest struct {
	UPIID string `json:"upi_id"`
}

func (s *Server) handleFraudCheck(w http.ResponseWriter, r *http.Request) {
	if s.checker == nil || !s.checker.Available() {
		s.respondError(w, http.StatusServiceUnavailable, "fraud model not loaded")
		return
	}
	var req fraudCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	report, err := s.checker.Check(r.Context(), req.UPIID)
	if err != nil {
		if errors.Is(err, fraud.ErrEmptyUPIID) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("fraud check failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, report)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	active := s.defaultPersonality
	s.mu.Unlock()
	resp := map[string]interface{}{
		"qa_records":        s.store.Count(),
		"vector_index_size": s.store.IndexSize(),
		"personality":       active,
		"fraud_model":       s.checker != nil && s.checker.Available(),
		"config": map[string]interface{}{
			"embedding_dimensions": s.config.Embedding.Dimensions,
			"semantic_threshold":   s.config.Resolver.SemanticThreshold,
			"fuzzy_threshold":      s.config.Resolver.FuzzyThreshold,
			"keyword_threshold":    s.config.Resolver.KeywordThreshold,
			"database_path":        s.config.Storage.DatabasePath,
			"vector_index_path":    s.config.Storage.VectorIndexPath,
		},
	}
	if diskBytes, err := qastore.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.VectorIndexPath,
	); err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
