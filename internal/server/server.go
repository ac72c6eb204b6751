// Package server provides the HTTP API for mitra.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/digiraksha/mitra/internal/chat"
	"github.com/digiraksha/mitra/internal/config"
	"github.com/digiraksha/mitra/internal/fraud"
	"github.com/digiraksha/mitra/internal/personality"
	"github.com/digiraksha/mitra/internal/qastore"
	"github.com/digiraksha/mitra/internal/trainer"
)

// Server is the HTTP server for the mitra API.
type Server struct {
	orchestrator *chat.Orchestrator
	trainer      *trainer.Trainer
	store        *qastore.Store
	profiles     *personality.Registry
	checker      *fraud.Checker
	config       *config.Config
	configPath   string
	logger       *zap.Logger
	server       *http.Server

	mu                 sync.Mutex
	defaultPersonality string
}

// NewServer creates a server with the given dependencies. configPath may be
// empty; personality changes are then not persisted.
func NewServer(
	orchestrator *chat.Orchestrator,
	tr *trainer.Trainer,
	store *qastore.Store,
	profiles *personality.Registry,
	checker *fraud.Checker,
	cfg *config.Config,
	configPath string,
	logger *zap.Logger,
) *Server {
	return &Server{
		orchestrator:       orchestrator,
		trainer:            tr,
		store:              store,
		profiles:           profiles,
		checker:            checker,
		config:             cfg,
		configPath:         configPath,
		logger:             logger,
		defaultPersonality: cfg.Chat.DefaultPersonality,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))
	r.Use(metricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Post("/api/v1/chat", s.handleChat)
	r.Post("/api/v1/train", s.handleTrain)
	r.Get("/api/v1/context/{userID}/summary", s.handleContextSummary)
	r.Get("/api/v1/personalities", s.handlePersonalitiesList)
	r.Put("/api/v1/personality", s.handlePersonalitySet)
	r.Post("/api/v1/fraud/check", s.handleFraudCheck)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
