package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/NikhilShimpy/AskSIEM/internal/alert"
	"github.com/NikhilShimpy/AskSIEM/internal/engine"
	"github.com/NikhilShimpy/AskSIEM/internal/history"
	"github.com/NikhilShimpy/AskSIEM/internal/metrics"
	"github.com/NikhilShimpy/AskSIEM/internal/store"
)

// maxBodySize caps /ask and /clear request bodies.
const maxBodySize = 64 * 1024

// defaultSession is used when a client supplies no session ID.
const defaultSession = "default"

// Server exposes the query pipeline over HTTP.
type Server struct {
	engine    *engine.Engine
	store     *store.MemoryStore
	history   *history.Log
	publisher *alert.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	router    *chi.Mux
}

// NewServer wires the HTTP surface. publisher and metrics may be nil.
func NewServer(eng *engine.Engine, st *store.MemoryStore, hist *history.Log, pub *alert.Publisher, m *metrics.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		engine:    eng,
		store:     st,
		history:   hist,
		publisher: pub,
		metrics:   m,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Post("/ask", s.handleAsk)
	r.Get("/conversation", s.handleConversation)
	r.Post("/clear", s.handleClear)
	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())
	s.router = r

	return s
}

// Handler returns the root handler with gzip response compression.
func (s *Server) Handler() http.Handler {
	return gzhttp.GzipHandler(s.router)
}

type askRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id"`
}

// handleAsk processes a natural-language question.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID == "" {
		req.SessionID = defaultSession
	}

	result, err := s.engine.HandleQuery(req.Question)
	if err != nil {
		if errors.Is(err, engine.ErrEmptyQuery) {
			writeError(w, http.StatusBadRequest, "question must not be empty")
			return
		}
		s.logger.Error("Query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "query processing failed")
		return
	}

	s.history.Append(req.SessionID, history.Entry{
		Question:    result.Query,
		ParsedQuery: result.ParsedQuery,
		Summary:     result.Results.Summary,
		TotalEvents: result.Results.TotalEvents,
		Timestamp:   time.Now().UTC(),
	})
	if s.metrics != nil {
		s.metrics.HistorySessions.Set(float64(s.history.SessionCount()))
	}

	if err := s.publisher.PublishDangerInsights(result); err != nil {
		s.logger.Warn("Alert publish failed", "error", err)
	}

	writeJSON(w, http.StatusOK, result)
}

// handleConversation returns the conversation history for a session.
func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		sessionID = defaultSession
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id":   sessionID,
		"conversation": s.history.Get(sessionID),
	})
}

type clearRequest struct {
	SessionID string `json:"session_id"`
}

// handleClear drops a session's conversation history.
func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	// An empty body clears the default session.
	var req clearRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.SessionID == "" {
		req.SessionID = defaultSession
	}

	s.history.Clear(req.SessionID)
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "cleared", "session_id": req.SessionID})
}

// handleHealth reports liveness plus store statistics.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
		"stats":     s.store.Stats(),
	})
}

// handleReady reports readiness: the dataset must be loaded.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	loaded := len(s.store.AllEvents()) > 0

	status := "ready"
	code := http.StatusOK
	if !loaded {
		status = "not ready"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, map[string]interface{}{
		"status":         status,
		"timestamp":      time.Now().UTC(),
		"dataset_loaded": loaded,
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
