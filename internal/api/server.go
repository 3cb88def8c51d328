// Package api provides the Inkwell HTTP server: journal entries, streaks,
// the daily prompt flow, and gamification views.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is the Inkwell HTTP API server.
type Server struct {
	journal        *JournalAPI
	metricsEnabled bool
	healthFn       func() bool // nil means always healthy
}

// NewServer creates a new API server around the journal handlers.
func NewServer(journal *JournalAPI) *Server {
	return &Server{journal: journal}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealthFn sets the health probe backing GET /health.
func (s *Server) SetHealthFn(fn func() bool) { s.healthFn = fn }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if s.healthFn != nil && !s.healthFn() {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	// Journal API
	r.Route("/api/journal", func(r chi.Router) {
		r.Post("/users", s.journal.HandleCreateUser)
		r.Get("/prompts/today", s.journal.HandlePromptOfTheDay)

		r.Route("/users/{id}", func(r chi.Router) {
			r.Post("/entries", s.journal.HandleAddEntry)
			r.Get("/entries", s.journal.HandleListEntries)
			r.Get("/streak", s.journal.HandleStreak)
			r.Get("/stats", s.journal.HandleStats)
			r.Get("/achievements", s.journal.HandleAchievements)
			r.Get("/prompt/today", s.journal.HandlePromptToday)
			r.Post("/prompt/complete", s.journal.HandlePromptComplete)
			r.Post("/prompt/skip", s.journal.HandlePromptSkip)
		})
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
