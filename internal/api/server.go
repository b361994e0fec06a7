// Package api exposes the question-answering pipeline over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"campusqa/internal/service"
	"campusqa/internal/translate"
)

// Backend is the slice of the query service the HTTP layer needs.
type Backend interface {
	Answer(ctx context.Context, query, language string) (string, error)
	Health() service.Health
}

// Server serves the REST API.
type Server struct {
	backend Backend
	log     zerolog.Logger
	router  *mux.Router
}

func NewServer(backend Backend, log zerolog.Logger) *Server {
	s := &Server{backend: backend, log: log, router: mux.NewRouter()}
	s.router.Use(s.logRequests)
	s.router.HandleFunc("/api/query", s.handleQuery).Methods(http.MethodPost)
	s.router.HandleFunc("/api/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/api/languages", s.handleLanguages).Methods(http.MethodGet)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type queryRequest struct {
	Query    string `json:"query"`
	Language string `json:"language,omitempty"`
}

type queryResponse struct {
	Response string `json:"response"`
	Language string `json:"language,omitempty"`
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, queryResponse{Response: "Invalid request body."})
		return
	}
	answer, err := s.backend.Answer(r.Context(), req.Query, req.Language)
	if err != nil {
		if errors.Is(err, service.ErrEmptyQuery) {
			writeJSON(w, http.StatusOK, queryResponse{Response: "Please ask a question."})
			return
		}
		s.log.Error().Err(err).Str("query", req.Query).Msg("query failed")
		writeJSON(w, http.StatusServiceUnavailable, queryResponse{
			Response: "I'm having trouble answering right now. Please try again in a moment.",
		})
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{Response: answer, Language: req.Language})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := s.backend.Health()
	status := http.StatusOK
	if !h.IndexLoaded {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, h)
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"languages": translate.SupportedLanguages()})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
