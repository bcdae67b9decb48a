// Package server exposes the formatting engine over HTTP. The engine itself
// stays pure; this layer handles transport, persistence, and error mapping.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"threadstorm/internal/config"
	"threadstorm/internal/engine"
	"threadstorm/internal/store"
)

var validate = validator.New()

// Server is the HTTP API for formatting and browsing threadstorms.
type Server struct {
	cfg   *config.Config
	store *store.Store
	http  *http.Server
}

// New creates a server with its routes registered.
func New(cfg *config.Config, st *store.Store) *Server {
	s := &Server{
		cfg:   cfg,
		store: st,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /api/format", s.handleFormat)
	mux.HandleFunc("GET /api/threadstorms", s.handleList)
	mux.HandleFunc("GET /api/threadstorms/{id}", s.handleGet)

	s.http = &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// Handler returns the route handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run serves until the context is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// FormatRequest is the POST /api/format body. Unset option fields fall back
// to the server's configured defaults.
type FormatRequest struct {
	Content          string  `json:"content" validate:"required"`
	MaxCharsPerPost  *int    `json:"max_chars_per_post,omitempty"`
	Tone             *string `json:"tone,omitempty"`
	IncludeNumbering *bool   `json:"include_numbering,omitempty"`
	EnableHook       *bool   `json:"enable_hook,omitempty"`
	EnableCTA        *bool   `json:"enable_cta,omitempty"`
	ImageRhythm      *int    `json:"image_rhythm,omitempty"`
	Save             bool    `json:"save,omitempty"`
}

// FormatResponse wraps the engine result, plus the record ID when saved.
type FormatResponse struct {
	ID          string              `json:"id,omitempty"`
	Threadstorm *engine.Threadstorm `json:"threadstorm"`
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req FormatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := s.options(req)
	ts, err := engine.Format(engine.Draft{RawContent: req.Content, Options: opts})
	if err != nil {
		status, msg := mapEngineError(err)
		writeError(w, status, msg)
		return
	}

	resp := FormatResponse{Threadstorm: ts}
	if req.Save && s.store != nil {
		rec, err := s.store.SaveThreadstorm(r.Context(), string(opts.Tone), ts)
		if err != nil {
			slog.Error("failed to save threadstorm", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save threadstorm")
			return
		}
		resp.ID = rec.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	records, err := s.store.ListThreadstorms(r.Context(), limit)
	if err != nil {
		slog.Error("failed to list threadstorms", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list threadstorms")
		return
	}
	if records == nil {
		records = []*store.Record{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"threadstorms": records})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetThreadstorm(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "threadstorm not found")
		return
	}
	if err != nil {
		slog.Error("failed to get threadstorm", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get threadstorm")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// options merges request overrides onto the configured defaults.
func (s *Server) options(req FormatRequest) engine.FormattingOptions {
	opts := s.cfg.EngineOptions()
	if req.MaxCharsPerPost != nil {
		opts.MaxCharsPerPost = *req.MaxCharsPerPost
	}
	if req.Tone != nil {
		opts.Tone = engine.Tone(*req.Tone)
	}
	if req.IncludeNumbering != nil {
		opts.IncludeNumbering = *req.IncludeNumbering
	}
	if req.EnableHook != nil {
		opts.EnableHook = *req.EnableHook
	}
	if req.EnableCTA != nil {
		opts.EnableCTA = *req.EnableCTA
	}
	if req.ImageRhythm != nil {
		opts.ImageRhythm = *req.ImageRhythm
	}
	return opts
}

// mapEngineError translates typed engine errors to HTTP statuses. All of
// them are deterministic caller errors, never retryable server faults.
func mapEngineError(err error) (int, string) {
	var cfgErr *engine.ConfigurationError
	var overflowErr *engine.PackingOverflowError
	switch {
	case errors.Is(err, engine.ErrEmptyContent):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &overflowErr):
		return http.StatusUnprocessableEntity, err.Error()
	default:
		return http.StatusInternalServerError, "formatting failed"
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
