// Package server exposes the authoring stores over a JSON HTTP API. An
// explicit HTTP call is taken as the confirmation for destructive session
// operations, so the embedded manager runs with an always-affirmative
// confirm port.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fablesmith/mythosforge/internal/audio"
	"github.com/fablesmith/mythosforge/internal/session"
	"github.com/fablesmith/mythosforge/pkg/models"
)

type Server struct {
	log    *slog.Logger
	router *chi.Mux

	// The manager is single-goroutine by contract; all handler access is
	// serialized through mu.
	mu  sync.Mutex
	mgr *session.Manager
}

func New(mgr *session.Manager, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}

	s := &Server{mgr: mgr, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/sessions", s.handleListSessions)
		r.Post("/sessions", s.handleSaveSession)
		r.Post("/sessions/{id}/load", s.handleLoadSession)
		r.Delete("/sessions/{id}", s.handleDeleteSession)

		r.Get("/elements", s.handleListElements)
		r.Post("/elements", s.handleAddElement)
		r.Delete("/elements/{id}", s.handleRemoveElement)

		r.Get("/context", s.handleContext)
		r.Post("/audio/wav", s.handleExportWAV)
	})

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until the context is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snapshots, err := s.mgr.Sessions(r.Context())
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snapshots)
}

func (s *Server) handleSaveSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.mu.Lock()
	snap, err := s.mgr.SaveSession(r.Context(), req.Name)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleLoadSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	err := s.mgr.LoadSession(r.Context(), id)
	s.mu.Unlock()
	if errors.Is(err, session.ErrSessionNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	err := s.mgr.DeleteSession(r.Context(), id)
	s.mu.Unlock()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListElements(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	els := s.mgr.Registry.Elements()
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, els)
}

func (s *Server) handleAddElement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type        models.Mode `json:"type"`
		Name        string      `json:"name"`
		Description string      `json:"description"`
		ImageURL    string      `json:"imageUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Name == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	s.mu.Lock()
	el := s.mgr.Registry.Add(req.Type, req.Name, req.Description, req.ImageURL)
	s.mu.Unlock()
	s.writeJSON(w, http.StatusCreated, el)
}

func (s *Server) handleRemoveElement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	s.mgr.Registry.Remove(id)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleContext(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	block := s.mgr.Registry.BuildContext()
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, map[string]string{"context": block})
}

// handleExportWAV wraps a base64 PCM payload in a WAV container and streams
// the file back.
func (s *Server) handleExportWAV(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Payload    string `json:"payload"`
		SampleRate int    `json:"sampleRate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.SampleRate <= 0 {
		req.SampleRate = audio.SampleRate
	}

	pcm, err := audio.DecodePCM(req.Payload)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio.WrapPCM(pcm, req.SampleRate)); err != nil {
		s.log.Warn("wav response write failed", "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= 500 {
		s.log.Error("request failed", "status", status, "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
