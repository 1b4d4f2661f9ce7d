// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes trip planning over HTTP. Planning is
// synchronous: the plan endpoint answers with the finished itinerary,
// and the status endpoint serves stored sessions afterwards.
//
// Implements: prd008-http (R1-R4); docs/ARCHITECTURE § HTTP Surface.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pdiddy/trip-engine/internal/store"
	"github.com/pdiddy/trip-engine/pkg/types"
)

// toolNames lists the planning capabilities reported by /api/tools.
var toolNames = []string{
	"flight_search",
	"hotel_search",
	"attraction_search",
	"restaurant_search",
	"weather_info",
	"currency_converter",
}

// Planner builds an itinerary for one trip request.
type Planner interface {
	Build(ctx context.Context, req types.TripRequest) (*types.Itinerary, error)
}

// SessionStore persists planning sessions.
type SessionStore interface {
	CreateSession(req types.TripRequest) (string, error)
	UpdateItinerary(sessionID string, it *types.Itinerary) error
	UpdateError(sessionID, message string) error
	GetSession(sessionID string) (*types.Session, error)
}

// Server wires the planner and session store to the HTTP mux.
type Server struct {
	planner  Planner
	sessions SessionStore
	cfg      types.ServerConfig
	logger   *slog.Logger
}

// New builds a Server, applying the documented config defaults.
func New(planner Planner, sessions SessionStore, cfg types.ServerConfig, logger *slog.Logger) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8000"
	}
	if cfg.PlanTimeout <= 0 {
		cfg.PlanTimeout = 90 * time.Second
	}
	return &Server{planner: planner, sessions: sessions, cfg: cfg, logger: logger}
}

// Routes returns the full handler with logging middleware applied.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/plan-trip", s.handlePlanTrip)
	mux.HandleFunc("GET /api/trip-status/{id}", s.handleTripStatus)
	mux.HandleFunc("GET /api/debug-session/{id}", s.handleDebugSession)
	mux.HandleFunc("GET /api/tools", s.handleTools)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return logging(s.logger)(mux)
}

// ListenAndServe runs the server until the context is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.Routes(),
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	s.logger.Info("listening", "addr", s.cfg.Addr)
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handlePlanTrip(w http.ResponseWriter, r *http.Request) {
	var req types.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sessionID, err := s.sessions.CreateSession(req)
	if err != nil {
		s.logger.Error("creating session", "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	ctx := r.Context()
	if s.cfg.PlanTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.PlanTimeout)
		defer cancel()
	}

	it, err := s.planner.Build(ctx, req)
	if err != nil {
		s.logger.Error("planning failed", "session_id", sessionID, "err", err)
		if updateErr := s.sessions.UpdateError(sessionID, err.Error()); updateErr != nil {
			s.logger.Error("recording failure", "session_id", sessionID, "err", updateErr)
		}
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("trip planning failed: %v", err))
		return
	}

	if err := s.sessions.UpdateItinerary(sessionID, it); err != nil {
		s.logger.Error("storing itinerary", "session_id", sessionID, "err", err)
	}

	s.writeJSON(w, http.StatusOK, types.TripResponse{
		SessionID: sessionID,
		Status:    types.SessionCompleted,
		Itinerary: it,
		TotalCost: it.TotalCost,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleTripStatus(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	sess, err := s.sessions.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "session not found")
			return
		}
		s.logger.Error("loading session", "session_id", sessionID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	resp := types.TripResponse{
		SessionID:    sess.SessionID,
		Status:       sess.Status,
		ErrorMessage: sess.ErrorMessage,
		CreatedAt:    sess.CreatedAt.UTC().Format(time.RFC3339),
	}
	if sess.Status == types.SessionCompleted && sess.Itinerary != nil {
		resp.Itinerary = sess.Itinerary
		resp.TotalCost = sess.Itinerary.TotalCost
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleDebugSession serves the stored session document as-is, including
// the request and any recorded error. trip-status stays the shaped
// response; this endpoint exists for poking at what was actually stored.
func (s *Server) handleDebugSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	sess, err := s.sessions.GetSession(sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "session not found")
			return
		}
		s.logger.Error("loading session", "session_id", sessionID, "err", err)
		s.writeError(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleTools(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"tools": toolNames})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message": "trip-engine API is running",
		"status":  "healthy",
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}
