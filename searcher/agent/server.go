package agent

import (
	"encoding/json"
	"errors"
	"net/http"

	"cascade/game"
	"cascade/searcher"

	"github.com/rs/zerolog/log"
)

// Server exposes an Agent over HTTP at POST /findmove.
type Server struct {
	agent Agent
	mux   *http.ServeMux
}

func NewServer(a Agent) *Server {
	s := &Server{agent: a}
	// Local mux rather than the global DefaultServeMux
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("/findmove", s.handleFindMove)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Info().Msgf("starting agent server on %s", addr)
	return http.ListenAndServe(addr, s.mux)
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var snapshot game.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	gs, err := game.FromSnapshot(snapshot)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}

	decision, metric, err := s.agent.FindMove(r.Context(), gs)
	switch {
	case errors.Is(err, searcher.ErrGameOver):
		http.Error(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		log.Error().Err(err).Msg("agent failed to find a move")
		http.Error(w, "failed to find move: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Forced outcomes are scored ±Inf, which JSON cannot carry
	decision.Candidates = nil

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(FindMoveResponse{Decision: decision, Metric: metric}); err != nil {
		http.Error(w, "failed to encode move: "+err.Error(), http.StatusInternalServerError)
	}
}
