package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/feedlab/snsbox/internal/domain"
)

type faultsRequest struct {
	LatencyMs int  `json:"latencyMs" validate:"min=0,max=2000"`
	RateLimit bool `json:"rateLimit"`
	ErrorRate int  `json:"errorRate" validate:"min=0,max=100"`
}

type spawnRequest struct {
	AuthorID string `json:"authorId"`
	Text     string `json:"text" validate:"required,min=1,max=140"`
	ImageURL string `json:"imageUrl" validate:"omitempty,max=2048"`
}

// handleSeed loads the configured seed document into the store. A
// missing or corrupt seed leaves the store untouched.
func (s *Server) handleSeed(w http.ResponseWriter, _ *http.Request) {
	if err := s.store.Seed(s.cfg.SeedPath); err != nil {
		s.logger.Error("seed failed", "path", s.cfg.SeedPath, "error", err)
		writeError(w, http.StatusInternalServerError, domain.CodeServerError, "seed failed")
		return
	}
	s.logger.Info("seed applied", "path", s.cfg.SeedPath)
	s.hub.Publish("seed", nil)
	w.WriteHeader(http.StatusOK)
}

// handleReset discards all posts and restores the default local user.
func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.store.Reset()
	s.logger.Info("store reset")
	s.hub.Publish("reset", nil)
	w.WriteHeader(http.StatusOK)
}

// handleGetFaults reports the active fault configuration.
func (s *Server) handleGetFaults(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.faults.Current())
}

// handleSetFaults validates and applies a new fault configuration.
// Out-of-range values are rejected before the controller sees them.
func (s *Server) handleSetFaults(w http.ResponseWriter, r *http.Request) {
	var req faultsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest, "Invalid JSON")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest, "invalid fault values")
		return
	}

	state := domain.FaultState{
		LatencyMs: req.LatencyMs,
		RateLimit: req.RateLimit,
		ErrorRate: req.ErrorRate,
	}
	s.faults.Update(state)
	s.logger.Info("fault state updated",
		"latency_ms", state.LatencyMs,
		"rate_limit", state.RateLimit,
		"error_rate", state.ErrorRate,
	)
	s.hub.Publish("faults", state)
	w.WriteHeader(http.StatusOK)
}

// handleSpawn creates a post on behalf of an existing user.
func (s *Server) handleSpawn(w http.ResponseWriter, r *http.Request) {
	var req spawnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest, "Invalid JSON")
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest, "text must be 1..140 chars")
		return
	}

	author, err := s.store.FindUser(req.AuthorID)
	if err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest, "author not found")
		return
	}

	post := s.store.AddPost(author, req.Text, req.ImageURL)
	s.logger.Info("spawned post", "post_id", post.ID, "author_id", author.ID)
	s.hub.Publish("spawn", post)
	writeJSON(w, http.StatusCreated, post)
}
