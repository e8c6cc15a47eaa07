package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/feedlab/snsbox/internal/domain"
)

type createPostRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=140"`
	ImageURL string `json:"imageUrl" validate:"omitempty,max=2048"`
}

// handleGetPosts returns one timeline page, newest first. A missing or
// malformed page parameter means page 1.
func (s *Server) handleGetPosts(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			page = parsed
		}
	}

	writeJSON(w, http.StatusOK, s.store.GetPage(page, pageSize))
}

// handleCreatePost creates a post authored by the local user. Text is
// trimmed before the 1-140 length check.
func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest, "Invalid JSON")
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest, "text must be 1..140 chars")
		return
	}

	author, err := s.store.FindUser(domain.LocalUserID)
	if err != nil {
		author = domain.DefaultLocalUser()
	}

	post := s.store.AddPost(author, req.Text, req.ImageURL)
	writeJSON(w, http.StatusCreated, post)
}

// handleToggleLike flips the local user's like on a post.
func (s *Server) handleToggleLike(w http.ResponseWriter, r *http.Request) {
	post, err := s.store.ToggleLike(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, domain.CodeNotFound, "post not found")
		return
	}
	writeJSON(w, http.StatusOK, post)
}
