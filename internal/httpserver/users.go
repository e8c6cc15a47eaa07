package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/feedlab/snsbox/internal/domain"
)

type patchMeRequest struct {
	DisplayName string `json:"displayName" validate:"required,min=1,max=40"`
	AvatarURL   string `json:"avatarUrl" validate:"omitempty,max=2048"`
}

// handleGetMe returns the local user, creating the default one on first
// use.
func (s *Server) handleGetMe(w http.ResponseWriter, _ *http.Request) {
	me, err := s.store.FindUser(domain.LocalUserID)
	if err != nil {
		me = domain.DefaultLocalUser()
		s.store.UpsertUser(me)
	}
	writeJSON(w, http.StatusOK, me)
}

// handlePatchMe updates the local user's display name and avatar.
func (s *Server) handlePatchMe(w http.ResponseWriter, r *http.Request) {
	var req patchMeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest, "Invalid JSON")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, domain.CodeBadRequest, "displayName must be 1..40 chars")
		return
	}

	me, err := s.store.FindUser(domain.LocalUserID)
	if err != nil {
		me = domain.DefaultLocalUser()
	}
	me.DisplayName = req.DisplayName
	me.AvatarURL = req.AvatarURL
	s.store.UpsertUser(me)

	writeJSON(w, http.StatusOK, me)
}
