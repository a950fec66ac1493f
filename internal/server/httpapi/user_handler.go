package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	Password string `json:"password"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, common.NewValidationError("body"))
		return
	}

	user, err := s.users.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, idResponse{ID: user.ID})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, common.NewValidationError("body"))
		return
	}

	result, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	// Token responses must never land in shared caches.
	w.Header().Set("Cache-Control", "no-store")
	s.respondJSON(w, r, http.StatusOK, result)
}

// updatePassword requires the path user id to match the session subject;
// acting on another user's row is an authorization failure even with a
// valid token.
func (s *Server) updatePassword(w http.ResponseWriter, r *http.Request) {
	pathUserID := chi.URLParam(r, "user_id")
	if _, err := uuid.Parse(pathUserID); err != nil {
		s.respondError(w, r, common.NewValidationError("user_id"))
		return
	}

	userID, ok := callerID(r)
	if !ok || userID != pathUserID {
		s.respondError(w, r, common.ErrorUnauthorized)
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, common.NewValidationError("body"))
		return
	}

	if err := s.users.UpdatePassword(r.Context(), userID, req.Password); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, r, http.StatusOK, nil)
}
