package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
)

type idResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error string   `json:"error"`
	Tags  []string `json:"tags,omitempty"`
}

func (s *Server) respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error(r.Context(), "error encoding response", "error", err.Error())
	}
}

// respondError maps an error from the service layer onto an HTTP status
// and a structured body. Infrastructure failures stay opaque to the
// caller and are logged here.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *common.ValidationError
	var tagsErr *common.TagsStillUsedError

	switch {
	case errors.As(err, &validationErr):
		s.respondJSON(w, r, http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired):
		s.respondJSON(w, r, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
	case errors.Is(err, common.ErrorNotFound):
		s.respondJSON(w, r, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.As(err, &tagsErr):
		s.respondJSON(w, r, http.StatusConflict, errorResponse{Error: tagsErr.Error(), Tags: tagsErr.Tags})
	case errors.Is(err, common.ErrorAlreadyExists):
		s.respondJSON(w, r, http.StatusConflict, errorResponse{Error: "already exists"})
	case errors.Is(err, common.ErrEventTypeInUse):
		s.respondJSON(w, r, http.StatusConflict, errorResponse{Error: common.ErrEventTypeInUse.Error()})
	case errors.Is(err, common.ErrEventTypeValidation):
		s.respondJSON(w, r, http.StatusUnprocessableEntity, errorResponse{Error: common.ErrEventTypeValidation.Error()})
	default:
		s.logger.Error(r.Context(), "request failed", "error", err.Error())
		s.respondJSON(w, r, http.StatusInternalServerError, errorResponse{Error: "could not process request"})
	}
}
