package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/journalkeeper/internal/common"
	"github.com/dmitrijs2005/journalkeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type eventTypeRequest struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

type newJournalEntryRequest struct {
	EventTypeID string     `json:"event_type_id"`
	Description *string    `json:"description"`
	Tags        []string   `json:"tags"`
	CreatedAt   *time.Time `json:"created_at"`
}

type journalEntryUpdateRequest struct {
	Description *string  `json:"description"`
	Tags        []string `json:"tags"`
}

// pathID extracts and validates the {id} path parameter. Malformed ids are
// rejected before they ever reach the database.
func pathID(r *http.Request) (string, error) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", common.NewValidationError("id")
	}
	return id, nil
}

// --- event types ---

func (s *Server) listEventTypes(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		s.respondError(w, r, common.ErrorUnauthorized)
		return
	}

	result, err := s.journal.FindAllEventTypes(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if result == nil {
		result = []*models.EventType{}
	}
	s.respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) getEventType(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		s.respondError(w, r, common.ErrorUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	et, err := s.journal.FindEventTypeByID(r.Context(), userID, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, et)
}

func (s *Server) createEventType(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		s.respondError(w, r, common.ErrorUnauthorized)
		return
	}

	var req eventTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, common.NewValidationError("body"))
		return
	}

	id, err := s.journal.CreateEventType(r.Context(), userID, req.Name, req.Tags)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, idResponse{ID: id})
}

func (s *Server) updateEventType(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		s.respondError(w, r, common.ErrorUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req eventTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, common.NewValidationError("body"))
		return
	}

	if err := s.journal.UpdateEventType(r.Context(), userID, id, req.Name, req.Tags); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, nil)
}

func (s *Server) deleteEventType(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		s.respondError(w, r, common.ErrorUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.journal.DeleteEventType(r.Context(), userID, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, nil)
}

// --- journal entries ---

func (s *Server) getJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		s.respondError(w, r, common.ErrorUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	entry, err := s.journal.FindJournalEntryByID(r.Context(), userID, id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, entry)
}

func (s *Server) searchJournalEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		s.respondError(w, r, common.ErrorUnauthorized)
		return
	}

	filter, err := parseSearchFilter(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	result, err := s.journal.FindJournalEntries(r.Context(), userID, filter)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if result == nil {
		result = []*models.JournalEntry{}
	}
	s.respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) createJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		s.respondError(w, r, common.ErrorUnauthorized)
		return
	}

	var req newJournalEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, common.NewValidationError("body"))
		return
	}
	if _, err := uuid.Parse(req.EventTypeID); err != nil {
		s.respondError(w, r, common.NewValidationError("event_type_id"))
		return
	}

	id, err := s.journal.CreateJournalEntry(r.Context(), userID, req.EventTypeID, req.Description, req.Tags, req.CreatedAt)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, idResponse{ID: id})
}

func (s *Server) updateJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		s.respondError(w, r, common.ErrorUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	var req journalEntryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, r, common.NewValidationError("body"))
		return
	}

	if err := s.journal.UpdateJournalEntry(r.Context(), userID, id, req.Description, req.Tags); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, nil)
}

func (s *Server) deleteJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		s.respondError(w, r, common.ErrorUnauthorized)
		return
	}
	id, err := pathID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.journal.DeleteJournalEntry(r.Context(), userID, id); err != nil {
		s.respondError(w, r, err)
		return
	}
	s.respondJSON(w, r, http.StatusOK, nil)
}

// parseSearchFilter builds a models.SearchFilter from query parameters:
// event_type_id, tags (repeatable), after, before (RFC 3339), sort
// (asc/desc), offset, limit.
func parseSearchFilter(r *http.Request) (*models.SearchFilter, error) {
	q := r.URL.Query()
	filter := &models.SearchFilter{}

	if v := q.Get("event_type_id"); v != "" {
		if _, err := uuid.Parse(v); err != nil {
			return nil, common.NewValidationError("event_type_id")
		}
		filter.EventTypeID = v
	}

	for _, tag := range q["tags"] {
		if strings.TrimSpace(tag) == "" {
			return nil, common.NewValidationError("tags")
		}
	}
	filter.Tags = q["tags"]

	if v := q.Get("after"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, common.NewValidationError("after")
		}
		filter.After = &t
	}
	if v := q.Get("before"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, common.NewValidationError("before")
		}
		filter.Before = &t
	}

	if v := q.Get("sort"); v != "" {
		switch strings.ToUpper(v) {
		case string(models.SortAsc):
			sort := models.SortAsc
			filter.Sort = &sort
		case string(models.SortDesc):
			sort := models.SortDesc
			filter.Sort = &sort
		default:
			return nil, common.NewValidationError("sort")
		}
	}

	if v := q.Get("offset"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, common.NewValidationError("offset")
		}
		offset := uint32(n)
		filter.Offset = &offset
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, common.NewValidationError("limit")
		}
		limit := uint32(n)
		filter.Limit = &limit
	}

	return filter, nil
}
