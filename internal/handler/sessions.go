package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/alex-user-go/tripsearch/internal/querycodec"
	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/types"
	"github.com/alex-user-go/tripsearch/internal/session"
)

// SessionResponse renders a session view.
type SessionResponse struct {
	ID         string                `json:"id"`
	Generation uint64                `json:"generation"`
	Search     map[string]string     `json:"search"`
	Filters    types.FilterState     `json:"filters"`
	Loading    bool                  `json:"loading"`
	Origin     types.Origin          `json:"origin,omitempty"`
	Total      int                   `json:"total"`
	Facets     search.Facets         `json:"facets"`
	Results    []types.DisplayResult `json:"results"`
}

func newSessionResponse(v session.View) SessionResponse {
	return SessionResponse{
		ID:         v.ID,
		Generation: v.Generation,
		Search:     querycodec.Record(v.Query),
		Filters:    v.Filters,
		Loading:    v.Loading,
		Origin:     v.Origin,
		Total:      v.Total,
		Facets:     v.Facets,
		Results:    v.Results,
	}
}

// CreateSessionHandler handles POST /sessions.
func (h *Handler) CreateSessionHandler(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	h.logger.Info("session created", "request_id", requestID(r), "session_id", s.ID())
	h.writeJSON(w, r, http.StatusCreated, newSessionResponse(s.View()))
}

// GetSessionHandler handles GET /sessions/{id}.
func (h *Handler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeJSON(w, r, http.StatusOK, newSessionResponse(s.View()))
}

// DeleteSessionHandler handles DELETE /sessions/{id}.
func (h *Handler) DeleteSessionHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(r.PathValue("id")); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SessionQueryHandler handles PUT /sessions/{id}/query. The encoded query is
// read from the URL query string. The response is the session as it stands
// once this fetch is applied or discarded: if a newer query superseded this
// one meanwhile, the newer query's state is returned.
func (h *Handler) SessionQueryHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	values := r.URL.Query()
	ticket := s.Begin(querycodec.Decode(values))
	rs := h.source.Fetch(r.Context(), ticket.Query, h.embedded(r, values))
	if !s.Deliver(ticket, rs) {
		h.logger.Info("discarded results for superseded query",
			"request_id", requestID(r),
			"session_id", s.ID(),
			"generation", ticket.Generation,
		)
	}

	h.writeJSON(w, r, http.StatusOK, newSessionResponse(s.View()))
}

// SessionFiltersHandler handles PATCH /sessions/{id}/filters.
func (h *Handler) SessionFiltersHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var patch search.FilterPatch
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter body")
		return
	}
	if err := s.PatchFilters(patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.writeJSON(w, r, http.StatusOK, newSessionResponse(s.View()))
}

// ReplaceFiltersHandler handles PUT /sessions/{id}/filters. Fields left out
// of the body take their defaults.
func (h *Handler) ReplaceFiltersHandler(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var patch search.FilterPatch
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter body")
		return
	}
	f, err := patch.Apply(types.DefaultFilters())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.SetFilters(f)

	h.writeJSON(w, r, http.StatusOK, newSessionResponse(s.View()))
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	s, err := h.sessions.Get(r.PathValue("id"))
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "session lookup failed")
		return nil, false
	}
	return s, true
}
