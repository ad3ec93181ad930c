package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/alex-user-go/tripsearch/internal/middleware"
	"github.com/alex-user-go/tripsearch/internal/querycodec"
	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

// SearchResponse is the displayed listing for one query.
type SearchResponse struct {
	Search  map[string]string     `json:"search"`
	Filters types.FilterState     `json:"filters"`
	Stats   SearchStats           `json:"stats"`
	Facets  search.Facets         `json:"facets"`
	Results []types.DisplayResult `json:"results"`
}

// SearchStats describes how the listing was obtained.
type SearchStats struct {
	Origin     types.Origin `json:"origin"`
	Total      int          `json:"total"`
	Shown      int          `json:"shown"`
	Notice     string       `json:"notice,omitempty"`
	DurationMs int64        `json:"duration_ms"`
}

// SearchHandler handles GET /search. The query string carries the encoded
// query, optional filters and an optional embedded result set. Malformed
// input never fails the request.
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	values := r.URL.Query()

	q := querycodec.Decode(values)
	rs := h.source.Fetch(r.Context(), q, h.embedded(r, values))
	filters := search.ParseFilterState(values)
	results := search.Apply(rs, filters)

	h.writeJSON(w, r, http.StatusOK, SearchResponse{
		Search:  querycodec.Record(q),
		Filters: filters,
		Stats: SearchStats{
			Origin:     rs.Origin,
			Total:      rs.Len(),
			Shown:      len(results),
			Notice:     notice(q),
			DurationMs: time.Since(start).Milliseconds(),
		},
		Facets:  search.CountFacets(rs),
		Results: results,
	})
}

// embedded returns the result set carried in the query string, if any.
// A malformed one is logged and ignored.
func (h *Handler) embedded(r *http.Request, values url.Values) *types.ResultSet {
	rs, ok, err := querycodec.DecodeEmbedded(values)
	if err != nil {
		h.logger.Warn("ignoring malformed embedded results", "request_id", requestID(r), "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	return rs
}

// notice explains why a query is not searchable. The query still runs.
func notice(q types.SearchQuery) string {
	if err := q.Validate(); err != nil {
		return err.Error()
	}
	return ""
}

func requestID(r *http.Request) string {
	return middleware.RequestID(r.Context())
}
