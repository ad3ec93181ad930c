// Package session keeps per-user browsing state: the active query, its raw
// results and the filters applied to them.
//
// Each query a session begins is stamped with a generation. Results are
// applied only when they carry the current generation, so a slow response
// for a superseded query can never overwrite a newer one.
package session

import (
	"sync"
	"time"

	"github.com/alex-user-go/tripsearch/internal/obs"
	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

// Ticket identifies the query a fetch was started for.
type Ticket struct {
	SessionID  string
	Generation uint64
	Query      types.SearchQuery
}

// Session is one user's browsing state. It is safe for concurrent use.
type Session struct {
	id      string
	metrics *obs.Metrics

	mu         sync.Mutex
	query      types.SearchQuery
	generation uint64
	results    *types.ResultSet
	filters    types.FilterState
	loading    bool
	lastUsed   time.Time
}

func newSession(id string, metrics *obs.Metrics) *Session {
	return &Session{
		id:       id,
		metrics:  metrics,
		query:    types.DefaultQuery(),
		filters:  types.DefaultFilters(),
		lastUsed: time.Now(),
	}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Begin makes q the active query. Filters reset to defaults and the previous
// results are dropped.
func (s *Session) Begin(q types.SearchQuery) Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.query = q
	s.results = nil
	s.filters = types.DefaultFilters()
	s.loading = true
	s.lastUsed = time.Now()

	return Ticket{SessionID: s.id, Generation: s.generation, Query: q}
}

// Deliver applies rs if t still names the active query and reports whether
// it did. Stale deliveries are discarded.
func (s *Session) Deliver(t Ticket, rs *types.ResultSet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.SessionID != s.id || t.Generation != s.generation {
		s.metrics.IncStaleDiscarded()
		return false
	}
	s.results = rs
	s.loading = false
	return true
}

// SetFilters replaces the filter state.
func (s *Session) SetFilters(f types.FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.lastUsed = time.Now()
}

// PatchFilters applies p to the current filters. On error they are unchanged.
func (s *Session) PatchFilters(p search.FilterPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := p.Apply(s.filters)
	if err != nil {
		return err
	}
	s.filters = f
	s.lastUsed = time.Now()
	return nil
}

// View is a snapshot of a session as the presenter sees it.
type View struct {
	ID         string
	Generation uint64
	Query      types.SearchQuery
	Filters    types.FilterState
	Results    []types.DisplayResult
	Facets     search.Facets
	Total      int
	Origin     types.Origin
	Loading    bool
}

// View runs the filter engine over the current results.
func (s *Session) View() View {
	s.mu.Lock()
	rs, f := s.results, s.filters
	v := View{
		ID:         s.id,
		Generation: s.generation,
		Query:      s.query,
		Filters:    f,
		Loading:    s.loading,
	}
	s.mu.Unlock()

	if rs != nil {
		v.Total = rs.Len()
		v.Origin = rs.Origin
	}
	v.Results = search.Apply(rs, f)
	v.Facets = search.CountFacets(rs)
	return v
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastUsed = time.Now()
	s.mu.Unlock()
}
