package search

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/alex-user-go/tripsearch/internal/search/types"
)

// entry caches the derived keys of one listing for a single Apply call.
type entry struct {
	result types.RawResult

	name  string
	title string

	price    float64
	hasPrice bool

	reviews    float64
	hasReviews bool

	rating float64
	stars  int
	rated  bool
}

func newEntry(r types.RawResult, fold cases.Caser) entry {
	e := entry{
		result: r,
		name:   fold.String(r.Name()),
		title:  fold.String(r.Title),
	}
	e.price, e.hasPrice = Price(r)
	e.reviews, e.hasReviews = ReviewCount(r)
	e.stars, e.rated = StarCount(r)
	if e.rated {
		e.rating = *r.Rating
	}
	return e
}

// Apply filters and orders rs according to f. It never modifies its inputs
// and keeps no state, so it is safe for concurrent use. A nil or empty set
// yields an empty listing.
func Apply(rs *types.ResultSet, f types.FilterState) []types.DisplayResult {
	if rs.Len() == 0 {
		return []types.DisplayResult{}
	}

	// Casers carry state and are not safe to share between goroutines.
	fold := cases.Fold()
	query := fold.String(f.HotelName)

	entries := make([]entry, 0, rs.Len())
	for _, r := range rs.Results {
		e := newEntry(r, fold)
		if !matchName(query, e) || !matchStars(f.StarRating, e) || !matchReviews(f.MemberReviews, e) {
			continue
		}
		entries = append(entries, e)
	}

	slices.SortStableFunc(entries, comparator(f.SortBy))

	out := make([]types.DisplayResult, len(entries))
	for i, e := range entries {
		out[i] = types.DisplayResult{Rank: i + 1, RawResult: e.result}
	}
	return out
}

func matchName(query string, e entry) bool {
	if query == "" {
		return true
	}
	return strings.Contains(e.name, query) || strings.Contains(e.title, query)
}

func matchStars(b types.StarBucket, e entry) bool {
	if b == types.NotRated {
		return !e.rated
	}
	if n := b.Stars(); n > 0 {
		return e.rated && e.stars == n
	}
	return true
}

func matchReviews(b types.ReviewBucket, e entry) bool {
	if b == types.NotReviewed {
		return !e.rated
	}
	if n := b.Stars(); n > 0 {
		return e.rated && e.stars == n
	}
	return true
}

// comparator returns the ordering for sortBy. Unknown values order by
// ascending price.
func comparator(sortBy types.SortBy) func(a, b entry) int {
	switch sortBy {
	case types.SortPriceHigh:
		return func(a, b entry) int {
			return missingLast(a.price, a.hasPrice, b.price, b.hasPrice, true)
		}
	case types.SortMemberReviews:
		return func(a, b entry) int {
			return missingLast(a.reviews, a.hasReviews, b.reviews, b.hasReviews, true)
		}
	case types.SortStarRating:
		return func(a, b entry) int {
			return missingLast(a.rating, a.rated, b.rating, b.rated, true)
		}
	case types.SortNameAZ:
		return func(a, b entry) int {
			return cmp.Compare(a.name, b.name)
		}
	case types.SortNameZA:
		return func(a, b entry) int {
			return cmp.Compare(b.name, a.name)
		}
	default:
		return func(a, b entry) int {
			return missingLast(a.price, a.hasPrice, b.price, b.hasPrice, false)
		}
	}
}

// missingLast orders present keys before absent ones in either direction.
func missingLast(a float64, okA bool, b float64, okB bool, desc bool) int {
	switch {
	case okA && okB:
		if desc {
			return cmp.Compare(b, a)
		}
		return cmp.Compare(a, b)
	case okA:
		return -1
	case okB:
		return 1
	}
	return 0
}

// Facets counts the unfiltered listing per filter bucket, for labels such
// as "5 Star (7)".
type Facets struct {
	MemberReviews map[types.ReviewBucket]int `json:"memberReviews"`
	StarRating    map[types.StarBucket]int   `json:"starRating"`
}

// CountFacets computes Facets for rs.
func CountFacets(rs *types.ResultSet) Facets {
	f := Facets{
		MemberReviews: map[types.ReviewBucket]int{types.ReviewsAll: rs.Len()},
		StarRating:    map[types.StarBucket]int{types.StarsAll: rs.Len()},
	}
	if rs.Len() == 0 {
		return f
	}
	for _, r := range rs.Results {
		stars, rated := StarCount(r)
		if !rated {
			f.MemberReviews[types.NotReviewed]++
			f.StarRating[types.NotRated]++
			continue
		}
		for _, b := range []types.ReviewBucket{types.Reviews5, types.Reviews4, types.Reviews3} {
			if b.Stars() == stars {
				f.MemberReviews[b]++
			}
		}
		for _, b := range []types.StarBucket{types.Stars5, types.Stars4, types.Stars3, types.Stars2} {
			if b.Stars() == stars {
				f.StarRating[b]++
			}
		}
	}
	return f
}
