package search

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/alex-user-go/tripsearch/internal/search/types"
)

// Filter parameter names.
const (
	ParamSortBy        = "sortBy"
	ParamMemberReviews = "memberReviews"
	ParamStarRating    = "starRating"
	ParamHotelName     = "hotelName"
)

// ErrInvalidFilter is returned for filter tokens outside their vocabulary.
var ErrInvalidFilter = errors.New("invalid filter")

// ParseFilterState reads filters from query parameters. Missing or unknown
// tokens keep their defaults.
func ParseFilterState(v url.Values) types.FilterState {
	f := types.DefaultFilters()
	if s, ok := types.ParseSortBy(strings.TrimSpace(v.Get(ParamSortBy))); ok {
		f.SortBy = s
	}
	if b, ok := types.ParseReviewBucket(strings.TrimSpace(v.Get(ParamMemberReviews))); ok {
		f.MemberReviews = b
	}
	if b, ok := types.ParseStarBucket(strings.TrimSpace(v.Get(ParamStarRating))); ok {
		f.StarRating = b
	}
	f.HotelName = v.Get(ParamHotelName)
	return f
}

// FilterValues writes f as query parameters, omitting defaults.
func FilterValues(f types.FilterState) url.Values {
	def := types.DefaultFilters()
	v := url.Values{}
	if f.SortBy != "" && f.SortBy != def.SortBy {
		v.Set(ParamSortBy, string(f.SortBy))
	}
	if f.MemberReviews != "" && f.MemberReviews != def.MemberReviews {
		v.Set(ParamMemberReviews, string(f.MemberReviews))
	}
	if f.StarRating != "" && f.StarRating != def.StarRating {
		v.Set(ParamStarRating, string(f.StarRating))
	}
	if f.HotelName != "" {
		v.Set(ParamHotelName, f.HotelName)
	}
	return v
}

// FilterPatch is a field-by-field filter update. Nil fields are left alone.
type FilterPatch struct {
	SortBy        *string `json:"sortBy,omitempty"`
	MemberReviews *string `json:"memberReviews,omitempty"`
	StarRating    *string `json:"starRating,omitempty"`
	HotelName     *string `json:"hotelName,omitempty"`
}

// Apply returns f with the patch applied. f is unchanged on error.
func (p FilterPatch) Apply(f types.FilterState) (types.FilterState, error) {
	out := f
	if p.SortBy != nil {
		s, ok := types.ParseSortBy(*p.SortBy)
		if !ok {
			return f, fmt.Errorf("%w: sortBy %q", ErrInvalidFilter, *p.SortBy)
		}
		out.SortBy = s
	}
	if p.MemberReviews != nil {
		b, ok := types.ParseReviewBucket(*p.MemberReviews)
		if !ok {
			return f, fmt.Errorf("%w: memberReviews %q", ErrInvalidFilter, *p.MemberReviews)
		}
		out.MemberReviews = b
	}
	if p.StarRating != nil {
		b, ok := types.ParseStarBucket(*p.StarRating)
		if !ok {
			return f, fmt.Errorf("%w: starRating %q", ErrInvalidFilter, *p.StarRating)
		}
		out.StarRating = b
	}
	if p.HotelName != nil {
		out.HotelName = *p.HotelName
	}
	return out, nil
}
