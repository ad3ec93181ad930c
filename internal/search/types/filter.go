package types

// SortBy selects the ordering of the displayed listing.
type SortBy string

const (
	SortPriceLow      SortBy = "price-low"
	SortPriceHigh     SortBy = "price-high"
	SortMemberReviews SortBy = "member-reviews"
	SortStarRating    SortBy = "star-rating"
	SortNameAZ        SortBy = "hotel-name-az"
	SortNameZA        SortBy = "hotel-name-za"
)

// ParseSortBy maps a token to a SortBy.
func ParseSortBy(s string) (SortBy, bool) {
	switch v := SortBy(s); v {
	case SortPriceLow, SortPriceHigh, SortMemberReviews, SortStarRating, SortNameAZ, SortNameZA:
		return v, true
	}
	return "", false
}

// ReviewBucket narrows the listing by member review score.
type ReviewBucket string

const (
	ReviewsAll  ReviewBucket = "all"
	Reviews5    ReviewBucket = "5-star"
	Reviews4    ReviewBucket = "4-star"
	Reviews3    ReviewBucket = "3-star"
	NotReviewed ReviewBucket = "not-reviewed"
)

// ParseReviewBucket maps a token to a ReviewBucket.
func ParseReviewBucket(s string) (ReviewBucket, bool) {
	switch v := ReviewBucket(s); v {
	case ReviewsAll, Reviews5, Reviews4, Reviews3, NotReviewed:
		return v, true
	}
	return "", false
}

// Stars returns the star count the bucket selects, 0 for all/not-reviewed.
func (b ReviewBucket) Stars() int {
	switch b {
	case Reviews5:
		return 5
	case Reviews4:
		return 4
	case Reviews3:
		return 3
	}
	return 0
}

// StarBucket narrows the listing by hotel star rating.
type StarBucket string

const (
	StarsAll StarBucket = "all"
	Stars5   StarBucket = "5-star"
	Stars4   StarBucket = "4-star"
	Stars3   StarBucket = "3-star"
	Stars2   StarBucket = "2-star"
	NotRated StarBucket = "not-rated"
)

// ParseStarBucket maps a token to a StarBucket.
func ParseStarBucket(s string) (StarBucket, bool) {
	switch v := StarBucket(s); v {
	case StarsAll, Stars5, Stars4, Stars3, Stars2, NotRated:
		return v, true
	}
	return "", false
}

// Stars returns the star count the bucket selects, 0 for all/not-rated.
func (b StarBucket) Stars() int {
	switch b {
	case Stars5:
		return 5
	case Stars4:
		return 4
	case Stars3:
		return 3
	case Stars2:
		return 2
	}
	return 0
}

// FilterState is the user's narrowing and ordering of a result set.
type FilterState struct {
	SortBy        SortBy       `json:"sortBy"`
	MemberReviews ReviewBucket `json:"memberReviews"`
	StarRating    StarBucket   `json:"starRating"`
	HotelName     string       `json:"hotelName"`
}

// DefaultFilters returns the filter state a new result set starts with.
func DefaultFilters() FilterState {
	return FilterState{
		SortBy:        SortPriceLow,
		MemberReviews: ReviewsAll,
		StarRating:    StarsAll,
	}
}
