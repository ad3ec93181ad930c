package types

import (
	"bytes"
	"encoding/json"
)

// PriceNotAvailable is the priceStatus sentinel for listings with no live price.
const PriceNotAvailable = "Not Available"

// ResultID identifies a listing within one result set. Providers send it as
// a JSON number or string; it is always written back as a string.
type ResultID string

// UnmarshalJSON accepts numbers, strings and null.
func (id *ResultID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ResultID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ResultID(n.String())
	return nil
}

// RawResult is one provider listing, as returned.
type RawResult struct {
	ID            ResultID `json:"id"`
	Title         string   `json:"title"`
	Image         string   `json:"image,omitempty"`
	City          string   `json:"city,omitempty"`
	Hotel         string   `json:"hotel,omitempty"`
	Includes      []string `json:"includes,omitempty"`
	MemberReviews string   `json:"memberReviews,omitempty"`
	Rating        *float64 `json:"rating,omitempty"`
	ReviewCount   string   `json:"reviewCount,omitempty"`
	ReviewText    string   `json:"reviewText,omitempty"`
	Features      []string `json:"features,omitempty"`
	PriceStatus   string   `json:"priceStatus"`
	Options       string   `json:"options,omitempty"`
	AdjustText    string   `json:"adjustText,omitempty"`
}

// Name is the hotel name when the provider sent one, the title otherwise.
func (r RawResult) Name() string {
	if r.Hotel != "" {
		return r.Hotel
	}
	return r.Title
}

// Origin records where a ResultSet came from. It never travels on the wire.
type Origin string

const (
	OriginLive     Origin = "live"
	OriginCached   Origin = "cached"
	OriginEmbedded Origin = "embedded"
	OriginFallback Origin = "fallback"
)

// ResultSet is the raw listing for one query, before filtering.
type ResultSet struct {
	Results     []RawResult `json:"results"`
	Total       int         `json:"total,omitempty"`
	Destination string      `json:"destination,omitempty"`
	Origin      Origin      `json:"-"`
}

// Len returns the number of listings.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Results)
}

// DisplayResult is a RawResult at its position in the displayed listing.
type DisplayResult struct {
	Rank int `json:"rank"`
	RawResult
}
