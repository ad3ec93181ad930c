package search

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/alex-user-go/tripsearch/internal/search/types"
)

// numberPattern matches the first amount in free text, with or without
// thousands separators: "$1,299.99 per person", "245 reviews", "4.5".
var numberPattern = regexp.MustCompile(`\d{1,3}(?:,\d{3})+(?:\.\d+)?|\d+(?:\.\d+)?`)

// ParseAmount extracts the first number from label. Currency symbols and
// surrounding words are ignored.
func ParseAmount(label string) (float64, bool) {
	m := numberPattern.FindString(label)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Price returns the numeric price of r. Listings marked Not Available have
// no price even if the label carries digits.
func Price(r types.RawResult) (float64, bool) {
	if strings.EqualFold(strings.TrimSpace(r.PriceStatus), types.PriceNotAvailable) {
		return 0, false
	}
	return ParseAmount(r.PriceStatus)
}

// ReviewCount returns the magnitude of the review count label.
func ReviewCount(r types.RawResult) (float64, bool) {
	return ParseAmount(r.ReviewCount)
}

// StarCount returns the whole-star rating of r.
func StarCount(r types.RawResult) (int, bool) {
	if r.Rating == nil {
		return 0, false
	}
	return int(math.Floor(*r.Rating)), true
}
