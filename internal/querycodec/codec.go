// Package querycodec maps SearchQuery values to and from the flat string
// record carried in the storefront's /search URL.
//
// Encode writes every field, using "" for unset optional ones. Decode never
// fails: missing or garbled tokens fall back to the query defaults.
package querycodec

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alex-user-go/tripsearch/internal/search/types"
)

// Transport keys.
const (
	KeyType       = "type"
	KeyDest       = "destination"
	KeyDeparture  = "departure"
	KeyReturn     = "return"
	KeyCheckIn    = "checkIn"
	KeyCheckOut   = "checkOut"
	KeyRooms      = "rooms"
	KeyAdults     = "adults"
	KeyChildren   = "children"
	KeyFlyingFrom = "flyingFrom"
	KeyClass      = "class"
	KeyAddFlight  = "addFlight"
	KeyAddCar     = "addCar"
	KeyResults    = "results"
)

// DateLayout is the transport format for all query dates.
const DateLayout = "2006-01-02"

const (
	tokenTrue  = "true"
	tokenFalse = "false"
)

// Encode flattens q into a transport record.
func Encode(q types.SearchQuery) url.Values {
	v := url.Values{}
	v.Set(KeyType, string(q.Type))
	v.Set(KeyDest, q.Destination)
	v.Set(KeyDeparture, formatDate(q.Departure))
	v.Set(KeyReturn, formatDate(q.Return))
	v.Set(KeyCheckIn, formatDate(q.CheckIn))
	v.Set(KeyCheckOut, formatDate(q.CheckOut))
	v.Set(KeyRooms, strconv.Itoa(q.Rooms))
	v.Set(KeyAdults, strconv.Itoa(q.Adults))
	v.Set(KeyChildren, strconv.Itoa(q.Children))
	v.Set(KeyFlyingFrom, q.FlyingFrom)
	v.Set(KeyClass, string(q.Class))
	v.Set(KeyAddFlight, formatBool(q.AddFlight))
	v.Set(KeyAddCar, formatBool(q.AddCar))
	return v
}

// Decode rebuilds a query from a transport record.
func Decode(v url.Values) types.SearchQuery {
	q := types.DefaultQuery()

	if t, ok := types.ParseSearchType(strings.TrimSpace(v.Get(KeyType))); ok {
		q.Type = t
	}
	// Blank destinations take the default; anything else is kept as sent.
	if dest := v.Get(KeyDest); strings.TrimSpace(dest) != "" {
		q.Destination = dest
	}
	q.Departure = parseDate(v.Get(KeyDeparture))
	q.Return = parseDate(v.Get(KeyReturn))
	q.CheckIn = parseDate(v.Get(KeyCheckIn))
	q.CheckOut = parseDate(v.Get(KeyCheckOut))
	q.Rooms = parseInt(v.Get(KeyRooms), 1, types.DefaultRooms)
	q.Adults = parseInt(v.Get(KeyAdults), 1, types.DefaultAdults)
	q.Children = parseInt(v.Get(KeyChildren), 0, types.DefaultChildren)
	q.FlyingFrom = v.Get(KeyFlyingFrom)
	if c, ok := types.ParseTravelClass(strings.TrimSpace(v.Get(KeyClass))); ok {
		q.Class = c
	}
	q.AddFlight = parseBool(v.Get(KeyAddFlight))
	q.AddCar = parseBool(v.Get(KeyAddCar))
	return q
}

// Record returns the encoding of q as a plain string map.
func Record(q types.SearchQuery) map[string]string {
	v := Encode(q)
	m := make(map[string]string, len(v))
	for k := range v {
		m[k] = v.Get(k)
	}
	return m
}

// EncodeURL returns the navigation target for q under path, e.g. "/search".
func EncodeURL(path string, q types.SearchQuery) string {
	return path + "?" + Encode(q).Encode()
}

// Key returns a canonical identity for q. Queries that decode equal share a key.
func Key(q types.SearchQuery) string {
	return Encode(q).Encode()
}

// WithEmbedded adds a pre-serialized result set to a transport record.
func WithEmbedded(v url.Values, payload []byte) url.Values {
	v.Set(KeyResults, string(payload))
	return v
}

// DecodeEmbedded returns the result set carried under the results key.
// ok is false when the key is absent; err is set when it is present but
// malformed, in which case callers treat it as absent.
func DecodeEmbedded(v url.Values) (rs *types.ResultSet, ok bool, err error) {
	raw := v.Get(KeyResults)
	if strings.TrimSpace(raw) == "" {
		return nil, false, nil
	}
	rs, err = types.ParseResultSet([]byte(raw))
	if err != nil {
		return nil, false, err
	}
	return rs, true, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

func parseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseInt(s string, lo, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < lo {
		return def
	}
	return n
}

func formatBool(b bool) string {
	if b {
		return tokenTrue
	}
	return tokenFalse
}

// parseBool fails closed: anything but the true token is false.
func parseBool(s string) bool {
	return strings.TrimSpace(s) == tokenTrue
}
