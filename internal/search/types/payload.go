package types

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformedPayload is returned for bodies that do not carry a results array.
var ErrMalformedPayload = errors.New("malformed result payload")

// ParseResultSet parses a provider or embedded payload of the form
// {"results": [...], "total": n, "destination": "..."}.
// An empty results array is valid.
func ParseResultSet(data []byte) (*ResultSet, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedPayload)
	}

	results := gjson.GetBytes(data, "results")
	if !results.IsArray() {
		return nil, fmt.Errorf("%w: missing results array", ErrMalformedPayload)
	}

	rs := &ResultSet{Results: []RawResult{}}
	if err := json.Unmarshal([]byte(results.Raw), &rs.Results); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	rs.Total = int(gjson.GetBytes(data, "total").Int())
	rs.Destination = gjson.GetBytes(data, "destination").String()
	return rs, nil
}
