package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/alex-user-go/tripsearch/internal/handler"
	"github.com/alex-user-go/tripsearch/internal/querycodec"
	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	app.Reader = strings.NewReader(stdin)
	err := app.Run(context.Background(), append([]string{"tripsearch"}, args...))
	return out.String(), err
}

func TestComposeQuery(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    func(q *types.SearchQuery)
		wantErr error
	}{
		{
			name: "package with flight origin",
			args: []string{"--destination", "Maui", "--from", "LAX", "--depart", "2026-11-01", "--return", "2026-11-08"},
			want: func(q *types.SearchQuery) {
				q.Destination = "Maui"
				q.FlyingFrom = "LAX"
				q.Departure = time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
				q.Return = time.Date(2026, 11, 8, 0, 0, 0, 0, time.UTC)
			},
		},
		{
			name: "hotel without flight needs no origin",
			args: []string{"--type", "hotels", "--destination", "Lisbon", "--rooms", "2", "--add-car"},
			want: func(q *types.SearchQuery) {
				q.Type = types.SearchHotels
				q.Destination = "Lisbon"
				q.Rooms = 2
				q.AddCar = true
			},
		},
		{
			name:    "package without origin",
			args:    []string{"--destination", "Maui"},
			wantErr: types.ErrFlyingFromRequired,
		},
		{
			name:    "return before departure",
			args:    []string{"--from", "LAX", "--depart", "2026-11-08", "--return", "2026-11-01"},
			wantErr: types.ErrReturnBeforeDepart,
		},
		{
			name:    "no adults",
			args:    []string{"--type", "cruises", "--adults", "0"},
			wantErr: types.ErrInvalidAdults,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got types.SearchQuery
			var composeErr error
			c := newApp()
			c.Flags = queryFlags()
			c.Commands = nil
			c.Action = func(ctx context.Context, c *cli.Command) error {
				got, composeErr = composeQuery(c)
				return nil
			}
			require.NoError(t, c.Run(context.Background(), append([]string{"tripsearch"}, tt.args...)))

			if tt.wantErr != nil {
				assert.ErrorIs(t, composeErr, tt.wantErr)
				return
			}
			require.NoError(t, composeErr)
			want := types.DefaultQuery()
			tt.want(&want)
			assert.Equal(t, want, got)
		})
	}
}

func TestComposeQueryRejectsBadTokens(t *testing.T) {
	for _, args := range [][]string{
		{"--type", "flights"},
		{"--class", "Steerage"},
		{"--from", "LAX", "--depart", "11/01/2026"},
	} {
		_, err := run(t, "", append([]string{"link"}, args...)...)
		assert.Error(t, err, args)
	}
}

func TestLink(t *testing.T) {
	out, err := run(t, "", "--server", "http://trips.test/", "link",
		"--destination", "Maui", "--from", "LAX", "--sort", "star-rating", "--name", "grand")
	require.NoError(t, err)

	u, err := url.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "trips.test", u.Host)
	assert.Equal(t, "/search", u.Path)

	q := querycodec.Decode(u.Query())
	assert.Equal(t, "Maui", q.Destination)
	assert.Equal(t, "LAX", q.FlyingFrom)

	f := search.ParseFilterState(u.Query())
	assert.Equal(t, types.SortStarRating, f.SortBy)
	assert.Equal(t, "grand", f.HotelName)
}

func TestLinkWithDefaultFilters(t *testing.T) {
	out, err := run(t, "", "--server", "http://trips.test", "link", "--destination", "Maui", "--from", "LAX")
	require.NoError(t, err)

	q := types.DefaultQuery()
	q.Destination = "Maui"
	q.FlyingFrom = "LAX"
	assert.Equal(t, querycodec.EncodeURL("http://trips.test/search", q), strings.TrimSpace(out))
}

func TestLinkEmbedsResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	payload := `{"results":[{"id":7,"title":"Shared Pick","priceStatus":"From $99.00"}]}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	out, err := run(t, "", "link", "--from", "LAX", "--results-file", path)
	require.NoError(t, err)

	u, err := url.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	rs, ok, err := querycodec.DecodeEmbedded(u.Query())
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, rs.Results, 1)
	assert.Equal(t, "Shared Pick", rs.Results[0].Title)
}

func TestLinkRejectsMalformedResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"results":"nope"}`), 0o600))

	_, err := run(t, "", "link", "--from", "LAX", "--results-file", path)
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	rating := 4.4
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query()
		_ = json.NewEncoder(w).Encode(handler.SearchResponse{
			Filters: types.DefaultFilters(),
			Stats:   handler.SearchStats{Origin: types.OriginLive, Total: 3, Shown: 3},
			Results: []types.DisplayResult{
				{Rank: 1, RawResult: types.RawResult{ID: "1", Title: "First Pick", Hotel: "Maui Grand", City: "Maui", Rating: &rating, ReviewCount: "120 reviews", Includes: []string{"Flights"}, PriceStatus: "From $899.00"}},
				{Rank: 2, RawResult: types.RawResult{ID: "2", Title: "Second Pick", PriceStatus: "From $999.00"}},
				{Rank: 3, RawResult: types.RawResult{ID: "3", Title: "Third Pick", PriceStatus: types.PriceNotAvailable}},
			},
		})
	}))
	defer srv.Close()

	out, err := run(t, "", "--server", srv.URL, "search",
		"--destination", "Maui", "--from", "LAX", "--stars", "4-star", "--limit", "2")
	require.NoError(t, err)

	assert.Equal(t, "Maui", gotQuery.Get(querycodec.KeyDest))
	assert.Equal(t, "4-star", gotQuery.Get(search.ParamStarRating))

	assert.Contains(t, out, "Packages in Maui")
	assert.Contains(t, out, "3 of 3 results (live)")
	assert.Contains(t, out, "1. First Pick")
	assert.Contains(t, out, "Maui Grand, Maui")
	assert.Contains(t, out, "**** 120 reviews")
	assert.Contains(t, out, "From $899.00")
	assert.Contains(t, out, "2. Second Pick")
	assert.NotContains(t, out, "Third Pick")
	assert.Contains(t, out, "1 more not shown")
}

func TestSearchRejectsBadFilter(t *testing.T) {
	_, err := run(t, "", "--server", "http://127.0.0.1:1", "search", "--from", "LAX", "--stars", "7-star")
	assert.ErrorIs(t, err, search.ErrInvalidFilter)
}

func TestSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := run(t, "", "--server", srv.URL, "search", "--from", "LAX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestDeals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/deals/treasure-hunt":
			_ = json.NewEncoder(w).Encode([]types.TreasureHuntDeal{{ID: "1", Title: "Island Escape", Benefits: []string{"Free breakfast"}, ExtrasValue: "$300 in extras"}})
		case "/deals/whats-hot":
			_ = json.NewEncoder(w).Encode([]types.HotDeal{{ID: "2", Title: "Lisbon Getaway", Price: "From $1,299", Duration: "5 nights"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	out, err := run(t, "", "--server", srv.URL, "deals")
	require.NoError(t, err)
	assert.Contains(t, out, "Treasure Hunt")
	assert.Contains(t, out, "Island Escape")
	assert.Contains(t, out, "Free breakfast")
	assert.Contains(t, out, "What's Hot")
	assert.Contains(t, out, "Lisbon Getaway")
	assert.Contains(t, out, "From $1,299")
}

func TestChat(t *testing.T) {
	out, err := run(t, "\nThinking about Hawaii\nexit\nnever read\n", "chat", "--latency", "1ms")
	require.NoError(t, err)

	assert.Contains(t, out, "travel concierge")
	assert.Contains(t, out, "Hawaii sounds amazing")
	assert.Equal(t, 1, strings.Count(out, "typing..."))
}

func TestChatEOF(t *testing.T) {
	out, err := run(t, "budget?", "chat", "--latency", "1ms")
	require.NoError(t, err)
	assert.Contains(t, out, "within your budget")
}

func TestHeading(t *testing.T) {
	q := types.DefaultQuery()
	q.Type = types.SearchRentalCars
	q.Destination = "Maui"
	assert.Equal(t, "Rental Cars in Maui", heading(q))
}
