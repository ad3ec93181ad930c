package providers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tripsearch/internal/providers"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

func TestHTTPProvider_Search(t *testing.T) {
	var got providers.SearchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":3,"title":"Grand Wailea Resort","rating":4.8,"priceStatus":"From $599.99"}],"total":1,"destination":"Maui"}`))
	}))
	defer srv.Close()

	p := providers.NewHTTPProvider("catalog", srv.URL+"/", time.Second)
	assert.Equal(t, "catalog", p.Name())

	q := types.DefaultQuery()
	q.Destination = "Maui"
	q.FlyingFrom = "SJC"
	q.AddCar = true

	rs, err := p.Search(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, rs.Results, 1)
	assert.Equal(t, "Grand Wailea Resort", rs.Results[0].Title)
	assert.Equal(t, "Maui", rs.Destination)

	assert.Equal(t, "packages", got.Type)
	assert.Equal(t, "Maui", got.Destination)
	assert.Equal(t, "SJC", got.FlyingFrom)
	assert.Equal(t, "1", got.Rooms)
	assert.Equal(t, "2", got.Adults)
	assert.Equal(t, "0", got.Children)
	assert.Equal(t, "Any", got.Class)
	assert.Equal(t, "true", got.AddCar)
	assert.Equal(t, "false", got.AddFlight)
	assert.Equal(t, "", got.Departure)
}

func TestHTTPProvider_SearchErrors(t *testing.T) {
	tests := []struct {
		name      string
		handler   http.HandlerFunc
		wantIs    error
		wantMatch string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": "Search failed"}`, http.StatusInternalServerError)
			},
			wantMatch: "provider returned status 500",
		},
		{
			name: "html body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("<html>oops</html>"))
			},
			wantIs: providers.ErrMalformedPayload,
		},
		{
			name: "no results key",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"total": 0}`))
			},
			wantIs: providers.ErrMalformedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			p := providers.NewHTTPProvider("catalog", srv.URL, time.Second)
			rs, err := p.Search(context.Background(), types.DefaultQuery())
			require.Error(t, err)
			assert.Nil(t, rs)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
			if tt.wantMatch != "" {
				assert.Contains(t, err.Error(), tt.wantMatch)
			}
		})
	}
}

func TestHTTPProvider_NoEndpoint(t *testing.T) {
	p := providers.NewHTTPProvider("catalog", "  ", time.Second)

	_, err := p.Search(context.Background(), types.DefaultQuery())
	assert.ErrorIs(t, err, providers.ErrNoEndpoint)

	_, err = p.TreasureHunt(context.Background())
	assert.ErrorIs(t, err, providers.ErrNoEndpoint)
}

func TestHTTPProvider_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	p := providers.NewHTTPProvider("catalog", url, time.Second)
	_, err := p.Search(context.Background(), types.DefaultQuery())
	assert.ErrorContains(t, err, "request failed")
}

func TestHTTPProvider_Deals(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/treasure-hunt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":"Norwegian Cruise Line Exclusive Deals","benefits":["Daily Gratuities"],"extrasValue":"$400"}]`))
	})
	mux.HandleFunc("GET /api/whats-hot", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := providers.NewHTTPProvider("catalog", srv.URL, time.Second)

	th, err := p.TreasureHunt(context.Background())
	require.NoError(t, err)
	require.Len(t, th, 1)
	assert.Equal(t, "$400", th[0].ExtrasValue)
	assert.Equal(t, types.ResultID("1"), th[0].ID)

	_, err = p.WhatsHot(context.Background())
	assert.ErrorIs(t, err, providers.ErrMalformedPayload)
}
