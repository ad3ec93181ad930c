package search_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tripsearch/internal/obs"
	"github.com/alex-user-go/tripsearch/internal/providers"
	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/cache"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

// mockProvider is a test provider that returns predefined results.
type mockProvider struct {
	rs    *types.ResultSet
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (m *mockProvider) Name() string {
	return "mock"
}

func (m *mockProvider) Search(ctx context.Context, q types.SearchQuery) (*types.ResultSet, error) {
	m.calls.Add(1)
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, context.Cause(ctx)
		}
	}
	return m.rs, m.err
}

func newSource(p providers.Provider, c *cache.Cache) (*search.Source, *obs.Metrics) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	metrics := obs.NewMetrics(logger)
	return search.NewSource(p, c, 100*time.Millisecond, metrics, logger), metrics
}

func mauiQuery() types.SearchQuery {
	q := types.DefaultQuery()
	q.Destination = "Maui"
	return q
}

func TestSource_Fetch(t *testing.T) {
	live := &types.ResultSet{Results: []types.RawResult{{ID: "7", Title: "Maui Package", PriceStatus: "$2,100"}}, Total: 1, Destination: "Maui"}

	tests := []struct {
		name       string
		provider   *mockProvider
		embedded   *types.ResultSet
		wantOrigin types.Origin
		wantID     types.ResultID
		wantCalls  int32
	}{
		{
			name:       "live results verbatim",
			provider:   &mockProvider{rs: live},
			wantOrigin: types.OriginLive,
			wantID:     "7",
			wantCalls:  1,
		},
		{
			name:       "network error falls back to placeholder",
			provider:   &mockProvider{err: errors.New("dial tcp: connection refused")},
			wantOrigin: types.OriginFallback,
			wantID:     "1",
			wantCalls:  1,
		},
		{
			name:       "malformed payload falls back",
			provider:   &mockProvider{err: providers.ErrMalformedPayload},
			wantOrigin: types.OriginFallback,
			wantID:     "1",
			wantCalls:  1,
		},
		{
			name:       "no endpoint falls back",
			provider:   &mockProvider{err: providers.ErrNoEndpoint},
			wantOrigin: types.OriginFallback,
			wantID:     "1",
			wantCalls:  1,
		},
		{
			name:       "timeout falls back",
			provider:   &mockProvider{rs: live, delay: time.Second},
			wantOrigin: types.OriginFallback,
			wantID:     "1",
			wantCalls:  1,
		},
		{
			name:       "embedded set bypasses provider",
			provider:   &mockProvider{err: errors.New("must not be called")},
			embedded:   &types.ResultSet{Results: []types.RawResult{{ID: "42", Title: "Shared Link", PriceStatus: "$10"}}},
			wantOrigin: types.OriginEmbedded,
			wantID:     "42",
			wantCalls:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, _ := newSource(tt.provider, nil)

			rs := src.Fetch(context.Background(), mauiQuery(), tt.embedded)

			require.NotNil(t, rs)
			require.NotEmpty(t, rs.Results)
			assert.Equal(t, tt.wantOrigin, rs.Origin)
			assert.Equal(t, tt.wantID, rs.Results[0].ID)
			assert.Equal(t, tt.wantCalls, tt.provider.calls.Load())
		})
	}
}

func TestSource_FailureYieldsPlaceholderListing(t *testing.T) {
	src, metrics := newSource(&mockProvider{err: errors.New("network down")}, nil)

	out := search.Apply(src.Fetch(context.Background(), mauiQuery(), nil), types.DefaultFilters())

	require.Len(t, out, 1)
	assert.Equal(t, types.PriceNotAvailable, out[0].PriceStatus)
	assert.Equal(t, "Adjust Your Search", out[0].AdjustText)
	assert.Equal(t, 1, out[0].Rank)

	snap := metrics.Snapshot()
	assert.Equal(t, int64(1), snap.ProviderErrors)
	assert.Equal(t, int64(1), snap.Fallbacks)
}

func TestSource_EmptyResultsAreValid(t *testing.T) {
	src, metrics := newSource(&mockProvider{rs: &types.ResultSet{Results: []types.RawResult{}}}, nil)

	rs := src.Fetch(context.Background(), mauiQuery(), nil)

	assert.Equal(t, types.OriginLive, rs.Origin)
	assert.Empty(t, rs.Results)
	assert.Equal(t, int64(0), metrics.Snapshot().Fallbacks)
}

func TestSource_CachesLiveResultsOnly(t *testing.T) {
	c := cache.NewCache(time.Minute)
	defer c.Close()

	p := &mockProvider{rs: &types.ResultSet{Results: []types.RawResult{{ID: "9", Title: "Kauai"}}}}
	src, metrics := newSource(p, c)

	first := src.Fetch(context.Background(), mauiQuery(), nil)
	second := src.Fetch(context.Background(), mauiQuery(), nil)

	assert.Equal(t, types.OriginLive, first.Origin)
	assert.Equal(t, types.OriginCached, second.Origin)
	assert.Equal(t, int32(1), p.calls.Load())
	assert.Equal(t, int64(1), metrics.Snapshot().CacheHits)

	failing := &mockProvider{err: errors.New("boom")}
	src, _ = newSource(failing, c)
	other := mauiQuery()
	other.Destination = "Tokyo"
	assert.Equal(t, types.OriginFallback, src.Fetch(context.Background(), other, nil).Origin)
	assert.Equal(t, types.OriginFallback, src.Fetch(context.Background(), other, nil).Origin)
	assert.Equal(t, int32(2), failing.calls.Load())
}

func TestPlaceholder_FreshValue(t *testing.T) {
	a := search.Placeholder()
	a.Results[0].Title = "changed"

	b := search.Placeholder()
	assert.Equal(t, "San Francisco: Your Way Hotel and Airfare Package", b.Results[0].Title)
	assert.Equal(t, types.ResultID("1"), b.Results[0].ID)
	assert.Equal(t, 1, b.Total)
}
