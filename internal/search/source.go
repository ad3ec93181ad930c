package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/alex-user-go/tripsearch/internal/obs"
	"github.com/alex-user-go/tripsearch/internal/providers"
	"github.com/alex-user-go/tripsearch/internal/querycodec"
	"github.com/alex-user-go/tripsearch/internal/search/cache"
	"github.com/alex-user-go/tripsearch/internal/search/types"
)

const (
	placeholderTitle  = "San Francisco: Your Way Hotel and Airfare Package"
	placeholderImage  = "https://images.unsplash.com/photo-1506905925346-21bda4d32df4?w=400&h=300&fit=crop&q=80"
	placeholderAdjust = "Adjust Your Search"
)

// Placeholder returns the single-entry set shown when no live data is
// available. Each call returns a fresh value.
func Placeholder() *types.ResultSet {
	return &types.ResultSet{
		Results: []types.RawResult{{
			ID:          "1",
			Title:       placeholderTitle,
			Image:       placeholderImage,
			PriceStatus: types.PriceNotAvailable,
			AdjustText:  placeholderAdjust,
		}},
		Total:  1,
		Origin: types.OriginFallback,
	}
}

// Source resolves a query to a raw result set.
type Source struct {
	provider providers.Provider
	cache    *cache.Cache
	timeout  time.Duration
	metrics  *obs.Metrics
	logger   *slog.Logger
}

// NewSource creates a new Source. The cache may be nil.
func NewSource(provider providers.Provider, c *cache.Cache, timeout time.Duration, metrics *obs.Metrics, logger *slog.Logger) *Source {
	return &Source{
		provider: provider,
		cache:    c,
		timeout:  timeout,
		metrics:  metrics,
		logger:   logger,
	}
}

// Fetch returns the result set for q. An embedded set is used verbatim
// without contacting the provider. Otherwise Fetch consults the cache and
// then makes a single provider call. Any failure yields the placeholder;
// Fetch never returns nil or an error.
func (s *Source) Fetch(ctx context.Context, q types.SearchQuery, embedded *types.ResultSet) *types.ResultSet {
	if embedded != nil {
		s.metrics.IncEmbedded()
		return withOrigin(embedded, types.OriginEmbedded)
	}

	fetch := func() (*types.ResultSet, error) {
		// Collapsed waiters share this call, so it must outlive the first caller.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
		defer cancel()
		return s.provider.Search(ctx, q)
	}

	var (
		rs  *types.ResultSet
		hit bool
		err error
	)
	if s.cache != nil {
		rs, hit, err = s.cache.GetOrFetch(ctx, querycodec.Key(q), fetch)
	} else {
		rs, err = fetch()
	}

	if err != nil || rs == nil {
		if err != nil {
			s.metrics.IncProviderErrors()
		}
		s.metrics.IncFallbacks()
		s.logger.Warn("result fetch failed, using placeholder",
			"provider", s.provider.Name(),
			"destination", q.Destination,
			"type", q.Type,
			"error", err)
		return Placeholder()
	}

	if hit {
		s.metrics.IncCacheHits()
		return withOrigin(rs, types.OriginCached)
	}
	return withOrigin(rs, types.OriginLive)
}

// withOrigin returns a shallow copy of rs tagged with origin. The results
// slice is shared and must be treated as read-only.
func withOrigin(rs *types.ResultSet, origin types.Origin) *types.ResultSet {
	out := *rs
	out.Origin = origin
	return &out
}
