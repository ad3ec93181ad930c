package obs

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks application metrics using atomic counters.
type Metrics struct {
	requests       atomic.Int64
	cacheHits      atomic.Int64
	providerErrors atomic.Int64
	fallbacks      atomic.Int64
	embedded       atomic.Int64
	staleDiscarded atomic.Int64
	chatMessages   atomic.Int64
	logger         *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requests.Add(1)
}

// IncCacheHits increments the cache hits counter.
func (m *Metrics) IncCacheHits() {
	m.cacheHits.Add(1)
}

// IncProviderErrors increments the provider errors counter.
func (m *Metrics) IncProviderErrors() {
	m.providerErrors.Add(1)
}

// IncFallbacks counts result sets answered with the placeholder.
func (m *Metrics) IncFallbacks() {
	m.fallbacks.Add(1)
}

// IncEmbedded counts result sets taken from the query transport.
func (m *Metrics) IncEmbedded() {
	m.embedded.Add(1)
}

// IncStaleDiscarded counts deliveries dropped because a newer query superseded them.
func (m *Metrics) IncStaleDiscarded() {
	m.staleDiscarded.Add(1)
}

// IncChatMessages counts concierge replies.
func (m *Metrics) IncChatMessages() {
	m.chatMessages.Add(1)
}

// Snapshot returns current metric values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:       m.requests.Load(),
		CacheHits:      m.cacheHits.Load(),
		ProviderErrors: m.providerErrors.Load(),
		Fallbacks:      m.fallbacks.Load(),
		Embedded:       m.embedded.Load(),
		StaleDiscarded: m.staleDiscarded.Load(),
		ChatMessages:   m.chatMessages.Load(),
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	Requests       int64
	CacheHits      int64
	ProviderErrors int64
	Fallbacks      int64
	Embedded       int64
	StaleDiscarded int64
	ChatMessages   int64
}

type counter struct {
	name  string
	help  string
	value int64
}

func (s MetricsSnapshot) counters() []counter {
	return []counter{
		{"requests_total", "Total number of requests", s.Requests},
		{"cache_hits_total", "Total number of cache hits", s.CacheHits},
		{"provider_errors_total", "Total number of provider errors", s.ProviderErrors},
		{"fallback_results_total", "Result sets answered with the placeholder", s.Fallbacks},
		{"embedded_results_total", "Result sets taken from the query transport", s.Embedded},
		{"stale_results_discarded_total", "Deliveries dropped for a superseded query", s.StaleDiscarded},
		{"chat_messages_total", "Concierge replies sent", s.ChatMessages},
	}
}

// HealthHandler returns a handler for /healthz requests.
func HealthHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health response", "error", err)
		}
	}
}

// MetricsHandler returns a handler for /metrics requests in Prometheus format.
func (m *Metrics) MetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)

		for _, c := range m.Snapshot().counters() {
			if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", c.name, c.help, c.name, c.name, c.value); err != nil {
				m.logger.Error("failed to write metrics", "error", err)
				return
			}
		}
	}
}
