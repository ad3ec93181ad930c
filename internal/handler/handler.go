// Package handler exposes the storefront over HTTP.
package handler

import (
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alex-user-go/tripsearch/internal/obs"
	"github.com/alex-user-go/tripsearch/internal/search"
	"github.com/alex-user-go/tripsearch/internal/search/ratelimit"
	"github.com/alex-user-go/tripsearch/internal/session"
)

// Handler handles HTTP requests.
type Handler struct {
	source      *search.Source
	deals       *search.DealFeed
	sessions    *session.Store
	rateLimiter *ratelimit.Limiter
	chatLatency time.Duration
	metrics     *obs.Metrics
	logger      *slog.Logger
}

// New creates a new Handler.
func New(
	source *search.Source,
	deals *search.DealFeed,
	sessions *session.Store,
	rateLimiter *ratelimit.Limiter,
	chatLatency time.Duration,
	metrics *obs.Metrics,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		source:      source,
		deals:       deals,
		sessions:    sessions,
		rateLimiter: rateLimiter,
		chatLatency: chatLatency,
		metrics:     metrics,
		logger:      logger,
	}
}

// Register adds every route to mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /search", h.limited(h.SearchHandler))

	mux.HandleFunc("POST /sessions", h.CreateSessionHandler)
	mux.HandleFunc("GET /sessions/{id}", h.GetSessionHandler)
	mux.HandleFunc("DELETE /sessions/{id}", h.DeleteSessionHandler)
	mux.HandleFunc("PUT /sessions/{id}/query", h.limited(h.SessionQueryHandler))
	mux.HandleFunc("PUT /sessions/{id}/filters", h.ReplaceFiltersHandler)
	mux.HandleFunc("PATCH /sessions/{id}/filters", h.SessionFiltersHandler)

	mux.HandleFunc("POST /chat", h.limited(h.ChatHandler))

	mux.HandleFunc("GET /deals/treasure-hunt", h.TreasureHuntHandler)
	mux.HandleFunc("GET /deals/whats-hot", h.WhatsHotHandler)

	mux.HandleFunc("GET /healthz", obs.HealthHandler(h.logger))
	mux.HandleFunc("GET /metrics", h.metrics.MetricsHandler())
}

// limited counts the request and applies the per-client rate limit.
func (h *Handler) limited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.metrics.IncRequests()

		ip := ExtractIP(r)
		if !h.rateLimiter.Allow(ip) {
			h.logger.Warn("rate limit exceeded", "request_id", requestID(r), "ip", ip, "path", r.URL.Path)
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
}

// ExtractIP extracts the client IP from the request.
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Can't change status after WriteHeader, just log
		h.logger.Error("failed to encode response", "request_id", requestID(r), "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
