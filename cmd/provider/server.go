package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/alex-user-go/tripsearch/internal/providers"
)

var errProviderUnavailable = errors.New("provider unavailable")

// server answers the provider API from a Catalog with simulated latency and
// random failures.
type server struct {
	catalog     *Catalog
	latency     time.Duration
	failureRate float64
	logger      *slog.Logger
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/search", s.handleSearch)
	mux.HandleFunc("GET /api/treasure-hunt", s.handleTreasureHunt)
	mux.HandleFunc("GET /api/whats-hot", s.handleWhatsHot)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			s.logger.Error("failed to write healthz response", "error", err)
		}
	})
	return mux
}

// simulate waits a random delay between latency/2 and 3*latency/2, then
// fails with probability failureRate.
func (s *server) simulate(r *http.Request) error {
	if s.latency > 0 {
		d := s.latency/2 + rand.N(s.latency)
		select {
		case <-time.After(d):
		case <-r.Context().Done():
			return r.Context().Err()
		}
	}
	if rand.Float64() < s.failureRate {
		return errProviderUnavailable
	}
	return nil
}

func (s *server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req providers.SearchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		http.Error(w, "invalid search body", http.StatusBadRequest)
		return
	}
	if err := s.simulate(r); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	rs := s.catalog.Search(req)
	s.logger.Info("search", "type", req.Type, "destination", req.Destination, "results", rs.Total)
	s.writeJSON(w, rs)
}

func (s *server) handleTreasureHunt(w http.ResponseWriter, r *http.Request) {
	if err := s.simulate(r); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, s.catalog.TreasureHunt())
}

func (s *server) handleWhatsHot(w http.ResponseWriter, r *http.Request) {
	if err := s.simulate(r); err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	s.writeJSON(w, s.catalog.WhatsHot())
}

func (s *server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}
