package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alex-user-go/tripsearch/internal/obs"
)

// ErrNotFound is returned for unknown or expired session IDs.
var ErrNotFound = errors.New("session not found")

// Store holds sessions in memory and forgets them after ttl of inactivity.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	metrics  *obs.Metrics
	done     chan struct{}
}

// NewStore creates a new Store.
func NewStore(ttl time.Duration, metrics *obs.Metrics) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		metrics:  metrics,
		done:     make(chan struct{}),
	}

	go s.cleanup()

	return s
}

// Close stops the background cleanup goroutine.
func (s *Store) Close() {
	close(s.done)
}

// Create starts a new session with default query and filters.
func (s *Store) Create() *Session {
	sess := newSession(uuid.NewString(), s.metrics)

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	return sess
}

// Get returns the session for id.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	sess.touch()
	return sess, nil
}

// Delete removes the session for id.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) cleanup() {
	interval := time.Minute
	if s.ttl > 0 && s.ttl < interval {
		interval = s.ttl
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(time.Now())
		case <-s.done:
			return
		}
	}
}

func (s *Store) sweep(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		if now.Sub(sess.idleSince()) > s.ttl {
			delete(s.sessions, id)
		}
	}
}
