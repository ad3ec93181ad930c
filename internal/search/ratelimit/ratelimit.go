// Package ratelimit limits requests per client key.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter hands each key its own token bucket holding up to requests
// tokens, refilled evenly over window.
type Limiter struct {
	mu      sync.Mutex
	clients map[string]*client
	limit   rate.Limit
	burst   int
	window  time.Duration
	done    chan struct{}
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// New creates a new Limiter. A non-positive requests value blocks every call.
func New(requests int, window time.Duration) *Limiter {
	l := &Limiter{
		clients: make(map[string]*client),
		window:  window,
		done:    make(chan struct{}),
	}
	if requests > 0 && window > 0 {
		l.limit = rate.Every(window / time.Duration(requests))
		l.burst = requests
	}

	go l.cleanup()

	return l
}

// Close stops the background cleanup goroutine.
func (l *Limiter) Close() {
	close(l.done)
}

// Allow reports whether a request for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	c, ok := l.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = time.Now()
	l.mu.Unlock()

	return c.limiter.Allow()
}

// Len returns the number of tracked keys.
func (l *Limiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// cleanup periodically forgets keys idle for two windows.
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.sweep(time.Now())
		case <-l.done:
			return
		}
	}
}

func (l *Limiter) sweep(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for key, c := range l.clients {
		if now.Sub(c.lastSeen) > 2*l.window {
			delete(l.clients, key)
		}
	}
}
