// Package ratelimit throttles document generation per client using token buckets.
package ratelimit

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Info contains information about rate limit status.
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter hands out one token bucket per client. Buckets idle for longer than
// Config.IdleTTL are swept lazily on later calls, so no goroutine is started.
type Limiter struct {
	config    *Config
	now       func() time.Time
	mu        sync.Mutex
	clients   map[string]*client
	lastSweep time.Time
}

type client struct {
	bucket   *rate.Limiter
	lastSeen time.Time
}

// NewLimiter creates a new rate limiter with the given configuration.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	return &Limiter{
		config:  config,
		now:     time.Now,
		clients: make(map[string]*client),
	}
}

// Allow consumes a token for clientID if one is available.
func (l *Limiter) Allow(clientID string) (bool, Info) {
	if !l.config.Enabled || l.config.Limit <= 0 || l.config.Exempt[clientID] {
		return true, Info{Allowed: true}
	}

	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)
	c := l.client(clientID, now)

	res := c.bucket.ReserveN(now, 1)
	if !res.OK() {
		return false, Info{Limit: l.config.Limit}
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, Info{
			Limit:      l.config.Limit,
			Remaining:  0,
			RetryAfter: delay,
		}
	}

	return true, Info{
		Allowed:   true,
		Limit:     l.config.Limit,
		Remaining: max(0, int(c.bucket.TokensAt(now))),
	}
}

// Clients returns the number of tracked clients.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

func (l *Limiter) client(id string, now time.Time) *client {
	c, ok := l.clients[id]
	if !ok {
		burst := l.config.Burst
		if burst <= 0 {
			burst = l.config.Limit
		}
		every := rate.Every(l.config.Window / time.Duration(l.config.Limit))
		c = &client{bucket: rate.NewLimiter(every, burst)}
		l.clients[id] = c
	}
	c.lastSeen = now
	return c
}

// sweep drops clients that have been idle for longer than IdleTTL. Callers hold l.mu.
func (l *Limiter) sweep(now time.Time) {
	ttl := l.config.IdleTTL
	if ttl <= 0 || now.Sub(l.lastSweep) < ttl {
		return
	}
	l.lastSweep = now
	cutoff := now.Add(-ttl)
	for id, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, id)
		}
	}
}
