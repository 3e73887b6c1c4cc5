package ratelimit

import (
	"sync"
	"time"
)

const (
	// DefaultWindow is the default sliding window length.
	DefaultWindow = 60 * time.Second

	// DefaultMaxRequests is the default number of requests allowed per
	// window.
	DefaultMaxRequests = 5
)

// Limiter is a sliding-window rate limiter keyed by caller ID. A caller may
// make at most maxRequests requests in any trailing window; older requests
// age out continuously rather than at fixed window boundaries. Safe for
// concurrent use.
type Limiter struct {
	mu          sync.Mutex
	window      time.Duration
	maxRequests int
	now         func() time.Time
	requests    map[string][]time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithWindow sets the sliding window length.
// Default is DefaultWindow.
func WithWindow(window time.Duration) Option {
	return func(l *Limiter) {
		l.window = window
	}
}

// WithMaxRequests sets the number of requests allowed per window.
// Default is DefaultMaxRequests.
func WithMaxRequests(n int) Option {
	return func(l *Limiter) {
		l.maxRequests = n
	}
}

// WithClock injects the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		l.now = now
	}
}

// NewLimiter creates a sliding-window limiter.
func NewLimiter(opts ...Option) *Limiter {
	l := &Limiter{
		window:      DefaultWindow,
		maxRequests: DefaultMaxRequests,
		now:         time.Now,
		requests:    make(map[string][]time.Time),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow records a request for the caller if it is under the limit and
// reports whether the request may proceed. Rejected requests are not
// recorded and do not extend the caller's window.
func (l *Limiter) Allow(callerID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.requests[callerID][:0]
	for _, at := range l.requests[callerID] {
		if at.After(cutoff) {
			kept = append(kept, at)
		}
	}

	if len(kept) >= l.maxRequests {
		l.requests[callerID] = kept
		return false
	}

	l.requests[callerID] = append(kept, now)
	return true
}

// Window returns the configured window length.
func (l *Limiter) Window() time.Duration {
	return l.window
}
