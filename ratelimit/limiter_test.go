package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(clock *fakeClock) *Limiter {
	return NewLimiter(
		WithWindow(60*time.Second),
		WithMaxRequests(5),
		WithClock(clock.Now),
	)
}

func TestAllowUnderLimit(t *testing.T) {
	limiter := newTestLimiter(newFakeClock())

	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("caller"), "request %d should be allowed", i+1)
	}
}

func TestRejectAtLimit(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	for i := 0; i < 5; i++ {
		limiter.Allow("caller")
	}

	assert.False(t, limiter.Allow("caller"), "sixth request within the window is rejected")
}

func TestWindowSlides(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	// Two requests early, three later in the window.
	limiter.Allow("caller")
	limiter.Allow("caller")
	clock.Advance(30 * time.Second)
	limiter.Allow("caller")
	limiter.Allow("caller")
	limiter.Allow("caller")

	assert.False(t, limiter.Allow("caller"))

	// 31 seconds later the first two requests have aged out but the later
	// three have not: two slots are free.
	clock.Advance(31 * time.Second)
	assert.True(t, limiter.Allow("caller"))
	assert.True(t, limiter.Allow("caller"))
	assert.False(t, limiter.Allow("caller"))
}

func TestRejectedRequestsDoNotCount(t *testing.T) {
	clock := newFakeClock()
	limiter := newTestLimiter(clock)

	for i := 0; i < 5; i++ {
		limiter.Allow("caller")
	}
	// Hammering while limited must not extend the lockout.
	for i := 0; i < 10; i++ {
		assert.False(t, limiter.Allow("caller"))
	}

	clock.Advance(61 * time.Second)
	assert.True(t, limiter.Allow("caller"), "window clears once the allowed requests age out")
}

func TestCallersAreIndependent(t *testing.T) {
	limiter := newTestLimiter(newFakeClock())

	for i := 0; i < 5; i++ {
		limiter.Allow("alice")
	}
	assert.False(t, limiter.Allow("alice"))
	assert.True(t, limiter.Allow("bob"), "one caller at the limit does not affect another")
}

func TestDefaults(t *testing.T) {
	limiter := NewLimiter()
	assert.Equal(t, DefaultWindow, limiter.Window())
}
