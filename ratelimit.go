package element

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Rate limit header names as sent by the ELEMENT API.
const (
	headerRateLimitRemaining = "X-Ratelimit-Remaining"
	headerRateLimitReset     = "X-Ratelimit-Reset"
)

const (
	// DefaultRateLimitRemaining is the assumed request budget before the
	// first response has been observed.
	DefaultRateLimitRemaining = 50

	// DefaultRateLimitReset is the assumed window reset delay before the
	// first response has been observed.
	DefaultRateLimitReset = 5 * time.Second

	// rateLimitLowWater is the remaining-request count at or below which
	// outgoing requests are delayed until the window resets.
	rateLimitLowWater = 5
)

// RateLimitInfo is a snapshot of the rate limit state observed from API
// response headers.
type RateLimitInfo struct {
	Remaining int           // Requests remaining in the current window
	Reset     time.Duration // Time until the window resets
}

// rateLimiter tracks the server-reported request budget and delays outgoing
// requests when the budget runs low. It never rejects a request, only
// delays it. The state is shared across all calls on one client; updates
// from concurrently in-flight responses are advisory, so a plain RWMutex
// is enough.
type rateLimiter struct {
	mu        sync.RWMutex
	remaining int
	reset     time.Duration
	logger    *slog.Logger
}

func newRateLimiter(remaining int, reset time.Duration, logger *slog.Logger) *rateLimiter {
	return &rateLimiter{
		remaining: remaining,
		reset:     reset,
		logger:    logger,
	}
}

// observe updates the state from a response's rate limit headers. When the
// headers are missing the state falls back to a conservative (5, 5s) rather
// than keeping stale values, which could otherwise allow an unbounded
// optimistic burst.
func (r *rateLimiter) observe(header http.Header) {
	remaining := rateLimitLowWater
	reset := DefaultRateLimitReset

	if v := header.Get(headerRateLimitRemaining); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			remaining = n
		}
	}
	if v := header.Get(headerRateLimitReset); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			reset = time.Duration(ms) * time.Millisecond
		}
	}

	r.mu.Lock()
	r.remaining = remaining
	r.reset = reset
	r.mu.Unlock()

	if r.logger != nil {
		r.logger.LogAttrs(context.Background(), slog.LevelDebug, "rate_limit",
			slog.Int("remaining", remaining),
			slog.Duration("reset", reset),
		)
	}
}

// gate blocks before an outgoing request when the remaining budget is at or
// below the low-water mark. The wait is twice the reported reset delay, a
// safety margin against clock skew between client and server windows. There
// is no upper bound on the wait; only context cancellation interrupts it.
func (r *rateLimiter) gate(ctx context.Context) error {
	r.mu.RLock()
	remaining := r.remaining
	reset := r.reset
	r.mu.RUnlock()

	if remaining > rateLimitLowWater {
		return nil
	}

	wait := 2 * reset
	if r.logger != nil {
		r.logger.LogAttrs(ctx, slog.LevelInfo, "rate_limit_wait",
			slog.Int("remaining", remaining),
			slog.Duration("wait", wait),
		)
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// snapshot returns the current state.
func (r *rateLimiter) snapshot() RateLimitInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return RateLimitInfo{Remaining: r.remaining, Reset: r.reset}
}
