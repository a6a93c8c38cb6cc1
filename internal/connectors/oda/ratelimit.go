package oda

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the proactive throttle rate in requests per second.
	DefaultRate = 2.0

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"

	// MaxRetryAfter caps how long a Retry-After header can hold us back.
	MaxRetryAfter = 5 * time.Minute
)

// RateLimiter throttles requests to the upstream API.
// It combines a proactive token bucket with the upstream's Retry-After hints.
type RateLimiter struct {
	mu         sync.Mutex
	retryAfter time.Time     // From API header
	bucket     *rate.Limiter // Proactive throttling
}

// NewRateLimiter creates a limiter allowing perSecond requests per second.
// A non-positive rate uses DefaultRate.
func NewRateLimiter(perSecond float64) *RateLimiter {
	if perSecond <= 0 {
		perSecond = DefaultRate
	}
	return &RateLimiter{
		bucket: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	// 1. Honour a pending Retry-After (reactive)
	r.mu.Lock()
	until := r.retryAfter
	r.mu.Unlock()

	if wait := time.Until(until); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	// 2. Check token bucket (proactive throttling)
	return r.bucket.Wait(ctx)
}

// UpdateFromResponse records a Retry-After hint from a throttled response.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return
	}

	v := resp.Header.Get(HeaderRetryAfter)
	if v == "" {
		return
	}

	var wait time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		wait = time.Duration(secs) * time.Second
	} else if at, err := http.ParseTime(v); err == nil {
		wait = time.Until(at)
	}
	if wait <= 0 {
		return
	}
	if wait > MaxRetryAfter {
		wait = MaxRetryAfter
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.retryAfter = time.Now().Add(wait)
}

// RetryAfter returns when the upstream allows the next request.
func (r *RateLimiter) RetryAfter() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.retryAfter
}
