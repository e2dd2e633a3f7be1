// Package ratelimit provides an adaptive rate limiter for outgoing calls to
// fragile third-party endpoints. The rate rises on success and falls when the
// remote side reports overload. It never retries: callers decide what a
// failure means.
//
// Example usage:
//
//	lim := ratelimit.NewAdaptiveLimiter(2, 1, 5, 0.5, 0.5)
//	if err := lim.Wait(ctx); err != nil {
//	    return err
//	}
//	err := doRequest()
//	lim.Observe(err)
package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// AdaptiveLimiter manages a rate limit that adjusts automatically based
// on the outcome of requests. Thread-safe.
type AdaptiveLimiter struct {
	mu        sync.RWMutex
	limiter   *rate.Limiter
	minLimit  rate.Limit
	maxLimit  rate.Limit
	stepUp    rate.Limit
	stepDown  float64
	lastError time.Time
}

// NewAdaptiveLimiter creates an AdaptiveLimiter.
//
// Parameters:
//   - initial: starting requests per second
//   - min: minimum allowed rate
//   - max: maximum allowed rate
//   - stepUp: increment on success
//   - stepDown: multiplier applied on overload (e.g. 0.5 to halve)
func NewAdaptiveLimiter(initial, min, max, stepUp rate.Limit, stepDown float64) *AdaptiveLimiter {
	if min <= 0 {
		min = 0.1
	}
	if initial < min {
		initial = min
	}
	if max < initial {
		max = initial
	}
	return &AdaptiveLimiter{
		limiter:  rate.NewLimiter(initial, burstFor(initial)),
		minLimit: min,
		maxLimit: max,
		stepUp:   stepUp,
		stepDown: stepDown,
	}
}

// Wait blocks until a token is available or the context is canceled.
func (a *AdaptiveLimiter) Wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

// Observe feeds a request outcome back into the limiter.
func (a *AdaptiveLimiter) Observe(err error) {
	switch {
	case err == nil:
		a.Success()
	case IsOverload(err):
		a.RateLimited()
	}
}

// Success increases the rate after a successful request, unless an overload
// was seen in the last ten seconds.
func (a *AdaptiveLimiter) Success() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if time.Since(a.lastError) > 10*time.Second {
		a.adjustLimit(a.limiter.Limit() + a.stepUp)
	}
}

// RateLimited reduces the rate after the server signalled overload.
func (a *AdaptiveLimiter) RateLimited() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastError = time.Now()
	a.adjustLimit(rate.Limit(float64(a.limiter.Limit()) * a.stepDown))
}

// CurrentLimit returns the current requests per second.
func (a *AdaptiveLimiter) CurrentLimit() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return float64(a.limiter.Limit())
}

// adjustLimit sets the limiter to a new rate, respecting min/max boundaries.
func (a *AdaptiveLimiter) adjustLimit(newLimit rate.Limit) {
	if newLimit > a.maxLimit {
		newLimit = a.maxLimit
	} else if newLimit < a.minLimit {
		newLimit = a.minLimit
	}

	if newLimit != a.limiter.Limit() {
		a.limiter.SetLimit(newLimit)
		a.limiter.SetBurst(burstFor(newLimit))
	}
}

func burstFor(l rate.Limit) int {
	return max(1, int(l))
}

// HTTPError is implemented by errors that carry an HTTP status code.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is a minimal HTTPError.
type StatusError struct {
	Code int
	Op   string
}

func (e *StatusError) Error() string {
	return e.Op + ": unexpected status " + http.StatusText(e.Code)
}

func (e *StatusError) StatusCode() int { return e.Code }

// IsOverload reports whether err carries a 429 or 5xx status.
func IsOverload(err error) bool {
	var httpErr HTTPError
	if !errors.As(err, &httpErr) {
		return false
	}
	code := httpErr.StatusCode()
	return code == http.StatusTooManyRequests || (code >= 500 && code < 600)
}
