// Package limiter provides a token bucket whose rate can be adjusted
// while it is in use.
package limiter

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DynamicRateLimiter guards the credential endpoints (login, register,
// session exchange). Refill interval and burst are taken from the
// rate_limit config section and can be retuned at runtime without
// recreating the limiter.
type DynamicRateLimiter struct {
	limiter  *rate.Limiter
	updates  chan rateParams
	interval time.Duration
	burst    int
}

type rateParams struct {
	interval time.Duration
	burst    int
}

// NewDynamicRateLimiter returns a limiter refilling one token per
// interval with the given burst capacity.
func NewDynamicRateLimiter(interval time.Duration, burst int) *DynamicRateLimiter {
	limiter := rate.NewLimiter(rate.Every(interval), burst)
	updates := make(chan rateParams)
	go func() {
		for params := range updates {
			limiter.SetLimit(rate.Every(params.interval))
			limiter.SetBurst(params.burst)
		}
	}()
	return &DynamicRateLimiter{
		limiter:  limiter,
		interval: interval,
		burst:    burst,
		updates:  updates,
	}
}

// Wait blocks until a token is available or the context is done.
func (l *DynamicRateLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

// Allow reports whether a token is available and consumes it.
func (l *DynamicRateLimiter) Allow() bool {
	return l.limiter.Allow()
}

// Update retunes the refill interval and burst of the live limiter.
func (l *DynamicRateLimiter) Update(interval time.Duration, burst int) {
	l.updates <- rateParams{interval: interval, burst: burst}
}
