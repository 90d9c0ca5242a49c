package service

import (
	"context"
	"sync"

	"nft_grinder/internal/config"

	"golang.org/x/time/rate"
)

// RateLimiterRegistry hands out token-bucket limiters for provider requests.
// With scope "global" every chain shares one bucket (one API key), with "chain"
// each chain id gets its own bucket, and "none" disables limiting.
type RateLimiterRegistry struct {
	scope string
	limit rate.Limit
	burst int

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewRateLimiterRegistry creates a registry for the given scope.
func NewRateLimiterRegistry(scope string, requestsPerSecond float64, burst int) *RateLimiterRegistry {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiterRegistry{
		scope:    scope,
		limit:    rate.Limit(requestsPerSecond),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Limiter returns the limiter used for chainID, or nil when limiting is disabled.
func (r *RateLimiterRegistry) Limiter(chainID string) *rate.Limiter {
	if r == nil || r.scope == config.RateLimitScopeNone {
		return nil
	}
	key := chainID
	if r.scope == config.RateLimitScopeGlobal {
		key = ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.limiters[key]
	if !ok {
		l = rate.NewLimiter(r.limit, r.burst)
		r.limiters[key] = l
	}
	return l
}

// Wait blocks until a request on chainID is allowed or ctx is done.
func (r *RateLimiterRegistry) Wait(ctx context.Context, chainID string) error {
	l := r.Limiter(chainID)
	if l == nil {
		return nil
	}
	return l.Wait(ctx)
}
