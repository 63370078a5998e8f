package asset

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/blockdoc"
	"golang.org/x/time/rate"
)

// HostLimiter provides per-host rate limiting using token buckets.
// Requests to different hosts proceed concurrently while each host is
// limited on its own.
type HostLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rps      float64
}

// NewHostLimiter creates a new HostLimiter with the specified requests per
// second limit. Each host gets its own limiter with a burst of 1.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		limiters: make(map[string]*rate.Limiter),
		rps:      rps,
	}
}

// Wait blocks until the rate limit allows a request to the host.
// Returns an error if the context is canceled before the wait completes.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	h.mu.Lock()
	limiter, ok := h.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(h.rps), 1)
		h.limiters[host] = limiter
	}
	h.mu.Unlock()

	return limiter.Wait(ctx)
}

var _ blockdoc.AssetResolver = (*RateLimited)(nil)

// RateLimited waits on a HostLimiter before every resolution.
type RateLimited struct {
	next    blockdoc.AssetResolver
	limiter *HostLimiter
}

// NewRateLimited wraps next with per-host rate limiting.
func NewRateLimited(next blockdoc.AssetResolver, limiter *HostLimiter) *RateLimited {
	return &RateLimited{next: next, limiter: limiter}
}

// ResolveAsset implements blockdoc.AssetResolver.
func (r *RateLimited) ResolveAsset(ctx context.Context, ref blockdoc.AssetRef) (*blockdoc.AssetHandle, error) {
	host := ""
	if u, err := url.Parse(ref.URL); err == nil {
		host = u.Host
	}
	if err := r.limiter.Wait(ctx, host); err != nil {
		return nil, err
	}
	return r.next.ResolveAsset(ctx, ref)
}
