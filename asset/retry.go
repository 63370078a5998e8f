// Package asset provides decorators for blockdoc.AssetResolver. Retry and
// rate limiting belong to the injected capability, never to the converter.
package asset

import (
	"context"
	"time"

	"github.com/fwojciec/blockdoc"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for resolve retries:
// 500ms, 1s, 2s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{500 * time.Millisecond, 1 * time.Second, 2 * time.Second}
}

var _ blockdoc.AssetResolver = (*Retrying)(nil)

// Retrying retries failed resolutions with backoff. Errors with code
// EINVALID are not retried, and neither are nil handles, which mean the
// source cannot be materialized.
type Retrying struct {
	next   blockdoc.AssetResolver
	delays []time.Duration
	logger LogFunc
}

// RetryOption configures a Retrying resolver.
type RetryOption func(*Retrying)

// WithDelays sets the delays between attempts. The number of delays is the
// number of retries. Defaults to DefaultRetryDelays().
func WithDelays(delays []time.Duration) RetryOption {
	return func(r *Retrying) {
		r.delays = delays
	}
}

// WithLogger sets a function called for each retry.
func WithLogger(logger LogFunc) RetryOption {
	return func(r *Retrying) {
		r.logger = logger
	}
}

// NewRetrying wraps next with retries.
func NewRetrying(next blockdoc.AssetResolver, opts ...RetryOption) *Retrying {
	r := &Retrying{
		next:   next,
		delays: DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveAsset implements blockdoc.AssetResolver.
func (r *Retrying) ResolveAsset(ctx context.Context, ref blockdoc.AssetRef) (*blockdoc.AssetHandle, error) {
	maxAttempts := len(r.delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		handle, err := r.next.ResolveAsset(ctx, ref)
		if err == nil {
			return handle, nil
		}
		lastErr = err

		if blockdoc.ErrorCode(err) == blockdoc.EINVALID || attempt >= maxAttempts-1 {
			break
		}

		if r.logger != nil {
			r.logger("  retry %s (attempt %d): %v", ref.URL, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.delays[attempt]):
		}
	}

	return nil, lastErr
}
