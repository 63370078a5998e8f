package asset_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/blockdoc"
	"github.com/fwojciec/blockdoc/asset"
	"github.com/fwojciec/blockdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiter(t *testing.T) {
	t.Parallel()

	t.Run("allows immediate request when under limit", func(t *testing.T) {
		t.Parallel()

		limiter := asset.NewHostLimiter(10) // 10 req/sec

		start := time.Now()
		err := limiter.Wait(context.Background(), "example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("rate limits requests to same host", func(t *testing.T) {
		t.Parallel()

		limiter := asset.NewHostLimiter(10) // 10 req/sec = 100ms between requests

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for rate limit")
	})

	t.Run("different hosts have independent limits", func(t *testing.T) {
		t.Parallel()

		limiter := asset.NewHostLimiter(10)

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		start := time.Now()
		err = limiter.Wait(context.Background(), "cdn.example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different host should not wait")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		limiter := asset.NewHostLimiter(1) // 1 req/sec

		err := limiter.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err = limiter.Wait(ctx, "example.com")
		assert.Error(t, err, "should fail when context times out")
	})

	t.Run("concurrent requests are serialized per host", func(t *testing.T) {
		t.Parallel()

		limiter := asset.NewHostLimiter(100)

		var wg sync.WaitGroup
		var completed atomic.Int32
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := limiter.Wait(context.Background(), "example.com"); err == nil {
					completed.Add(1)
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(5), completed.Load(), "all requests should complete")
	})
}

func TestRateLimited(t *testing.T) {
	t.Parallel()

	t.Run("waits per source host before resolving", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		next := &mock.AssetResolver{
			ResolveAssetFn: func(context.Context, blockdoc.AssetRef) (*blockdoc.AssetHandle, error) {
				calls.Add(1)
				return &blockdoc.AssetHandle{ID: "f"}, nil
			},
		}
		r := asset.NewRateLimited(next, asset.NewHostLimiter(10))

		_, err := r.ResolveAsset(context.Background(), blockdoc.AssetRef{URL: "https://example.com/a.png"})
		require.NoError(t, err)

		start := time.Now()
		handle, err := r.ResolveAsset(context.Background(), blockdoc.AssetRef{URL: "https://example.com/b.png"})
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Equal(t, "f", handle.ID)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond)
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("does not resolve when the context is done", func(t *testing.T) {
		t.Parallel()

		next := &mock.AssetResolver{
			ResolveAssetFn: func(context.Context, blockdoc.AssetRef) (*blockdoc.AssetHandle, error) {
				t.Fatal("resolver should not be called")
				return nil, nil
			},
		}
		limiter := asset.NewHostLimiter(1)
		require.NoError(t, limiter.Wait(context.Background(), "example.com"))

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		_, err := asset.NewRateLimited(next, limiter).ResolveAsset(ctx, blockdoc.AssetRef{URL: "https://example.com/a.png"})

		assert.Error(t, err)
	})
}
