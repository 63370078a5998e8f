package asset_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/fwojciec/blockdoc"
	"github.com/fwojciec/blockdoc/asset"
	"github.com/fwojciec/blockdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fastDelays = []time.Duration{time.Millisecond, time.Millisecond, time.Millisecond}

func TestRetrying(t *testing.T) {
	t.Parallel()

	t.Run("returns the first successful handle", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		next := &mock.AssetResolver{
			ResolveAssetFn: func(context.Context, blockdoc.AssetRef) (*blockdoc.AssetHandle, error) {
				attempts++
				if attempts < 3 {
					return nil, errors.New("temporary")
				}
				return &blockdoc.AssetHandle{ID: "f1"}, nil
			},
		}
		var logs []string
		r := asset.NewRetrying(next,
			asset.WithDelays(fastDelays),
			asset.WithLogger(func(format string, args ...any) { logs = append(logs, fmt.Sprintf(format, args...)) }))

		handle, err := r.ResolveAsset(context.Background(), blockdoc.AssetRef{URL: "https://example.com/a.png"})

		require.NoError(t, err)
		assert.Equal(t, "f1", handle.ID)
		assert.Equal(t, 3, attempts)
		assert.Len(t, logs, 2)
		assert.Contains(t, logs[0], "https://example.com/a.png")
	})

	t.Run("gives up after the configured retries", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		next := &mock.AssetResolver{
			ResolveAssetFn: func(context.Context, blockdoc.AssetRef) (*blockdoc.AssetHandle, error) {
				attempts++
				return nil, errors.New("unavailable")
			},
		}

		_, err := asset.NewRetrying(next, asset.WithDelays(fastDelays)).ResolveAsset(context.Background(), blockdoc.AssetRef{})

		require.Error(t, err)
		assert.Equal(t, "unavailable", err.Error())
		assert.Equal(t, 4, attempts)
	})

	t.Run("does not retry invalid sources", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		next := &mock.AssetResolver{
			ResolveAssetFn: func(context.Context, blockdoc.AssetRef) (*blockdoc.AssetHandle, error) {
				attempts++
				return nil, blockdoc.Errorf(blockdoc.EINVALID, "unsupported content type")
			},
		}

		_, err := asset.NewRetrying(next, asset.WithDelays(fastDelays)).ResolveAsset(context.Background(), blockdoc.AssetRef{})

		assert.Equal(t, blockdoc.EINVALID, blockdoc.ErrorCode(err))
		assert.Equal(t, 1, attempts)
	})

	t.Run("does not retry nil handles", func(t *testing.T) {
		t.Parallel()

		attempts := 0
		next := &mock.AssetResolver{
			ResolveAssetFn: func(context.Context, blockdoc.AssetRef) (*blockdoc.AssetHandle, error) {
				attempts++
				return nil, nil
			},
		}

		handle, err := asset.NewRetrying(next, asset.WithDelays(fastDelays)).ResolveAsset(context.Background(), blockdoc.AssetRef{})

		require.NoError(t, err)
		assert.Nil(t, handle)
		assert.Equal(t, 1, attempts)
	})

	t.Run("stops waiting when the context is canceled", func(t *testing.T) {
		t.Parallel()

		next := &mock.AssetResolver{
			ResolveAssetFn: func(context.Context, blockdoc.AssetRef) (*blockdoc.AssetHandle, error) {
				return nil, errors.New("temporary")
			},
		}
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := asset.NewRetrying(next, asset.WithDelays([]time.Duration{time.Hour})).ResolveAsset(ctx, blockdoc.AssetRef{})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("uses default delays", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []time.Duration{500 * time.Millisecond, time.Second, 2 * time.Second}, asset.DefaultRetryDelays())
	})
}
