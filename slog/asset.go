package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blockdoc"
)

// Ensure LoggingResolver implements blockdoc.AssetResolver.
var _ blockdoc.AssetResolver = (*LoggingResolver)(nil)

// LoggingResolver wraps an AssetResolver with logging.
type LoggingResolver struct {
	next   blockdoc.AssetResolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next blockdoc.AssetResolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// ResolveAsset delegates to the wrapped resolver, logging failures at
// WARN and successes at DEBUG.
func (r *LoggingResolver) ResolveAsset(ctx context.Context, ref blockdoc.AssetRef) (*blockdoc.AssetHandle, error) {
	begin := time.Now()
	handle, err := r.next.ResolveAsset(ctx, ref)
	switch {
	case err != nil:
		r.logger.Warn("resolve asset",
			"url", ref.URL,
			"kind", string(ref.Kind),
			"error", err,
			"duration", time.Since(begin),
		)
	case handle == nil:
		r.logger.Warn("resolve asset",
			"url", ref.URL,
			"kind", string(ref.Kind),
			"error", "no asset",
			"duration", time.Since(begin),
		)
	default:
		r.logger.Debug("resolve asset",
			"url", ref.URL,
			"kind", string(ref.Kind),
			"asset", handle.ID,
			"duration", time.Since(begin),
		)
	}
	return handle, err
}
