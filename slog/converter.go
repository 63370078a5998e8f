// Package slog provides log/slog decorators for blockdoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blockdoc"
)

// Ensure LoggingConverter implements blockdoc.Converter.
var _ blockdoc.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with logging of every conversion.
// Report warnings are logged at WARN level.
type LoggingConverter struct {
	next   blockdoc.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next blockdoc.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter and logs the outcome.
func (c *LoggingConverter) Convert(ctx context.Context, html string) (*blockdoc.Result, error) {
	begin := time.Now()
	result, err := c.next.Convert(ctx, html)
	if err != nil {
		c.logger.Error("convert",
			"bytes", len(html),
			"code", blockdoc.ErrorCode(err),
			"error", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}

	out := result.Report.Output
	c.logger.Info("convert",
		"title", result.Title,
		"blocks", len(result.PrimaryTree),
		"deferred", len(result.Deferred),
		"tables", out.Tables,
		"images", out.Images,
		"videos", out.Videos,
		"warnings", len(result.Report.Warnings),
		"duration", time.Since(begin),
	)
	for _, w := range result.Report.Warnings {
		c.logger.Warn("convert", "warning", w)
	}
	return result, nil
}
