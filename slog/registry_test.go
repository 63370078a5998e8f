package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/blockdoc"
	"github.com/fwojciec/blockdoc/mock"
	bslog "github.com/fwojciec/blockdoc/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingRegistry_ProfileFor(t *testing.T) {
	t.Parallel()

	t.Run("logs detected generator at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.ProfileRegistry{
			ProfileForFn: func(html string) blockdoc.Profile {
				return blockdoc.Profile{Generator: blockdoc.GeneratorDocusaurus}
			},
		}

		p := bslog.NewLoggingRegistry(inner, logger).ProfileFor("<html></html>")

		assert.Equal(t, blockdoc.GeneratorDocusaurus, p.Generator)
		output := buf.String()
		assert.Contains(t, output, "generator detection")
		assert.Contains(t, output, "generator=docusaurus")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs unknown generators", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.ProfileRegistry{
			ProfileForFn: func(html string) blockdoc.Profile {
				return blockdoc.Profile{}
			},
		}

		bslog.NewLoggingRegistry(inner, logger).ProfileFor("<html></html>")

		assert.Contains(t, buf.String(), "generator=(unknown)")
	})
}
