package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/blockdoc"
)

// Ensure LoggingRegistry implements blockdoc.ProfileRegistry.
var _ blockdoc.ProfileRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a ProfileRegistry with logging of the selected
// generator profile.
type LoggingRegistry struct {
	next   blockdoc.ProfileRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next blockdoc.ProfileRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// ProfileFor delegates to the wrapped registry and logs the generator.
func (r *LoggingRegistry) ProfileFor(html string) blockdoc.Profile {
	begin := time.Now()
	p := r.next.ProfileFor(html)
	name := string(p.Generator)
	if p.Generator == blockdoc.GeneratorUnknown {
		name = "(unknown)"
	}
	r.logger.Debug("generator detection",
		"generator", name,
		"duration", time.Since(begin),
	)
	return p
}
