package mock

import "github.com/fwojciec/blockdoc"

var _ blockdoc.GeneratorDetector = (*GeneratorDetector)(nil)

// GeneratorDetector is a mock implementation of blockdoc.GeneratorDetector.
type GeneratorDetector struct {
	DetectFn func(html string) blockdoc.Generator
}

func (d *GeneratorDetector) Detect(html string) blockdoc.Generator {
	return d.DetectFn(html)
}

var _ blockdoc.ProfileRegistry = (*ProfileRegistry)(nil)

// ProfileRegistry is a mock implementation of blockdoc.ProfileRegistry.
type ProfileRegistry struct {
	ProfileForFn func(html string) blockdoc.Profile
}

func (r *ProfileRegistry) ProfileFor(html string) blockdoc.Profile {
	return r.ProfileForFn(html)
}
