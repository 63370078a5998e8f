package blockdoc

import "context"

// Converter converts documentation HTML into a block document.
type Converter interface {
	// Convert transforms a single HTML document. It either returns the full
	// result or fails as a whole; structural content is never silently
	// dropped. Blocking happens only inside the injected AssetResolver.
	Convert(ctx context.Context, html string) (*Result, error)
}

// Previewer renders normalized HTML in a human-readable form for
// debugging conversions.
type Previewer interface {
	Preview(html string) (string, error)
}

// HTMLNormalizer repairs and cleans raw HTML before it is rendered by
// tools other than the Converter.
type HTMLNormalizer interface {
	NormalizeHTML(html string) (string, error)
}
