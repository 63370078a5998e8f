package mock

import "github.com/fwojciec/blockdoc"

var (
	_ blockdoc.Extractor      = (*Extractor)(nil)
	_ blockdoc.HTMLNormalizer = (*HTMLNormalizer)(nil)
)

// Extractor is a mock implementation of blockdoc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*blockdoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*blockdoc.ExtractResult, error) {
	return e.ExtractFn(html)
}

// HTMLNormalizer is a mock implementation of blockdoc.HTMLNormalizer.
type HTMLNormalizer struct {
	NormalizeHTMLFn func(html string) (string, error)
}

func (n *HTMLNormalizer) NormalizeHTML(html string) (string, error) {
	return n.NormalizeHTMLFn(html)
}
