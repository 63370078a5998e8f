// Package readability isolates the main content of full pages with
// go-readability. It is an alternative to the trafilatura extractor that
// keeps more of the page's markup intact.
package readability

import (
	"net/url"
	"strings"

	"github.com/fwojciec/blockdoc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements blockdoc.Extractor at compile time.
var _ blockdoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct {
	pageURL *url.URL
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPageURL sets the page URL, used to resolve relative links and media
// sources in the extracted content.
func WithPageURL(u *url.URL) Option {
	return func(e *Extractor) {
		e.pageURL = u
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content. It returns
// EINVALID for empty input and for pages without readable content.
func (e *Extractor) Extract(rawHTML string) (*blockdoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, blockdoc.Errorf(blockdoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), e.pageURL)
	if err != nil {
		return nil, blockdoc.Errorf(blockdoc.EINVALID, "failed to extract content: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, blockdoc.Errorf(blockdoc.EINVALID, "no readable content")
	}

	return &blockdoc.ExtractResult{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
