package trafilatura

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/blockdoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements blockdoc.Extractor at compile time.
var _ blockdoc.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to isolate the main content of a full
// page. Tables, images and links are kept since they become blocks.
type Extractor struct {
	originalURL *url.URL
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithOriginalURL sets the page URL, used by trafilatura to resolve
// relative references.
func WithOriginalURL(u *url.URL) Option {
	return func(e *Extractor) {
		e.originalURL = u
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

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*blockdoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, blockdoc.Errorf(blockdoc.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
		IncludeLinks:   true,
		OriginalURL:    e.originalURL,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &blockdoc.ExtractResult{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
