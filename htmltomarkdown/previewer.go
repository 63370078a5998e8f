package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/blockdoc"
)

// Ensure Previewer implements blockdoc.Previewer at compile time.
var _ blockdoc.Previewer = (*Previewer)(nil)

// Previewer wraps html-to-markdown to render HTML as Markdown, for
// eyeballing what the block converter will see.
type Previewer struct {
	conv       *converter.Converter
	normalizer blockdoc.HTMLNormalizer
}

// Option configures a Previewer.
type Option func(*Previewer)

// WithNormalizer normalizes HTML before rendering it.
func WithNormalizer(n blockdoc.HTMLNormalizer) Option {
	return func(p *Previewer) {
		p.normalizer = n
	}
}

// NewPreviewer creates a new Previewer.
func NewPreviewer(opts ...Option) *Previewer {
	p := &Previewer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Preview transforms HTML content into Markdown.
func (p *Previewer) Preview(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", blockdoc.Errorf(blockdoc.EINVALID, "empty HTML input")
	}

	if p.normalizer != nil {
		normalized, err := p.normalizer.NormalizeHTML(html)
		if err != nil {
			return "", err
		}
		html = normalized
	}

	result, err := p.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	return result, nil
}
