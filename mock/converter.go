package mock

import (
	"context"

	"github.com/fwojciec/blockdoc"
)

var _ blockdoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of blockdoc.Converter.
type Converter struct {
	ConvertFn func(ctx context.Context, html string) (*blockdoc.Result, error)
}

func (c *Converter) Convert(ctx context.Context, html string) (*blockdoc.Result, error) {
	return c.ConvertFn(ctx, html)
}

var _ blockdoc.Previewer = (*Previewer)(nil)

// Previewer is a mock implementation of blockdoc.Previewer.
type Previewer struct {
	PreviewFn func(html string) (string, error)
}

func (p *Previewer) Preview(html string) (string, error) {
	return p.PreviewFn(html)
}
