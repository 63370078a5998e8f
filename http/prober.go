// Package http provides an HTTP-based implementation of
// blockdoc.AssetResolver that checks media sources are reachable before
// they are referenced externally.
package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/blockdoc"
)

// DefaultProbeTimeout is the default timeout for probe requests.
const DefaultProbeTimeout = 10 * time.Second

// Ensure Prober implements blockdoc.AssetResolver at compile time.
var _ blockdoc.AssetResolver = (*Prober)(nil)

// Prober resolves media by requesting the source and checking the status
// and content type. The handle carries the final URL after redirects.
// Nothing is uploaded.
type Prober struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout sets the timeout for probe requests.
// Defaults to DefaultProbeTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		p.timeout = d
	}
}

// WithUserAgent sets the User-Agent header of probe requests.
func WithUserAgent(ua string) Option {
	return func(p *Prober) {
		p.userAgent = ua
	}
}

// NewProber creates a new HTTP-based Prober.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		timeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.client = &http.Client{
		Timeout: p.timeout,
	}

	return p
}

// ResolveAsset implements blockdoc.AssetResolver. A source that answers
// with a non-media content type returns a nil handle. Network errors and
// 5xx responses return an error so callers may retry them.
func (p *Prober) ResolveAsset(ctx context.Context, ref blockdoc.AssetRef) (*blockdoc.AssetHandle, error) {
	resp, err := p.do(ctx, http.MethodHead, ref.URL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusMethodNotAllowed {
		resp, err = p.do(ctx, http.MethodGet, ref.URL)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, ref.URL)
	case resp.StatusCode != http.StatusOK:
		return nil, blockdoc.Errorf(blockdoc.EINVALID, "HTTP %d for %s", resp.StatusCode, ref.URL)
	}

	if !acceptsContentType(ref.Kind, resp.Header.Get("Content-Type")) {
		return nil, nil
	}
	return &blockdoc.AssetHandle{URL: resp.Request.URL.String()}, nil
}

func (p *Prober) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, blockdoc.Errorf(blockdoc.EINVALID, "invalid source %q: %v", url, err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	resp.Body.Close()
	return resp, nil
}

// acceptsContentType reports whether a response of the given content type
// can back media of the given kind. Video sources may be embeds served as
// HTML pages.
func acceptsContentType(kind blockdoc.AssetKind, contentType string) bool {
	ct := strings.ToLower(strings.TrimSpace(contentType))
	if ct == "" {
		return true
	}
	switch kind {
	case blockdoc.AssetVideo:
		return strings.HasPrefix(ct, "video/") || strings.HasPrefix(ct, "text/html")
	default:
		return strings.HasPrefix(ct, "image/")
	}
}
