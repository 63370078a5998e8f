package goquery

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/blockdoc"
	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

var _ blockdoc.Converter = (*Converter)(nil)

// Converter converts documentation HTML into blocks using goquery.
type Converter struct {
	opts      blockdoc.Options
	validator blockdoc.URLValidator
	resolver  blockdoc.AssetResolver
	registry  blockdoc.ProfileRegistry
	idPrefix  string
	normOpts  []NormalizerOption
}

// Option configures a Converter.
type Option func(*Converter)

// WithOptions sets the conversion options. Defaults to
// blockdoc.DefaultOptions().
func WithOptions(opts blockdoc.Options) Option {
	return func(c *Converter) {
		c.opts = opts
	}
}

// WithURLValidator sets the validator for link targets and media sources.
// Defaults to blockdoc.DefaultURLValidator.
func WithURLValidator(v blockdoc.URLValidator) Option {
	return func(c *Converter) {
		c.validator = v
	}
}

// WithAssetResolver sets the capability that materializes media. Without
// one, media with a valid source URL is referenced externally.
func WithAssetResolver(r blockdoc.AssetResolver) Option {
	return func(c *Converter) {
		c.resolver = r
	}
}

// WithProfileRegistry enables generator-specific selectors.
func WithProfileRegistry(r blockdoc.ProfileRegistry) Option {
	return func(c *Converter) {
		c.registry = r
	}
}

// WithIDPrefix sets the prefix of block and marker ids. Defaults to a
// random prefix per conversion.
func WithIDPrefix(prefix string) Option {
	return func(c *Converter) {
		c.idPrefix = prefix
	}
}

// WithNormalizerOptions passes options to the DOM normalizer.
func WithNormalizerOptions(opts ...NormalizerOption) Option {
	return func(c *Converter) {
		c.normOpts = append(c.normOpts, opts...)
	}
}

// NewConverter creates a new Converter. It returns an EINVALID error when
// the options are invalid.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		opts:      blockdoc.DefaultOptions(),
		validator: blockdoc.DefaultURLValidator{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.opts.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Convert implements blockdoc.Converter.
func (c *Converter) Convert(ctx context.Context, rawHTML string) (*blockdoc.Result, error) {
	var profile blockdoc.Profile
	if c.registry != nil {
		profile = c.registry.ProfileFor(rawHTML)
	}

	normalizer := NewNormalizer(append([]NormalizerOption{WithMaxPasses(c.opts.MaxUnwrapPasses)}, c.normOpts...)...)
	norm, err := normalizer.NormalizeProfile(rawHTML, profile)
	if err != nil {
		return nil, err
	}

	prefix := c.idPrefix
	if prefix == "" {
		prefix = uuid.NewString()[:8]
	}

	x := newExtraction(norm.Doc, c.opts, c.validator, prefix)
	x.callout = joinSelectors(DefaultCalloutSelector, profile.CalloutSelector)

	report := blockdoc.Report{
		Source:       SourceCounts(norm.Doc, x.callout),
		Repairs:      norm.Repairs,
		UnwrapPasses: norm.Passes,
	}
	if !norm.Converged {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("wrappers remain after %d unwrap passes", norm.Passes))
	}

	tree := x.contents(contentRoots(norm.Doc))
	x.layout(tree, 0)

	report.MediaFailures = c.resolveMedia(ctx, x)

	col, err := blockdoc.CollectMarkers(tree, x.pending)
	if err != nil {
		return nil, fmt.Errorf("collect markers: %w", err)
	}
	col.Prune()
	if err := blockdoc.VerifyMarkers(col.Primary, col.Deferred); err != nil {
		return nil, fmt.Errorf("verify markers: %w", err)
	}

	trees := [][]*blockdoc.Block{col.Primary}
	for _, d := range col.Deferred {
		trees = append(trees, d.Blocks)
	}
	report.Output = blockdoc.CountBlocks(trees...)
	report.Warnings = append(report.Warnings, x.warnings...)
	for _, m := range report.Mismatches() {
		report.Warnings = append(report.Warnings, "fewer blocks than source elements: "+m)
	}

	return &blockdoc.Result{
		Title:       title(norm.Doc),
		SourceHash:  fmt.Sprintf("%x", xxhash.Sum64String(rawHTML)),
		PrimaryTree: col.Primary,
		Deferred:    col.Deferred,
		HasVideos:   report.Output.Videos > 0,
		Report:      report,
	}, nil
}

// contentRoots returns the top-level nodes to extract: the body's children
// or, for documents without one, the children of the document node.
func contentRoots(doc *goquery.Document) []*html.Node {
	if body := doc.Find("body"); body.Length() > 0 {
		return children(body.Get(0))
	}
	var out []*html.Node
	for _, n := range doc.Nodes {
		out = append(out, children(n)...)
	}
	return out
}

// title returns the document title, falling back to the first h1.
func title(doc *goquery.Document) string {
	if t := strings.TrimSpace(blockdoc.NormalizeText(doc.Find("title").First().Text(), false)); t != "" {
		return t
	}
	return strings.TrimSpace(blockdoc.NormalizeText(doc.Find("h1").First().Text(), false))
}

// mediaOutcome is the resolution result of one media block.
type mediaOutcome struct {
	handle *blockdoc.AssetHandle
	keep   bool
	reason string
}

// resolveMedia resolves every media block concurrently and applies the
// failure policy to the ones that cannot be materialized. Failures are
// local: they never fail the conversion. It returns the number of failures.
func (c *Converter) resolveMedia(ctx context.Context, x *extraction) int {
	if len(x.media) == 0 {
		return 0
	}

	outcomes := make([]mediaOutcome, len(x.media))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.AssetConcurrency)
	for i, b := range x.media {
		g.Go(func() error {
			outcomes[i] = c.resolveOne(gctx, b)
			return nil
		})
	}
	_ = g.Wait()

	failures := 0
	for i, b := range x.media {
		o := outcomes[i]
		p := b.Payload.(*blockdoc.MediaPayload)
		if o.keep {
			if o.handle != nil {
				p.Source.Asset = o.handle
			}
			continue
		}
		failures++
		x.warnf("%s %s not resolved: %s", b.Kind, p.Source.URL, o.reason)
		c.degrade(b)
	}
	return failures
}

func (c *Converter) resolveOne(ctx context.Context, b *blockdoc.Block) mediaOutcome {
	p := b.Payload.(*blockdoc.MediaPayload)
	valid := c.validator.ValidImageSource(p.Source.URL)

	if c.resolver == nil {
		if !valid {
			return mediaOutcome{reason: "invalid source"}
		}
		return mediaOutcome{keep: true}
	}

	kind := blockdoc.AssetImage
	if b.Kind == blockdoc.KindVideo {
		kind = blockdoc.AssetVideo
	}
	handle, err := c.resolver.ResolveAsset(ctx, blockdoc.AssetRef{URL: p.Source.URL, Kind: kind, Alt: p.Alt})
	if err != nil {
		return mediaOutcome{reason: err.Error()}
	}
	if handle == nil {
		if valid {
			// Fall back to referencing the source externally.
			return mediaOutcome{keep: true}
		}
		return mediaOutcome{reason: "no asset for source"}
	}
	return mediaOutcome{keep: true, handle: handle}
}

// degrade applies the media failure policy to b.
func (c *Converter) degrade(b *blockdoc.Block) {
	p := b.Payload.(*blockdoc.MediaPayload)
	if c.opts.MediaFailure != blockdoc.MediaPlaceholder {
		b.Payload = nil
		return
	}

	label := "Image"
	if b.Kind == blockdoc.KindVideo {
		label = "Video"
	}
	text := "[" + label + "]"
	if desc := firstNonEmpty(p.Alt, blockdoc.PlainText(p.Caption)); desc != "" {
		text = "[" + label + ": " + strings.TrimSpace(desc) + "]"
	}
	b.Kind = blockdoc.KindParagraph
	b.Payload = &blockdoc.TextPayload{Runs: blockdoc.SplitRuns([]blockdoc.TextRun{{
		Text:        text,
		Annotations: blockdoc.Annotations{Italic: true},
	}}, c.opts.MaxRunLength)}
}
