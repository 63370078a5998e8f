package goquery

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/blockdoc"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultCalloutSelector matches containers that become callouts.
const DefaultCalloutSelector = ".note, .notice, .tip, .hint, .important, .warning, .caution, " +
	".attention, .danger, .callout, .admonition, aside"

// maxColspan bounds colspan expansion of malformed tables.
const maxColspan = 50

// calloutStyle is the icon and color of a callout type.
type calloutStyle struct {
	class string
	icon  string
	color blockdoc.Color
}

// calloutStyles are checked in order; the first class present wins.
var calloutStyles = []calloutStyle{
	{"danger", "⛔", blockdoc.ColorRedBackground},
	{"warning", "⚠️", blockdoc.ColorRedBackground},
	{"caution", "⚠️", blockdoc.ColorYellowBackground},
	{"attention", "⚠️", blockdoc.ColorYellowBackground},
	{"important", "❗", blockdoc.ColorYellowBackground},
	{"tip", "💡", blockdoc.ColorGreenBackground},
	{"hint", "💡", blockdoc.ColorGreenBackground},
}

var defaultCalloutStyle = calloutStyle{icon: "ℹ️", color: blockdoc.ColorBlueBackground}

// videoHosts are iframe hosts embedded as video blocks.
var videoHosts = []string{"youtube.com", "youtube-nocookie.com", "youtu.be", "vimeo.com", "loom.com", "wistia.com", "wistia.net"}

// extraction is the per-document conversion context. It owns the marker
// table and the id sequence; nothing in it outlives one conversion.
type extraction struct {
	doc     *goquery.Document
	opts    blockdoc.Options
	seg     *segmenter
	base    *url.URL
	callout string

	idPrefix string
	seq      int

	// pending maps marker ids to the children deferred at that marker.
	pending map[string][]*blockdoc.Block

	// media lists image and video blocks awaiting asset resolution.
	media []*blockdoc.Block

	warnings []string
}

func newExtraction(doc *goquery.Document, opts blockdoc.Options, validator blockdoc.URLValidator, idPrefix string) *extraction {
	var base *url.URL
	if opts.BaseURL != "" {
		base, _ = url.Parse(opts.BaseURL)
	}
	return &extraction{
		doc:  doc,
		opts: opts,
		seg: &segmenter{
			keepSoftBreaks: opts.SkipSoftBreakNormalization,
			maxRunLength:   opts.MaxRunLength,
			base:           base,
			validator:      validator,
		},
		base:     base,
		callout:  DefaultCalloutSelector,
		idPrefix: idPrefix,
		pending:  make(map[string][]*blockdoc.Block),
	}
}

func (x *extraction) newID(kind string) string {
	x.seq++
	return fmt.Sprintf("%s-%s%d", x.idPrefix, kind, x.seq)
}

func (x *extraction) warnf(format string, args ...any) {
	x.warnings = append(x.warnings, fmt.Sprintf(format, args...))
}

// contents extracts the children of a container. Consecutive inline nodes
// form paragraphs; whitespace-only groups are skipped.
func (x *extraction) contents(nodes []*html.Node) []*blockdoc.Block {
	var out []*blockdoc.Block
	var inline []*html.Node
	flush := func() {
		if len(inline) == 0 {
			return
		}
		if runs := x.seg.Runs(inline); len(runs) > 0 {
			out = append(out, blockdoc.NewParagraph(runs))
		}
		out = append(out, x.drainImages()...)
		inline = nil
	}
	for _, n := range nodes {
		if isInline(n) {
			inline = append(inline, n)
			continue
		}
		flush()
		out = append(out, x.element(n)...)
	}
	flush()
	return out
}

// element maps one element to zero or more blocks.
func (x *extraction) element(n *html.Node) []*blockdoc.Block {
	if n.Type != html.ElementNode {
		return nil
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		runs := x.seg.Runs(children(n))
		return append([]*blockdoc.Block{blockdoc.NewHeading(level, runs)}, x.drainImages()...)
	case atom.P:
		if x.isCallout(n) {
			return []*blockdoc.Block{x.calloutBlock(n)}
		}
		return x.paragraph(n)
	case atom.Ul, atom.Ol:
		return x.list(n, n.DataAtom == atom.Ol)
	case atom.Li:
		return []*blockdoc.Block{x.listItem(n, false)}
	case atom.Table:
		return x.table(n)
	case atom.Figure:
		return x.figure(n)
	case atom.Img:
		if b := x.image(n, nil); b != nil {
			return []*blockdoc.Block{b}
		}
		return nil
	case atom.Video:
		if b := x.video(n); b != nil {
			return []*blockdoc.Block{b}
		}
		return nil
	case atom.Iframe:
		if b := x.embed(n); b != nil {
			return []*blockdoc.Block{b}
		}
		return nil
	case atom.Pre:
		return []*blockdoc.Block{blockdoc.NewParagraph(x.seg.Preformatted(n))}
	case atom.Blockquote:
		return []*blockdoc.Block{x.container(n, func(runs []blockdoc.TextRun) *blockdoc.Block {
			return blockdoc.NewCallout("💬", blockdoc.ColorGrayBackground, runs)
		})}
	case atom.Dl:
		return x.definitions(n)
	case atom.Hr, atom.Br, atom.Wbr, atom.Head, atom.Title:
		return nil
	}

	if x.isCallout(n) {
		return []*blockdoc.Block{x.calloutBlock(n)}
	}

	// Everything else is a no-op container.
	return x.contents(children(n))
}

// hasTypeClass reports whether n carries a class naming the given callout
// type, either bare ("warning") or as a generator modifier
// ("alert--warning", "theme-admonition-warning", "note_warning").
func hasTypeClass(n *html.Node, name string) bool {
	for _, c := range classes(n) {
		c = strings.ToLower(c)
		if c == name || strings.HasSuffix(c, "-"+name) || strings.HasSuffix(c, "_"+name) {
			return true
		}
	}
	return false
}

func (x *extraction) isCallout(n *html.Node) bool {
	return x.doc.FindNodes(n).Is(x.callout)
}

// paragraph emits the paragraph itself, even when empty, followed by any
// media found inside it.
func (x *extraction) paragraph(n *html.Node) []*blockdoc.Block {
	var inline []*html.Node
	var rest []*blockdoc.Block
	for _, c := range children(n) {
		if isInline(c) {
			inline = append(inline, c)
			continue
		}
		rest = append(rest, x.element(c)...)
	}
	out := []*blockdoc.Block{blockdoc.NewParagraph(x.seg.Runs(inline))}
	out = append(out, x.drainImages()...)
	return append(out, rest...)
}

// list maps the li children of a list container to list items. A list
// nested directly in a list attaches to the preceding item.
func (x *extraction) list(n *html.Node, numbered bool) []*blockdoc.Block {
	var items []*blockdoc.Block
	for _, c := range children(n) {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Li:
			items = append(items, x.listItem(c, numbered))
		case atom.Ul, atom.Ol:
			nested := x.list(c, c.DataAtom == atom.Ol)
			if len(items) == 0 {
				items = append(items, nested...)
				continue
			}
			last := items[len(items)-1]
			last.Children = append(last.Children, nested...)
		}
	}
	return items
}

func (x *extraction) listItem(n *html.Node, numbered bool) *blockdoc.Block {
	return x.container(n, func(runs []blockdoc.TextRun) *blockdoc.Block {
		return blockdoc.NewListItem(numbered, runs)
	})
}

func (x *extraction) calloutBlock(n *html.Node) *blockdoc.Block {
	st := defaultCalloutStyle
	for _, s := range calloutStyles {
		if hasTypeClass(n, s.class) {
			st = s
			break
		}
	}
	return x.container(n, func(runs []blockdoc.TextRun) *blockdoc.Block {
		return blockdoc.NewCallout(st.icon, st.color, runs)
	})
}

// container builds a text-bearing block whose text is the leading inline
// content of n and whose children are everything after it. When n has no
// leading text but starts with a plain paragraph, that paragraph's text is
// promoted to the block.
func (x *extraction) container(n *html.Node, build func([]blockdoc.TextRun) *blockdoc.Block) *blockdoc.Block {
	nodes := children(n)
	i := 0
	for i < len(nodes) && isInline(nodes[i]) {
		i++
	}

	runs := x.seg.Runs(nodes[:i])
	hoisted := x.drainImages()
	kids := append(hoisted, x.contents(nodes[i:])...)

	if len(runs) == 0 && len(kids) > 0 && kids[0].Kind == blockdoc.KindParagraph && len(kids[0].Children) == 0 {
		runs = kids[0].Runs()
		kids = kids[1:]
	}

	b := build(runs)
	if len(kids) > 0 {
		b.Children = kids
	}
	return b
}

// definitions maps dt to bold paragraphs and dd content to blocks.
func (x *extraction) definitions(n *html.Node) []*blockdoc.Block {
	var out []*blockdoc.Block
	for _, c := range children(n) {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Dt:
			runs := x.seg.BoldRuns(children(c))
			out = append(out, blockdoc.NewParagraph(runs))
			out = append(out, x.drainImages()...)
		case atom.Dd:
			out = append(out, x.contents(children(c))...)
		default:
			out = append(out, x.element(c)...)
		}
	}
	return out
}

// table maps a table to a table block followed by any images found in its
// cells, which the platform cannot hold. A caption becomes a bold paragraph
// before the table. Row and column spans are expanded with empty cells so
// every row has the same width.
func (x *extraction) table(n *html.Node) []*blockdoc.Block {
	var out []*blockdoc.Block
	var trs []*html.Node
	headIndex := -1

	for _, c := range children(n) {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Caption:
			runs := x.seg.BoldRuns(children(c))
			if len(runs) > 0 {
				out = append(out, blockdoc.NewParagraph(runs))
			}
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for _, r := range children(c) {
				if r.Type == html.ElementNode && r.DataAtom == atom.Tr {
					if c.DataAtom == atom.Thead && headIndex < 0 {
						headIndex = len(trs)
					}
					trs = append(trs, r)
				}
			}
		case atom.Tr:
			trs = append(trs, c)
		}
	}

	var rows []*blockdoc.Block
	var images []*html.Node
	hasHeader := false
	// spans[col] is the number of further rows covered by a rowspan.
	spans := map[int]int{}

	for ri, tr := range trs {
		var cells []blockdoc.Cell
		allTH := true
		col := 0
		fill := func() {
			for spans[col] > 0 {
				spans[col]--
				cells = append(cells, blockdoc.Cell{})
				col++
			}
		}
		for _, td := range children(tr) {
			if td.Type != html.ElementNode || (td.DataAtom != atom.Td && td.DataAtom != atom.Th) {
				continue
			}
			fill()
			if td.DataAtom != atom.Th {
				allTH = false
			}
			cells = append(cells, blockdoc.Cell(x.seg.Runs(children(td))))
			images = append(images, x.seg.images...)
			x.seg.images = nil

			colspan := spanAttr(td, "colspan")
			rowspan := spanAttr(td, "rowspan")
			for i := 0; i < colspan; i++ {
				if i > 0 {
					cells = append(cells, blockdoc.Cell{})
				}
				if rowspan > 1 {
					spans[col] = rowspan - 1
				}
				col++
			}
		}
		fill()
		if len(cells) == 0 {
			continue
		}
		if ri == 0 && (headIndex == 0 || allTH) {
			hasHeader = true
		}
		rows = append(rows, blockdoc.NewTableRow(cells))
	}

	if len(rows) > 0 {
		table := blockdoc.NewTable(rows, hasHeader)
		width := table.Payload.(*blockdoc.TablePayload).Width
		for i, r := range rows {
			if got := len(r.Payload.(*blockdoc.TableRowPayload).Cells); got != width {
				x.warnf("table row %d has %d cells, expected %d", i+1, got, width)
			}
		}
		out = append(out, table)
	}

	for _, img := range images {
		if b := x.image(img, nil); b != nil {
			out = append(out, b)
		}
	}
	return out
}

func spanAttr(n *html.Node, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(attr(n, key)))
	if err != nil || v < 1 {
		return 1
	}
	return min(v, maxColspan)
}

// figure maps a figure to its media with the figcaption as caption.
func (x *extraction) figure(n *html.Node) []*blockdoc.Block {
	var caption []blockdoc.TextRun
	var media []*html.Node
	var rest []*html.Node
	for _, c := range children(n) {
		if c.Type != html.ElementNode {
			if !isBlank(c) {
				rest = append(rest, c)
			}
			continue
		}
		switch c.DataAtom {
		case atom.Figcaption:
			caption = x.seg.Runs(children(c))
			x.seg.images = nil
		case atom.Img, atom.Video, atom.Iframe:
			media = append(media, c)
		default:
			rest = append(rest, c)
		}
	}

	var out []*blockdoc.Block
	for i, m := range media {
		var capt []blockdoc.TextRun
		if i == 0 {
			capt = caption
		}
		var b *blockdoc.Block
		switch m.DataAtom {
		case atom.Img:
			b = x.image(m, capt)
		case atom.Video:
			b = x.video(m)
		case atom.Iframe:
			b = x.embed(m)
		}
		if b == nil {
			continue
		}
		if m.DataAtom != atom.Img {
			b.Payload.(*blockdoc.MediaPayload).Caption = capt
		}
		out = append(out, b)
	}
	if len(media) == 0 && len(caption) > 0 {
		out = append(out, blockdoc.NewParagraph(caption))
	}
	return append(out, x.contents(rest)...)
}

// image returns an image block or nil when the element has no source.
func (x *extraction) image(n *html.Node, caption []blockdoc.TextRun) *blockdoc.Block {
	src := x.resolve(firstNonEmpty(attr(n, "src"), attr(n, "data-src")))
	if src == "" {
		return nil
	}
	alt := strings.TrimSpace(blockdoc.NormalizeText(attr(n, "alt"), false))
	b := blockdoc.NewImage(blockdoc.MediaSource{URL: src}, alt, caption)
	x.media = append(x.media, b)
	return b
}

func (x *extraction) video(n *html.Node) *blockdoc.Block {
	src := attr(n, "src")
	if src == "" {
		for _, c := range children(n) {
			if c.Type == html.ElementNode && c.DataAtom == atom.Source && attr(c, "src") != "" {
				src = attr(c, "src")
				break
			}
		}
	}
	src = x.resolve(src)
	if src == "" {
		return nil
	}
	b := blockdoc.NewVideo(blockdoc.MediaSource{URL: src}, nil)
	x.media = append(x.media, b)
	return b
}

// embed maps an iframe from a known video host to a video block.
func (x *extraction) embed(n *html.Node) *blockdoc.Block {
	src := x.resolve(attr(n, "src"))
	if !isVideoEmbed(src) {
		return nil
	}
	b := blockdoc.NewVideo(blockdoc.MediaSource{URL: src}, nil)
	x.media = append(x.media, b)
	return b
}

func isVideoEmbed(src string) bool {
	u, err := url.Parse(src)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range videoHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// drainImages turns images met by the segmenter into image blocks.
func (x *extraction) drainImages() []*blockdoc.Block {
	if len(x.seg.images) == 0 {
		return nil
	}
	var out []*blockdoc.Block
	for _, img := range x.seg.images {
		if b := x.image(img, nil); b != nil {
			out = append(out, b)
		}
	}
	x.seg.images = nil
	return out
}

// resolve makes ref absolute against the base URL, when there is one.
func (x *extraction) resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" || x.base == nil || strings.HasPrefix(ref, "data:") {
		return ref
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return x.base.ResolveReference(u).String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// layout enforces the nesting ceiling. A block at depth d may only hold
// children at depth d+1 <= MaxNestingDepth, and a table additionally needs a
// level for its rows. From the first child that cannot nest, the remaining
// children are moved behind a marker on their parent, which keeps sibling
// order when they are appended later. Deferred blocks are laid out again
// relative to the block they will be appended to.
func (x *extraction) layout(blocks []*blockdoc.Block, depth int) {
	for _, b := range blocks {
		x.place(b, depth)
	}
}

func (x *extraction) place(b *blockdoc.Block, depth int) {
	if b.Kind == blockdoc.KindTable || len(b.Children) == 0 {
		return
	}
	childDepth := depth + 1
	cut := -1
	for i, c := range b.Children {
		if !x.fits(c, childDepth) {
			cut = i
			break
		}
	}
	if cut >= 0 {
		deferred := b.Children[cut:]
		b.Children = b.Children[:cut:cut]
		if len(b.Children) == 0 {
			b.Children = nil
		}
		x.deferChildren(b, deferred)
		x.layout(deferred, 0)
	}
	x.layout(b.Children, childDepth)
}

func (x *extraction) fits(b *blockdoc.Block, depth int) bool {
	if depth > x.opts.MaxNestingDepth {
		return false
	}
	if b.Kind == blockdoc.KindTable {
		return depth+1 <= x.opts.MaxNestingDepth
	}
	return true
}

func (x *extraction) deferChildren(owner *blockdoc.Block, blocks []*blockdoc.Block) {
	if owner.ID == "" {
		owner.ID = x.newID("b")
	}
	id := x.newID("m")
	owner.Marker = &blockdoc.MarkerRef{ID: id, OwnerBlockID: owner.ID}
	x.pending[id] = blocks
}
