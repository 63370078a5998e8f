// Package notion maps block documents to Notion API request payloads.
package notion

import (
	"regexp"

	"github.com/fwojciec/blockdoc"
	"github.com/jomei/notionapi"
)

// MaxChildrenPerRequest is the number of children Notion accepts in one
// create or append request.
const MaxChildrenPerRequest = 100

var markerTokenRe = regexp.MustCompile(`\(blockdoc:([A-Za-z0-9_-]+)\)`)

// MarkerToken returns the visible token embedded in a marker owner's text.
func MarkerToken(markerID string) string {
	return "(blockdoc:" + markerID + ")"
}

// FindMarkerToken returns the marker id of the first token in text.
func FindMarkerToken(text string) (string, bool) {
	m := markerTokenRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Mapper converts blocks to notionapi blocks.
type Mapper struct {
	markerTokens bool
}

// Option configures a Mapper.
type Option func(*Mapper)

// WithMarkerTokens appends MarkerToken to the text of every block owning a
// marker, so a publisher can locate the created block by its text.
func WithMarkerTokens() Option {
	return func(m *Mapper) {
		m.markerTokens = true
	}
}

// NewMapper creates a new Mapper.
func NewMapper(opts ...Option) *Mapper {
	m := &Mapper{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Append is one follow-up request attaching deferred blocks to the block
// created for the marker's owner.
type Append struct {
	MarkerID     string                                `json:"markerId"`
	OwnerBlockID string                                `json:"ownerBlockId"`
	Request      *notionapi.AppendBlockChildrenRequest `json:"request"`
}

// Plan holds the requests that publish a converted document.
type Plan struct {
	// Create holds the primary tree in batches of at most
	// MaxChildrenPerRequest blocks.
	Create [][]notionapi.Block `json:"create"`

	// Appends must be issued in order, after Create. An entry never
	// precedes the entry that creates its owner.
	Appends []Append `json:"appends"`
}

// Plan maps a conversion result to publish requests.
func (m *Mapper) Plan(r *blockdoc.Result) (*Plan, error) {
	if err := blockdoc.VerifyMarkers(r.PrimaryTree, r.Deferred); err != nil {
		return nil, err
	}

	p := &Plan{Create: batch(m.Blocks(r.PrimaryTree))}
	for _, d := range r.Deferred {
		for _, children := range batch(m.Blocks(d.Blocks)) {
			p.Appends = append(p.Appends, Append{
				MarkerID:     d.MarkerID,
				OwnerBlockID: d.OwnerBlockID,
				Request:      &notionapi.AppendBlockChildrenRequest{Children: children},
			})
		}
	}
	return p, nil
}

func batch(blocks []notionapi.Block) [][]notionapi.Block {
	var out [][]notionapi.Block
	for len(blocks) > MaxChildrenPerRequest {
		out = append(out, blocks[:MaxChildrenPerRequest:MaxChildrenPerRequest])
		blocks = blocks[MaxChildrenPerRequest:]
	}
	if len(blocks) > 0 {
		out = append(out, blocks)
	}
	return out
}

// Blocks maps blocks, skipping any the API has no representation for.
func (m *Mapper) Blocks(blocks []*blockdoc.Block) []notionapi.Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]notionapi.Block, 0, len(blocks))
	for _, b := range blocks {
		if nb := m.Block(b); nb != nil {
			out = append(out, nb)
		}
	}
	return out
}

// Block maps one block and its children. It returns nil for blocks
// without a valid payload.
func (m *Mapper) Block(b *blockdoc.Block) notionapi.Block {
	if b == nil || !b.HasPayload() {
		return nil
	}

	basic := notionapi.BasicBlock{
		Object: notionapi.ObjectType("block"),
		Type:   notionapi.BlockType(b.Kind),
	}
	children := m.Blocks(b.Children)

	switch b.Kind {
	case blockdoc.KindParagraph:
		return &notionapi.ParagraphBlock{
			BasicBlock: basic,
			Paragraph:  notionapi.Paragraph{RichText: m.text(b), Children: children},
		}
	case blockdoc.KindHeading1:
		return &notionapi.Heading1Block{
			BasicBlock: basic,
			Heading1:   notionapi.Heading{RichText: m.text(b)},
		}
	case blockdoc.KindHeading2:
		return &notionapi.Heading2Block{
			BasicBlock: basic,
			Heading2:   notionapi.Heading{RichText: m.text(b)},
		}
	case blockdoc.KindHeading3:
		return &notionapi.Heading3Block{
			BasicBlock: basic,
			Heading3:   notionapi.Heading{RichText: m.text(b)},
		}
	case blockdoc.KindBulletedListItem:
		return &notionapi.BulletedListItemBlock{
			BasicBlock:       basic,
			BulletedListItem: notionapi.ListItem{RichText: m.text(b), Children: children},
		}
	case blockdoc.KindNumberedListItem:
		return &notionapi.NumberedListItemBlock{
			BasicBlock:       basic,
			NumberedListItem: notionapi.ListItem{RichText: m.text(b), Children: children},
		}
	case blockdoc.KindCallout:
		p := b.Payload.(*blockdoc.CalloutPayload)
		callout := notionapi.Callout{RichText: m.text(b), Children: children}
		if p.Icon != "" {
			emoji := notionapi.Emoji(p.Icon)
			callout.Icon = &notionapi.Icon{Type: notionapi.FileType("emoji"), Emoji: &emoji}
		}
		setCalloutColor(&callout, p.Color)
		return &notionapi.CalloutBlock{BasicBlock: basic, Callout: callout}
	case blockdoc.KindTable:
		p := b.Payload.(*blockdoc.TablePayload)
		return &notionapi.TableBlock{
			BasicBlock: basic,
			Table: notionapi.Table{
				TableWidth:      p.Width,
				HasColumnHeader: p.HasColumnHeader,
				HasRowHeader:    p.HasRowHeader,
				Children:        children,
			},
		}
	case blockdoc.KindTableRow:
		p := b.Payload.(*blockdoc.TableRowPayload)
		cells := make([][]notionapi.RichText, len(p.Cells))
		for i, c := range p.Cells {
			cells[i] = RichText(c)
			if cells[i] == nil {
				cells[i] = []notionapi.RichText{}
			}
		}
		return &notionapi.TableRowBlock{BasicBlock: basic, TableRow: notionapi.TableRow{Cells: cells}}
	case blockdoc.KindImage:
		p := b.Payload.(*blockdoc.MediaPayload)
		return &notionapi.ImageBlock{
			BasicBlock: basic,
			Image: notionapi.Image{
				Type:     notionapi.FileType("external"),
				External: &notionapi.FileObject{URL: mediaURL(p.Source)},
				Caption:  RichText(p.Caption),
			},
		}
	case blockdoc.KindVideo:
		p := b.Payload.(*blockdoc.MediaPayload)
		return &notionapi.VideoBlock{
			BasicBlock: basic,
			Video: notionapi.Video{
				Type:     notionapi.FileType("external"),
				External: &notionapi.FileObject{URL: mediaURL(p.Source)},
				Caption:  RichText(p.Caption),
			},
		}
	}
	return nil
}

// text returns the rich text of b, with the marker token appended when
// enabled.
func (m *Mapper) text(b *blockdoc.Block) []notionapi.RichText {
	rt := RichText(b.Runs())
	if m.markerTokens && b.Marker != nil {
		rt = append(rt, RichText([]blockdoc.TextRun{{
			Text:        " " + MarkerToken(b.Marker.ID),
			Annotations: blockdoc.Annotations{Code: true, Color: blockdoc.ColorGray},
		}})...)
	}
	if rt == nil {
		rt = []notionapi.RichText{}
	}
	return rt
}

// RichText maps text runs to rich text objects.
func RichText(runs []blockdoc.TextRun) []notionapi.RichText {
	if len(runs) == 0 {
		return nil
	}
	out := make([]notionapi.RichText, 0, len(runs))
	for _, r := range runs {
		text := &notionapi.Text{Content: r.Text}
		if r.Link != "" {
			text.Link = &notionapi.Link{Url: r.Link}
		}
		rt := notionapi.RichText{
			Type: notionapi.ObjectType("text"),
			Text: text,
		}
		if r.Annotations != (blockdoc.Annotations{}) {
			rt.Annotations = &notionapi.Annotations{
				Bold:          r.Annotations.Bold,
				Italic:        r.Annotations.Italic,
				Strikethrough: r.Annotations.Strikethrough,
				Underline:     r.Annotations.Underline,
				Code:          r.Annotations.Code,
				Color:         notionapi.Color(colorOrDefault(r.Annotations.Color)),
			}
		}
		out = append(out, rt)
	}
	return out
}

func colorOrDefault(c blockdoc.Color) blockdoc.Color {
	if c == blockdoc.ColorDefault {
		return "default"
	}
	return c
}

// setCalloutColor sets the background of a callout. Only background colors
// are used for callouts.
func setCalloutColor(c *notionapi.Callout, color blockdoc.Color) {
	switch color {
	case blockdoc.ColorGrayBackground:
		c.Color = "gray_background"
	case blockdoc.ColorRedBackground:
		c.Color = "red_background"
	case blockdoc.ColorYellowBackground:
		c.Color = "yellow_background"
	case blockdoc.ColorGreenBackground:
		c.Color = "green_background"
	case blockdoc.ColorBlueBackground:
		c.Color = "blue_background"
	default:
		c.Color = "default"
	}
}

// mediaURL prefers the uploaded asset's URL over the original source.
func mediaURL(src blockdoc.MediaSource) string {
	if src.Asset != nil && src.Asset.URL != "" {
		return src.Asset.URL
	}
	return src.URL
}
