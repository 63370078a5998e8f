package blockdoc

// Kind discriminates the block variants the target platform accepts.
type Kind string

// Kind constants. The set is closed; anything else is invalid.
const (
	KindParagraph        Kind = "paragraph"
	KindHeading1         Kind = "heading_1"
	KindHeading2         Kind = "heading_2"
	KindHeading3         Kind = "heading_3"
	KindBulletedListItem Kind = "bulleted_list_item"
	KindNumberedListItem Kind = "numbered_list_item"
	KindCallout          Kind = "callout"
	KindTable            Kind = "table"
	KindTableRow         Kind = "table_row"
	KindImage            Kind = "image"
	KindVideo            Kind = "video"
)

// TextBearing reports whether blocks of this kind carry a rich text payload
// and are invalid when it is empty and they have no children.
func (k Kind) TextBearing() bool {
	switch k {
	case KindParagraph, KindHeading1, KindHeading2, KindHeading3,
		KindBulletedListItem, KindNumberedListItem, KindCallout:
		return true
	}
	return false
}

// Payload is the kind-specific content of a Block. The concrete type is one
// of *TextPayload, *CalloutPayload, *TablePayload, *TableRowPayload or
// *MediaPayload.
type Payload interface {
	payload()
}

// TextPayload holds the rich text of paragraphs, headings and list items.
type TextPayload struct {
	Runs []TextRun `json:"runs"`
}

// CalloutPayload holds the rich text and decoration of a callout.
type CalloutPayload struct {
	Runs  []TextRun `json:"runs"`
	Icon  string    `json:"icon"`
	Color Color     `json:"color,omitempty"`
}

// TablePayload describes a table. Rows are the table's children, each of
// kind KindTableRow with exactly Width cells.
type TablePayload struct {
	Width           int  `json:"width"`
	HasColumnHeader bool `json:"hasColumnHeader"`
	HasRowHeader    bool `json:"hasRowHeader"`
}

// Cell is one table cell.
type Cell []TextRun

// TableRowPayload holds the cells of a table row.
type TableRowPayload struct {
	Cells []Cell `json:"cells"`
}

// MediaSource references the content of an image or video block.
// Exactly one of URL or Asset is expected to be set once resolved.
type MediaSource struct {
	// URL is the original, absolute source reference.
	URL string `json:"url,omitempty"`

	// Asset is set when the source was uploaded through an AssetResolver.
	Asset *AssetHandle `json:"asset,omitempty"`
}

// MediaPayload holds an image or video reference.
type MediaPayload struct {
	Source  MediaSource `json:"source"`
	Caption []TextRun   `json:"caption,omitempty"`

	// Alt is the alternative text used for placeholders. It is not emitted.
	Alt string `json:"-"`
}

func (*TextPayload) payload()     {}
func (*CalloutPayload) payload()  {}
func (*TablePayload) payload()    {}
func (*TableRowPayload) payload() {}
func (*MediaPayload) payload()    {}

// Block is one structural unit of the output document.
type Block struct {
	// ID is a conversion-local identifier. It is only guaranteed to be set
	// on blocks that own a marker.
	ID string `json:"id,omitempty"`

	Kind     Kind     `json:"kind"`
	Payload  Payload  `json:"payload"`
	Children []*Block `json:"children,omitempty"`

	// Marker is set when part of this block's children were deferred to a
	// second publish pass.
	Marker *MarkerRef `json:"marker,omitempty"`
}

// NewParagraph returns a paragraph block.
func NewParagraph(runs []TextRun) *Block {
	return &Block{Kind: KindParagraph, Payload: &TextPayload{Runs: runs}}
}

// NewHeading returns a heading block. Levels above 3 are clamped to 3.
func NewHeading(level int, runs []TextRun) *Block {
	kind := KindHeading3
	switch {
	case level <= 1:
		kind = KindHeading1
	case level == 2:
		kind = KindHeading2
	}
	return &Block{Kind: kind, Payload: &TextPayload{Runs: runs}}
}

// NewListItem returns a bulleted or numbered list item block.
func NewListItem(numbered bool, runs []TextRun) *Block {
	kind := KindBulletedListItem
	if numbered {
		kind = KindNumberedListItem
	}
	return &Block{Kind: kind, Payload: &TextPayload{Runs: runs}}
}

// NewCallout returns a callout block.
func NewCallout(icon string, color Color, runs []TextRun) *Block {
	return &Block{Kind: KindCallout, Payload: &CalloutPayload{Runs: runs, Icon: icon, Color: color}}
}

// NewTable returns a table block owning the given rows.
// The width is taken from the first row.
func NewTable(rows []*Block, hasColumnHeader bool) *Block {
	width := 0
	if len(rows) > 0 {
		if p, ok := rows[0].Payload.(*TableRowPayload); ok {
			width = len(p.Cells)
		}
	}
	return &Block{
		Kind:     KindTable,
		Payload:  &TablePayload{Width: width, HasColumnHeader: hasColumnHeader},
		Children: rows,
	}
}

// NewTableRow returns a table row block.
func NewTableRow(cells []Cell) *Block {
	return &Block{Kind: KindTableRow, Payload: &TableRowPayload{Cells: cells}}
}

// NewImage returns an image block.
func NewImage(src MediaSource, alt string, caption []TextRun) *Block {
	return &Block{Kind: KindImage, Payload: &MediaPayload{Source: src, Alt: alt, Caption: caption}}
}

// NewVideo returns a video block.
func NewVideo(src MediaSource, caption []TextRun) *Block {
	return &Block{Kind: KindVideo, Payload: &MediaPayload{Source: src, Caption: caption}}
}

// Runs returns the rich text of a text-bearing block, or nil.
func (b *Block) Runs() []TextRun {
	switch p := b.Payload.(type) {
	case *TextPayload:
		return p.Runs
	case *CalloutPayload:
		return p.Runs
	}
	return nil
}

// SetRuns replaces the rich text of a text-bearing block.
// It is a no-op for other kinds.
func (b *Block) SetRuns(runs []TextRun) {
	switch p := b.Payload.(type) {
	case *TextPayload:
		p.Runs = runs
	case *CalloutPayload:
		p.Runs = runs
	}
}

// HasPayload reports whether the block carries the payload its kind
// requires.
func (b *Block) HasPayload() bool {
	switch b.Kind {
	case KindParagraph, KindHeading1, KindHeading2, KindHeading3,
		KindBulletedListItem, KindNumberedListItem:
		p, ok := b.Payload.(*TextPayload)
		return ok && p != nil
	case KindCallout:
		p, ok := b.Payload.(*CalloutPayload)
		return ok && p != nil
	case KindTable:
		p, ok := b.Payload.(*TablePayload)
		return ok && p != nil
	case KindTableRow:
		p, ok := b.Payload.(*TableRowPayload)
		return ok && p != nil
	case KindImage, KindVideo:
		p, ok := b.Payload.(*MediaPayload)
		return ok && p != nil
	}
	return false
}

// Walk calls fn for every block in blocks, depth-first in document order.
// Walking stops descending into a block when fn returns false.
func Walk(blocks []*Block, fn func(b *Block, depth int) bool) {
	walk(blocks, 0, fn)
}

func walk(blocks []*Block, depth int, fn func(b *Block, depth int) bool) {
	for _, b := range blocks {
		if fn(b, depth) {
			walk(b.Children, depth+1, fn)
		}
	}
}

// Depth returns the number of levels in the tree: 0 for an empty tree,
// 1 for a flat list of blocks.
func Depth(blocks []*Block) int {
	max := 0
	for _, b := range blocks {
		if d := 1 + Depth(b.Children); d > max {
			max = d
		}
	}
	return max
}
