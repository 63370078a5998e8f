package blockdoc

import "strings"

// Prune removes blocks that would violate the platform schema and returns
// the surviving blocks. Pruning is bottom-up: children are validated first,
// so a parent left without text and children is itself removed. A block
// carrying a marker is kept even when empty because it hosts deferred
// content. Blocks are modified in place. Pruning a pruned tree is a no-op.
func Prune(blocks []*Block) []*Block {
	if blocks == nil {
		return nil
	}
	out := blocks[:0]
	for _, b := range blocks {
		if b == nil || b.Kind == KindTableRow {
			// Rows are only valid inside a table.
			continue
		}
		if pruneBlock(b) {
			out = append(out, b)
		}
	}
	clear(blocks[len(out):])
	return out
}

// pruneBlock validates b, pruning its children first, and reports whether it
// survives.
func pruneBlock(b *Block) bool {
	if b.Kind == "" || !b.HasPayload() {
		return false
	}

	if b.Kind == KindTable {
		return pruneTable(b)
	}
	b.Children = Prune(b.Children)

	switch {
	case b.Kind.TextBearing():
		if b.Marker != nil || len(b.Children) > 0 {
			return true
		}
		return strings.TrimSpace(PlainText(b.Runs())) != ""
	case b.Kind == KindImage || b.Kind == KindVideo:
		src := b.Payload.(*MediaPayload).Source
		return src.URL != "" || (src.Asset != nil && (src.Asset.ID != "" || src.Asset.URL != ""))
	}
	return true
}

// pruneTable drops rows whose cell count differs from the table width and
// reports whether any rows remain.
func pruneTable(b *Block) bool {
	p := b.Payload.(*TablePayload)
	if p.Width < 1 {
		return false
	}
	rows := b.Children[:0]
	for _, row := range b.Children {
		if row == nil || row.Kind != KindTableRow || !row.HasPayload() {
			continue
		}
		if len(row.Payload.(*TableRowPayload).Cells) != p.Width {
			continue
		}
		row.Children = nil
		rows = append(rows, row)
	}
	clear(b.Children[len(rows):])
	b.Children = rows
	return len(rows) > 0
}

// Prune validates the primary tree and every deferred subtree. An entry
// whose blocks are all pruned is removed together with its marker, and
// pruning repeats until nothing changes, since the marker's owner may have
// become empty.
func (c *Collection) Prune() {
	for {
		c.Primary = Prune(c.Primary)

		empty := make(map[string]bool)
		kept := c.Deferred[:0]
		for _, d := range c.Deferred {
			d.Blocks = Prune(d.Blocks)
			if len(d.Blocks) == 0 {
				empty[d.MarkerID] = true
				continue
			}
			kept = append(kept, d)
		}
		clear(c.Deferred[len(kept):])
		c.Deferred = kept

		if len(empty) == 0 {
			return
		}

		unmark := func(b *Block, _ int) bool {
			if b.Marker != nil && empty[b.Marker.ID] {
				b.Marker = nil
			}
			return true
		}
		Walk(c.Primary, unmark)
		for _, d := range c.Deferred {
			Walk(d.Blocks, unmark)
		}
	}
}
