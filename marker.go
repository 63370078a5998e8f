package blockdoc

import (
	"reflect"
	"slices"
)

// MarkerRef correlates a block in the primary tree with children that were
// deferred to a second publish pass because they cannot legally nest at the
// block's depth.
type MarkerRef struct {
	ID           string `json:"id"`
	OwnerBlockID string `json:"ownerBlockId"`
}

// DeferredSubtree holds the blocks to append as children of the block
// carrying MarkerID, after the primary tree has been created.
type DeferredSubtree struct {
	MarkerID     string   `json:"markerId"`
	OwnerBlockID string   `json:"ownerBlockId"`
	Blocks       []*Block `json:"blocks"`
}

// Collection separates a block tree into what can be created at once and
// what must be appended later.
type Collection struct {
	Primary []*Block

	// Deferred is ordered so that an entry always precedes the entries of
	// markers nested inside its own blocks.
	Deferred []DeferredSubtree
}

// CollectMarkers walks tree depth-first and moves the subtree recorded for
// every marker from pending into the collection. The tree is not copied;
// markers stay where extraction placed them.
//
// A marker without a pending subtree, a marker seen twice or a pending
// subtree that no marker refers to returns a *MarkerError. The pending map
// is not modified.
func CollectMarkers(tree []*Block, pending map[string][]*Block) (*Collection, error) {
	remaining := make(map[string][]*Block, len(pending))
	for id, blocks := range pending {
		remaining[id] = blocks
	}

	c := &Collection{Primary: tree}
	seen := make(map[string]bool)
	if err := c.collect(tree, remaining, seen); err != nil {
		return nil, err
	}

	if len(remaining) > 0 {
		ids := make([]string, 0, len(remaining))
		for id := range remaining {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		return nil, &MarkerError{
			MarkerID: ids[0],
			Reason:   "deferred subtree has no marker in the tree",
			Blocks:   len(remaining[ids[0]]),
		}
	}
	return c, nil
}

func (c *Collection) collect(blocks []*Block, remaining map[string][]*Block, seen map[string]bool) error {
	for _, b := range blocks {
		var subtree []*Block
		if m := b.Marker; m != nil {
			if seen[m.ID] {
				return &MarkerError{MarkerID: m.ID, OwnerBlockID: m.OwnerBlockID, Reason: "marker appears more than once"}
			}
			sub, ok := remaining[m.ID]
			if !ok {
				return &MarkerError{MarkerID: m.ID, OwnerBlockID: m.OwnerBlockID, Reason: "marker has no deferred subtree"}
			}
			seen[m.ID] = true
			delete(remaining, m.ID)
			subtree = sub
			c.Deferred = append(c.Deferred, DeferredSubtree{
				MarkerID:     m.ID,
				OwnerBlockID: m.OwnerBlockID,
				Blocks:       sub,
			})
		}
		if err := c.collect(b.Children, remaining, seen); err != nil {
			return err
		}
		if err := c.collect(subtree, remaining, seen); err != nil {
			return err
		}
	}
	return nil
}

// VerifyMarkers checks that every marker in primary and in the deferred
// subtrees has exactly one deferred entry and every entry has exactly one
// marker.
func VerifyMarkers(primary []*Block, deferred []DeferredSubtree) error {
	entries := make(map[string]DeferredSubtree, len(deferred))
	for _, d := range deferred {
		if _, dup := entries[d.MarkerID]; dup {
			return &MarkerError{MarkerID: d.MarkerID, OwnerBlockID: d.OwnerBlockID, Reason: "duplicate deferred entry", Blocks: len(d.Blocks)}
		}
		entries[d.MarkerID] = d
	}

	seen := make(map[string]bool, len(entries))
	var err error
	check := func(b *Block, _ int) bool {
		if err != nil {
			return false
		}
		if m := b.Marker; m != nil {
			if _, ok := entries[m.ID]; !ok {
				err = &MarkerError{MarkerID: m.ID, OwnerBlockID: m.OwnerBlockID, Reason: "marker has no deferred subtree"}
				return false
			}
			if seen[m.ID] {
				err = &MarkerError{MarkerID: m.ID, OwnerBlockID: m.OwnerBlockID, Reason: "marker appears more than once"}
				return false
			}
			seen[m.ID] = true
		}
		return true
	}

	Walk(primary, check)
	for _, d := range deferred {
		Walk(d.Blocks, check)
	}
	if err != nil {
		return err
	}

	for _, d := range deferred {
		if !seen[d.MarkerID] {
			return &MarkerError{MarkerID: d.MarkerID, OwnerBlockID: d.OwnerBlockID, Reason: "deferred subtree has no marker in the tree", Blocks: len(d.Blocks)}
		}
	}
	return nil
}

// Reassemble returns a copy of primary with every deferred subtree appended
// to the children of its marker's owner and the markers removed. The result
// is the tree a publisher ends up with after both passes.
func Reassemble(primary []*Block, deferred []DeferredSubtree) []*Block {
	entries := make(map[string][]*Block, len(deferred))
	for _, d := range deferred {
		entries[d.MarkerID] = d.Blocks
	}
	return reassemble(primary, entries)
}

func reassemble(blocks []*Block, entries map[string][]*Block) []*Block {
	if blocks == nil {
		return nil
	}
	out := make([]*Block, 0, len(blocks))
	for _, b := range blocks {
		c := &Block{ID: b.ID, Kind: b.Kind, Payload: clonePayload(b.Payload)}
		c.Children = reassemble(b.Children, entries)
		if b.Marker != nil {
			c.Children = append(c.Children, reassemble(entries[b.Marker.ID], entries)...)
		}
		out = append(out, c)
	}
	return out
}

// Clone returns a deep copy of b.
func (b *Block) Clone() *Block {
	c := &Block{ID: b.ID, Kind: b.Kind, Payload: clonePayload(b.Payload)}
	if b.Marker != nil {
		m := *b.Marker
		c.Marker = &m
	}
	if b.Children != nil {
		c.Children = make([]*Block, len(b.Children))
		for i, child := range b.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

func clonePayload(p Payload) Payload {
	if p == nil || reflect.ValueOf(p).IsNil() {
		return p
	}
	switch p := p.(type) {
	case *TextPayload:
		return &TextPayload{Runs: slices.Clone(p.Runs)}
	case *CalloutPayload:
		c := *p
		c.Runs = slices.Clone(p.Runs)
		return &c
	case *TablePayload:
		c := *p
		return &c
	case *TableRowPayload:
		cells := make([]Cell, len(p.Cells))
		for i, cell := range p.Cells {
			cells[i] = slices.Clone(cell)
		}
		return &TableRowPayload{Cells: cells}
	case *MediaPayload:
		c := *p
		c.Caption = slices.Clone(p.Caption)
		if p.Source.Asset != nil {
			h := *p.Source.Asset
			c.Source.Asset = &h
		}
		return &c
	}
	return nil
}
