package blockdoc_test

import (
	"testing"

	"github.com/fwojciec/blockdoc"
	"github.com/stretchr/testify/assert"
)

func TestNewHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level int
		want  blockdoc.Kind
	}{
		{1, blockdoc.KindHeading1},
		{2, blockdoc.KindHeading2},
		{3, blockdoc.KindHeading3},
		{4, blockdoc.KindHeading3},
		{6, blockdoc.KindHeading3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, blockdoc.NewHeading(tt.level, nil).Kind, "h%d", tt.level)
	}
}

func TestNewTable(t *testing.T) {
	t.Parallel()

	t.Run("takes the width from the first row", func(t *testing.T) {
		t.Parallel()

		tbl := table("a", "b", "c")

		p := tbl.Payload.(*blockdoc.TablePayload)
		assert.Equal(t, 3, p.Width)
		assert.Len(t, tbl.Children, 1)
	})

	t.Run("has zero width without rows", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 0, blockdoc.NewTable(nil, true).Payload.(*blockdoc.TablePayload).Width)
	})
}

func TestBlock_Runs(t *testing.T) {
	t.Parallel()

	t.Run("reads and writes text and callout payloads", func(t *testing.T) {
		t.Parallel()

		p := blockdoc.NewParagraph(text("a"))
		c := blockdoc.NewCallout("ℹ️", blockdoc.ColorBlueBackground, text("b"))

		p.SetRuns(text("x"))
		c.SetRuns(text("y"))

		assert.Equal(t, "x", blockdoc.PlainText(p.Runs()))
		assert.Equal(t, "y", blockdoc.PlainText(c.Runs()))
	})

	t.Run("ignores other payloads", func(t *testing.T) {
		t.Parallel()

		tbl := table("a")
		tbl.SetRuns(text("x"))

		assert.Nil(t, tbl.Runs())
	})
}

func TestBlock_HasPayload(t *testing.T) {
	t.Parallel()

	var nilText *blockdoc.TextPayload
	tests := []struct {
		name  string
		block *blockdoc.Block
		want  bool
	}{
		{"paragraph", blockdoc.NewParagraph(nil), true},
		{"callout", blockdoc.NewCallout("", "", nil), true},
		{"row", blockdoc.NewTableRow(nil), true},
		{"video", blockdoc.NewVideo(blockdoc.MediaSource{}, nil), true},
		{"missing payload", &blockdoc.Block{Kind: blockdoc.KindImage}, false},
		{"typed nil payload", &blockdoc.Block{Kind: blockdoc.KindParagraph, Payload: nilText}, false},
		{"mismatched payload", &blockdoc.Block{Kind: blockdoc.KindTable, Payload: &blockdoc.TextPayload{}}, false},
		{"unknown kind", &blockdoc.Block{Kind: "toggle", Payload: &blockdoc.TextPayload{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.block.HasPayload())
		})
	}
}

func TestWalk(t *testing.T) {
	t.Parallel()

	t.Run("visits blocks depth-first with their depth", func(t *testing.T) {
		t.Parallel()

		item := blockdoc.NewListItem(false, text("a"))
		item.Children = []*blockdoc.Block{blockdoc.NewParagraph(text("b"))}
		blocks := []*blockdoc.Block{item, blockdoc.NewParagraph(text("c"))}

		var got []string
		var depths []int
		blockdoc.Walk(blocks, func(b *blockdoc.Block, depth int) bool {
			got = append(got, blockdoc.PlainText(b.Runs()))
			depths = append(depths, depth)
			return true
		})

		assert.Equal(t, []string{"a", "b", "c"}, got)
		assert.Equal(t, []int{0, 1, 0}, depths)
	})

	t.Run("skips children when the callback returns false", func(t *testing.T) {
		t.Parallel()

		tbl := table("a", "b")
		count := 0
		blockdoc.Walk([]*blockdoc.Block{tbl}, func(b *blockdoc.Block, _ int) bool {
			count++
			return b.Kind != blockdoc.KindTable
		})

		assert.Equal(t, 1, count)
	})
}

func TestDepth(t *testing.T) {
	t.Parallel()

	inner := blockdoc.NewListItem(false, text("c"))
	inner.Children = []*blockdoc.Block{table("x")}
	outer := blockdoc.NewListItem(false, text("b"))
	outer.Children = []*blockdoc.Block{inner}

	assert.Equal(t, 0, blockdoc.Depth(nil))
	assert.Equal(t, 1, blockdoc.Depth([]*blockdoc.Block{blockdoc.NewParagraph(nil)}))
	assert.Equal(t, 4, blockdoc.Depth([]*blockdoc.Block{outer}))
}
