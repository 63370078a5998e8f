package blockdoc_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/blockdoc"
	"github.com/stretchr/testify/assert"
)

func TestFormatOutline(t *testing.T) {
	t.Parallel()

	t.Run("returns empty string for no blocks", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, blockdoc.FormatOutline(nil))
	})

	t.Run("indents children and shows markers", func(t *testing.T) {
		t.Parallel()

		item := marked(blockdoc.NewListItem(true, text("Install")), "b1", "m1")
		item.Children = []*blockdoc.Block{blockdoc.NewParagraph(text("Run the installer"))}
		blocks := []*blockdoc.Block{
			blockdoc.NewHeading(1, text("Setup")),
			item,
			table("a", "b"),
			blockdoc.NewCallout("💡", blockdoc.ColorGreenBackground, text("Tip")),
			blockdoc.NewImage(blockdoc.MediaSource{URL: "https://example.com/a.png"}, "", nil),
		}

		want := strings.Join([]string{
			"heading_1: Setup",
			"numbered_list_item: Install -> marker m1",
			"  paragraph: Run the installer",
			"table: 2 columns, 1 rows",
			"  table_row: a | b",
			"callout: 💡 Tip",
			"image: https://example.com/a.png",
		}, "\n")
		assert.Equal(t, want, blockdoc.FormatOutline(blocks))
	})

	t.Run("shows asset ids for uploaded media", func(t *testing.T) {
		t.Parallel()

		img := blockdoc.NewImage(blockdoc.MediaSource{Asset: &blockdoc.AssetHandle{ID: "file-1"}}, "", nil)

		assert.Equal(t, "image: asset file-1", blockdoc.FormatOutline([]*blockdoc.Block{img}))
	})

	t.Run("truncates long text to one line", func(t *testing.T) {
		t.Parallel()

		long := strings.Repeat("word ", 30)
		got := blockdoc.FormatOutline([]*blockdoc.Block{blockdoc.NewParagraph(text("a\n" + long))})

		assert.NotContains(t, got, "\n")
		assert.True(t, strings.HasSuffix(got, "..."))
		assert.Len(t, []rune(strings.TrimPrefix(got, "paragraph: ")), 60)
	})
}
