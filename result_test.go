package blockdoc_test

import (
	"testing"

	"github.com/fwojciec/blockdoc"
	"github.com/stretchr/testify/assert"
)

func TestCountBlocks(t *testing.T) {
	t.Parallel()

	item := blockdoc.NewListItem(false, text("a"))
	item.Children = []*blockdoc.Block{blockdoc.NewListItem(true, text("b"))}
	primary := []*blockdoc.Block{
		blockdoc.NewHeading(2, text("h")),
		blockdoc.NewParagraph(text("p")),
		item,
		blockdoc.NewCallout("ℹ️", "", text("c")),
	}
	deferred := []*blockdoc.Block{
		table("x", "y"),
		blockdoc.NewImage(blockdoc.MediaSource{URL: "https://example.com/a.png"}, "", nil),
		blockdoc.NewVideo(blockdoc.MediaSource{URL: "https://youtu.be/x"}, nil),
	}

	got := blockdoc.CountBlocks(primary, deferred)

	assert.Equal(t, blockdoc.Counts{
		Paragraphs: 1,
		Headings:   1,
		ListItems:  2,
		Callouts:   1,
		Tables:     1,
		Images:     1,
		Videos:     1,
	}, got)
}

func TestReport_Mismatches(t *testing.T) {
	t.Parallel()

	t.Run("names kinds emitted fewer times than found", func(t *testing.T) {
		t.Parallel()

		r := blockdoc.Report{
			Source: blockdoc.Counts{Tables: 2, Images: 1, ListItems: 3},
			Output: blockdoc.Counts{Tables: 1, Images: 1, ListItems: 4},
		}

		assert.Equal(t, []string{"tables: source=2 output=1"}, r.Mismatches())
	})

	t.Run("returns nil when output covers the source", func(t *testing.T) {
		t.Parallel()

		r := blockdoc.Report{Source: blockdoc.Counts{Videos: 1}, Output: blockdoc.Counts{Videos: 1}}

		assert.Nil(t, r.Mismatches())
	})
}

func TestResult_DeferredByID(t *testing.T) {
	t.Parallel()

	tbl := table("a")
	r := &blockdoc.Result{Deferred: []blockdoc.DeferredSubtree{{MarkerID: "m1", OwnerBlockID: "b1", Blocks: []*blockdoc.Block{tbl}}}}

	assert.Equal(t, map[string][]*blockdoc.Block{"m1": {tbl}}, r.DeferredByID())
}
