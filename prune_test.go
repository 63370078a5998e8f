package blockdoc_test

import (
	"testing"

	"github.com/fwojciec/blockdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrune(t *testing.T) {
	t.Parallel()

	t.Run("drops an empty list item without children", func(t *testing.T) {
		t.Parallel()

		tree := []*blockdoc.Block{
			blockdoc.NewListItem(false, nil),
			blockdoc.NewListItem(false, text("kept")),
		}

		got := blockdoc.Prune(tree)

		require.Len(t, got, 1)
		assert.Equal(t, "kept", blockdoc.PlainText(got[0].Runs()))
	})

	t.Run("keeps an empty list item hosting a nested list", func(t *testing.T) {
		t.Parallel()

		item := blockdoc.NewListItem(false, nil)
		item.Children = []*blockdoc.Block{blockdoc.NewListItem(false, text("child"))}

		got := blockdoc.Prune([]*blockdoc.Block{item})

		require.Len(t, got, 1)
		assert.Len(t, got[0].Children, 1)
	})

	t.Run("removes a parent left empty by pruning its children", func(t *testing.T) {
		t.Parallel()

		item := blockdoc.NewListItem(false, nil)
		item.Children = []*blockdoc.Block{blockdoc.NewParagraph(text("   "))}

		assert.Empty(t, blockdoc.Prune([]*blockdoc.Block{item}))
	})

	t.Run("keeps an empty block carrying a marker", func(t *testing.T) {
		t.Parallel()

		item := marked(blockdoc.NewListItem(false, nil), "b1", "m1")

		assert.Len(t, blockdoc.Prune([]*blockdoc.Block{item}), 1)
	})

	t.Run("drops blocks without kind or payload", func(t *testing.T) {
		t.Parallel()

		tree := []*blockdoc.Block{
			{Payload: &blockdoc.TextPayload{Runs: text("no kind")}},
			{Kind: blockdoc.KindBulletedListItem},
			{Kind: blockdoc.KindCallout, Payload: &blockdoc.TextPayload{Runs: text("wrong payload")}},
			{Kind: blockdoc.KindImage, Payload: &blockdoc.MediaPayload{}},
			nil,
		}

		assert.Empty(t, blockdoc.Prune(tree))
	})

	t.Run("drops table rows of the wrong width and empty tables", func(t *testing.T) {
		t.Parallel()

		tbl := blockdoc.NewTable([]*blockdoc.Block{
			blockdoc.NewTableRow([]blockdoc.Cell{text("a"), text("b")}),
			blockdoc.NewTableRow([]blockdoc.Cell{text("c")}),
			blockdoc.NewTableRow([]blockdoc.Cell{text("d"), nil}),
		}, true)
		empty := blockdoc.NewTable(nil, false)

		got := blockdoc.Prune([]*blockdoc.Block{tbl, empty})

		require.Len(t, got, 1)
		assert.Len(t, got[0].Children, 2)
	})

	t.Run("drops stray table rows", func(t *testing.T) {
		t.Parallel()

		tree := []*blockdoc.Block{blockdoc.NewTableRow([]blockdoc.Cell{text("a")})}

		assert.Empty(t, blockdoc.Prune(tree))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		nested := blockdoc.NewListItem(false, nil)
		nested.Children = []*blockdoc.Block{
			blockdoc.NewParagraph(nil),
			blockdoc.NewListItem(true, text("one")),
		}
		tree := []*blockdoc.Block{
			blockdoc.NewHeading(2, text("Title")),
			nested,
			blockdoc.NewParagraph(text("")),
			table("x", "y"),
			blockdoc.NewImage(blockdoc.MediaSource{URL: "https://example.com/a.png"}, "", nil),
		}

		once := blockdoc.Prune(tree)
		snapshot := blockdoc.FormatOutline(once)
		twice := blockdoc.Prune(once)

		assert.Equal(t, snapshot, blockdoc.FormatOutline(twice))
		assert.Len(t, twice, 4)
	})
}

func TestCollection_Prune(t *testing.T) {
	t.Parallel()

	t.Run("removes entries pruned to nothing together with their markers", func(t *testing.T) {
		t.Parallel()

		owner := marked(blockdoc.NewListItem(false, text("Step")), "b1", "m1")
		col := &blockdoc.Collection{
			Primary:  []*blockdoc.Block{owner},
			Deferred: []blockdoc.DeferredSubtree{{MarkerID: "m1", OwnerBlockID: "b1", Blocks: []*blockdoc.Block{blockdoc.NewParagraph(nil)}}},
		}

		col.Prune()

		assert.Empty(t, col.Deferred)
		require.Len(t, col.Primary, 1)
		assert.Nil(t, col.Primary[0].Marker)
		assert.NoError(t, blockdoc.VerifyMarkers(col.Primary, col.Deferred))
	})

	t.Run("prunes an owner that becomes empty once its marker is removed", func(t *testing.T) {
		t.Parallel()

		owner := marked(blockdoc.NewListItem(false, nil), "b1", "m1")
		col := &blockdoc.Collection{
			Primary:  []*blockdoc.Block{owner, blockdoc.NewParagraph(text("after"))},
			Deferred: []blockdoc.DeferredSubtree{{MarkerID: "m1", OwnerBlockID: "b1", Blocks: []*blockdoc.Block{blockdoc.NewTable(nil, false)}}},
		}

		col.Prune()

		assert.Empty(t, col.Deferred)
		require.Len(t, col.Primary, 1)
		assert.Equal(t, "after", blockdoc.PlainText(col.Primary[0].Runs()))
	})

	t.Run("keeps entries with surviving blocks", func(t *testing.T) {
		t.Parallel()

		owner := marked(blockdoc.NewListItem(false, text("Step")), "b1", "m1")
		col := &blockdoc.Collection{
			Primary:  []*blockdoc.Block{owner},
			Deferred: []blockdoc.DeferredSubtree{{MarkerID: "m1", OwnerBlockID: "b1", Blocks: []*blockdoc.Block{table("a")}}},
		}

		col.Prune()

		require.Len(t, col.Deferred, 1)
		assert.NotNil(t, col.Primary[0].Marker)
	})
}
