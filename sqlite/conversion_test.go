package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/blockdoc"
	"github.com/fwojciec/blockdoc/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversionService_SaveConversion(t *testing.T) {
	t.Parallel()

	t.Run("stores a conversion and sets its timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConversionService(setupTestDB(t))
		ctx := context.Background()

		c := &blockdoc.Conversion{
			Key:        "abc",
			File:       "docs/intro.html",
			Title:      "Intro",
			SourceHash: "ff00",
			Output:     []byte(`{"title":"Intro"}`),
		}
		require.NoError(t, svc.SaveConversion(ctx, c))
		assert.False(t, c.CreatedAt.IsZero())

		got, err := svc.FindConversion(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, "docs/intro.html", got.File)
		assert.Equal(t, "Intro", got.Title)
		assert.Equal(t, "ff00", got.SourceHash)
		assert.JSONEq(t, `{"title":"Intro"}`, string(got.Output))
		assert.True(t, c.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("replaces a conversion with the same key", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConversionService(setupTestDB(t))
		ctx := context.Background()

		require.NoError(t, svc.SaveConversion(ctx, &blockdoc.Conversion{Key: "k", Title: "Old", Output: []byte("{}")}))
		require.NoError(t, svc.SaveConversion(ctx, &blockdoc.Conversion{Key: "k", Title: "New", Output: []byte("[]")}))

		got, err := svc.FindConversion(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "New", got.Title)
		assert.Equal(t, "[]", string(got.Output))

		all, err := svc.FindConversions(ctx, blockdoc.ConversionFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("returns error for invalid conversion", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConversionService(setupTestDB(t))

		err := svc.SaveConversion(context.Background(), &blockdoc.Conversion{Key: "k"})
		require.Error(t, err)
		assert.Equal(t, blockdoc.EINVALID, blockdoc.ErrorCode(err))
	})
}

func TestConversionService_FindConversion(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for unknown key", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConversionService(setupTestDB(t))

		_, err := svc.FindConversion(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, blockdoc.ENOTFOUND, blockdoc.ErrorCode(err))
	})
}

func TestConversionService_FindConversions(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.ConversionService) {
		t.Helper()
		base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		for i, c := range []*blockdoc.Conversion{
			{Key: "a", File: "one.html"},
			{Key: "b", File: "two.html"},
			{Key: "c", File: "one.html"},
		} {
			c.Output = []byte("{}")
			c.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			require.NoError(t, svc.SaveConversion(context.Background(), c))
		}
	}

	keys := func(cs []*blockdoc.Conversion) []string {
		var out []string
		for _, c := range cs {
			out = append(out, c.Key)
		}
		return out
	}

	t.Run("orders newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConversionService(setupTestDB(t))
		seed(t, svc)

		got, err := svc.FindConversions(context.Background(), blockdoc.ConversionFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "b", "a"}, keys(got))
	})

	t.Run("filters by file", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConversionService(setupTestDB(t))
		seed(t, svc)

		file := "one.html"
		got, err := svc.FindConversions(context.Background(), blockdoc.ConversionFilter{File: &file})
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a"}, keys(got))
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConversionService(setupTestDB(t))
		seed(t, svc)

		got, err := svc.FindConversions(context.Background(), blockdoc.ConversionFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, []string{"b"}, keys(got))
	})
}

func TestConversionService_DeleteConversion(t *testing.T) {
	t.Parallel()

	t.Run("removes the conversion", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConversionService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.SaveConversion(ctx, &blockdoc.Conversion{Key: "k", Output: []byte("{}")}))

		require.NoError(t, svc.DeleteConversion(ctx, "k"))

		_, err := svc.FindConversion(ctx, "k")
		assert.Equal(t, blockdoc.ENOTFOUND, blockdoc.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for unknown key", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewConversionService(setupTestDB(t))

		err := svc.DeleteConversion(context.Background(), "missing")
		assert.Equal(t, blockdoc.ENOTFOUND, blockdoc.ErrorCode(err))
	})
}
