package docdex_test

import (
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexable(id string) *docdex.DocumentRecord {
	return &docdex.DocumentRecord{ID: id, Title: "Title " + id, Content: "Content " + id}
}

func TestNewStore(t *testing.T) {
	t.Parallel()

	t.Run("stores indexable records keyed by id", func(t *testing.T) {
		t.Parallel()

		store := docdex.NewStore([]*docdex.DocumentRecord{indexable("a"), indexable("b")})

		assert.True(t, store.Ready())
		assert.Equal(t, 2, store.Len())
		rec, ok := store.Get("a")
		require.True(t, ok)
		assert.Equal(t, "Title a", rec.Title)
	})

	t.Run("drops records failing the validity filter and counts them", func(t *testing.T) {
		t.Parallel()

		store := docdex.NewStore([]*docdex.DocumentRecord{
			indexable("good"),
			{ID: "", Title: "no id", Content: "body"},
			{ID: "no-title", Content: "body"},
			{ID: "no-content", Title: "t"},
			indexable("_private/page"),
			indexable("setup/README"),
		})

		assert.Equal(t, 1, store.Len())
		assert.Equal(t, 5, store.Dropped())
	})

	t.Run("duplicate ids are last-write-wins", func(t *testing.T) {
		t.Parallel()

		first := indexable("dup")
		second := indexable("dup")
		second.Title = "Second"

		store := docdex.NewStore([]*docdex.DocumentRecord{first, second})

		assert.Equal(t, 1, store.Len())
		rec, ok := store.Get("dup")
		require.True(t, ok)
		assert.Equal(t, "Second", rec.Title)
	})

	t.Run("store of only dropped records is not ready", func(t *testing.T) {
		t.Parallel()

		store := docdex.NewStore([]*docdex.DocumentRecord{{ID: "readme", Title: "t", Content: "c"}})

		assert.False(t, store.Ready())
		assert.Equal(t, 0, store.Len())
		assert.Equal(t, 1, store.Dropped())
	})
}

func TestStore_Queries(t *testing.T) {
	t.Parallel()

	t.Run("All returns records sorted by id", func(t *testing.T) {
		t.Parallel()

		store := docdex.NewStore([]*docdex.DocumentRecord{
			indexable("zebra"), indexable("alpha"), indexable("mike"),
		})

		all := store.All()

		require.Len(t, all, 3)
		assert.Equal(t, "alpha", all[0].ID)
		assert.Equal(t, "mike", all[1].ID)
		assert.Equal(t, "zebra", all[2].ID)
	})

	t.Run("Map returns a copy", func(t *testing.T) {
		t.Parallel()

		store := docdex.NewStore([]*docdex.DocumentRecord{indexable("a")})

		m := store.Map()
		delete(m, "a")

		assert.Equal(t, 1, store.Len())
	})

	t.Run("Filter returns matches sorted by id", func(t *testing.T) {
		t.Parallel()

		tagged := indexable("b")
		tagged.Tags = []string{"install"}
		taggedToo := indexable("a")
		taggedToo.Tags = []string{"install"}

		store := docdex.NewStore([]*docdex.DocumentRecord{indexable("c"), tagged, taggedToo})

		got := store.Filter(func(r *docdex.DocumentRecord) bool { return len(r.Tags) > 0 })

		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ID)
		assert.Equal(t, "b", got[1].ID)
	})

	t.Run("queries against a not-ready store return empty results", func(t *testing.T) {
		t.Parallel()

		store := docdex.NewStore(nil)

		assert.False(t, store.Ready())
		assert.Equal(t, 0, store.Len())
		_, ok := store.Get("any")
		assert.False(t, ok)
		assert.Nil(t, store.All())
		assert.Empty(t, store.Map())
		assert.Nil(t, store.Filter(func(*docdex.DocumentRecord) bool { return true }))
	})

	t.Run("repeated queries are idempotent", func(t *testing.T) {
		t.Parallel()

		store := docdex.NewStore([]*docdex.DocumentRecord{indexable("a"), indexable("b")})

		first := store.All()
		second := store.All()

		assert.Equal(t, first, second)
		assert.Equal(t, store.Stats(), store.Stats())
	})
}

func TestStore_Stats(t *testing.T) {
	t.Parallel()

	t.Run("aggregates field presence and mean content length", func(t *testing.T) {
		t.Parallel()

		withSummary := indexable("a")
		withSummary.Summary = "short"
		withSummary.Content = "12345"
		withHeadings := indexable("b")
		withHeadings.Headings = []docdex.Heading{{Text: "H", Level: 1}}
		withHeadings.Content = "123456789012345"
		withTags := indexable("c")
		withTags.Tags = []string{"x"}
		withTags.Content = "1234567890"

		store := docdex.NewStore([]*docdex.DocumentRecord{
			withSummary, withHeadings, withTags,
			{ID: "readme", Title: "t", Content: "c"},
		})

		stats := store.Stats()

		assert.Equal(t, 3, stats.Total)
		assert.Equal(t, 1, stats.WithSummary)
		assert.Equal(t, 1, stats.WithHeadings)
		assert.Equal(t, 1, stats.WithTags)
		assert.Equal(t, 10.0, stats.MeanContentLength)
		assert.Equal(t, 1, stats.Dropped)
	})

	t.Run("not-ready store reports zeros but keeps the drop count", func(t *testing.T) {
		t.Parallel()

		store := docdex.NewStore([]*docdex.DocumentRecord{{ID: "_hidden", Title: "t", Content: "c"}})

		stats := store.Stats()

		assert.Equal(t, 0, stats.Total)
		assert.Equal(t, 1, stats.Dropped)
	})
}
