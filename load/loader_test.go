package load_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/fwojciec/docdex/load"
	"github.com/fwojciec/docdex/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fetcherReturning(payload string) *mock.ArtifactFetcher {
	return &mock.ArtifactFetcher{
		FetchFn: func(_ context.Context, _ string) ([]byte, error) {
			return []byte(payload), nil
		},
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("loads an array-shaped artifact", func(t *testing.T) {
		t.Parallel()

		loader := &load.Loader{Fetcher: fetcherReturning(
			`[{"id":"a","title":"A","content":"body a"},{"id":"b","title":"B","content":"body b"}]`,
		)}

		store, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.True(t, store.Ready())
		assert.Equal(t, 2, store.Len())
		rec, ok := store.Get("a")
		require.True(t, ok)
		assert.Equal(t, "A", rec.Title)
	})

	t.Run("loads a children-wrapped artifact identically", func(t *testing.T) {
		t.Parallel()

		array := &load.Loader{Fetcher: fetcherReturning(
			`[{"id":"a","title":"A","content":"body"}]`,
		)}
		wrapped := &load.Loader{Fetcher: fetcherReturning(
			`{"children":[{"id":"a","title":"A","content":"body"}]}`,
		)}

		fromArray, err := array.Load(context.Background())
		require.NoError(t, err)
		fromWrapper, err := wrapped.Load(context.Background())
		require.NoError(t, err)

		assert.Equal(t, fromArray.All(), fromWrapper.All())
	})

	t.Run("loads a single-object artifact", func(t *testing.T) {
		t.Parallel()

		loader := &load.Loader{Fetcher: fetcherReturning(
			`{"id":"solo","title":"Solo","content":"body"}`,
		)}

		store, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("drops readme and invalid records while counting them", func(t *testing.T) {
		t.Parallel()

		loader := &load.Loader{Fetcher: fetcherReturning(`[
			{"id":"guide","title":"Guide","content":"body"},
			{"id":"README","title":"Readme","content":"body"},
			{"id":"_internal","title":"Hidden","content":"body"},
			{"id":"untitled","content":"body"},
			{"id":"empty","title":"Empty"}
		]`)}

		store, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())
		assert.Equal(t, 4, store.Dropped())
		_, ok := store.Get("README")
		assert.False(t, ok)
	})

	t.Run("non-object collection elements count as drops", func(t *testing.T) {
		t.Parallel()

		loader := &load.Loader{Fetcher: fetcherReturning(
			`[{"id":"a","title":"A","content":"body"},"noise",42]`,
		)}

		store, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())
		assert.Equal(t, 2, store.Dropped())
		assert.Equal(t, 2, store.Stats().Dropped)
	})

	t.Run("sanitizes wire values during load", func(t *testing.T) {
		t.Parallel()

		loader := &load.Loader{Fetcher: fetcherReturning(`[{
			"id":"a","title":"A","content":"body",
			"headings":[{"text":"H","level":"2"},{"text":"X","level":"deep"}],
			"keywords":"flattened legacy value",
			"tags":["go",42]
		}]`)}

		store, err := loader.Load(context.Background())

		require.NoError(t, err)
		rec, ok := store.Get("a")
		require.True(t, ok)
		require.Len(t, rec.Headings, 2)
		assert.Equal(t, 2, rec.Headings[0].Level)
		assert.Equal(t, 1, rec.Headings[1].Level)
		assert.Equal(t, []string{"flattened legacy value"}, rec.Keywords)
		assert.Equal(t, []string{"go", "42"}, rec.Tags)
	})

	t.Run("tries candidate paths in order and stops at the first success", func(t *testing.T) {
		t.Parallel()

		var attempts []string
		loader := &load.Loader{
			BaseURL: "https://docs.example.com/guide/install/page.html",
			Fetcher: &mock.ArtifactFetcher{
				FetchFn: func(_ context.Context, url string) ([]byte, error) {
					attempts = append(attempts, url)
					if len(attempts) < 3 {
						return nil, errors.New("HTTP 404")
					}
					return []byte(`[{"id":"a","title":"A","content":"b"}]`), nil
				},
			},
		}

		store, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())
		assert.Equal(t, []string{
			"https://docs.example.com/guide/install/index.json",
			"https://docs.example.com/guide/index.json",
			"https://docs.example.com/index.json",
		}, attempts)
	})

	t.Run("a parse failure on one path falls through to the next", func(t *testing.T) {
		t.Parallel()

		calls := 0
		loader := &load.Loader{
			Fetcher: &mock.ArtifactFetcher{
				FetchFn: func(_ context.Context, _ string) ([]byte, error) {
					calls++
					if calls == 1 {
						return []byte(`{"id":`), nil
					}
					return []byte(`[{"id":"a","title":"A","content":"b"}]`), nil
				},
			},
		}

		store, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 1, store.Len())
		assert.Equal(t, 2, calls)
	})

	t.Run("returns EUNAVAILABLE and no store when every path fails", func(t *testing.T) {
		t.Parallel()

		calls := 0
		loader := &load.Loader{
			Fetcher: &mock.ArtifactFetcher{
				FetchFn: func(_ context.Context, _ string) ([]byte, error) {
					calls++
					return nil, errors.New("HTTP 404")
				},
			},
		}

		store, err := loader.Load(context.Background())

		require.Error(t, err)
		assert.Equal(t, docdex.EUNAVAILABLE, docdex.ErrorCode(err))
		assert.Nil(t, store)
		assert.Equal(t, len(load.DefaultCandidatePaths()), calls)
	})

	t.Run("custom paths override the defaults", func(t *testing.T) {
		t.Parallel()

		var attempts []string
		loader := &load.Loader{
			Paths: []string{"/search/index.json"},
			Fetcher: &mock.ArtifactFetcher{
				FetchFn: func(_ context.Context, url string) ([]byte, error) {
					attempts = append(attempts, url)
					return []byte(`[{"id":"a","title":"A","content":"b"}]`), nil
				},
			},
		}

		_, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"/search/index.json"}, attempts)
	})

	t.Run("repeated loads replace rather than accumulate", func(t *testing.T) {
		t.Parallel()

		loader := &load.Loader{Fetcher: fetcherReturning(
			`[{"id":"a","title":"A","content":"body"}]`,
		)}

		first, err := loader.Load(context.Background())
		require.NoError(t, err)
		second, err := loader.Load(context.Background())
		require.NoError(t, err)

		assert.Equal(t, first.All(), second.All())
		assert.Equal(t, 1, second.Len())
	})

	t.Run("empty artifact yields a not-ready store", func(t *testing.T) {
		t.Parallel()

		loader := &load.Loader{Fetcher: fetcherReturning(`[]`)}

		store, err := loader.Load(context.Background())

		require.NoError(t, err)
		assert.False(t, store.Ready())
		assert.Equal(t, 0, store.Len())
	})
}
