package docdex_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeRecord_Strings(t *testing.T) {
	t.Parallel()

	t.Run("passes well-formed string fields through", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"id":      "guide/install",
			"title":   "Installation",
			"content": "Run the installer.",
			"url":     "/guide/install.html",
		})

		assert.Equal(t, "guide/install", rec.ID)
		assert.Equal(t, "Installation", rec.Title)
		assert.Equal(t, "Run the installer.", rec.Content)
		assert.Equal(t, "/guide/install.html", rec.URL)
	})

	t.Run("stringifies numbers and booleans", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"title":  float64(42),
			"author": true,
		})

		assert.Equal(t, "42", rec.Title)
		assert.Equal(t, "true", rec.Author)
	})

	t.Run("coerces structured values on string fields to empty", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"title":       map[string]any{"nested": "object"},
			"description": []any{"array"},
			"summary":     nil,
		})

		assert.Empty(t, rec.Title)
		assert.Empty(t, rec.Description)
		assert.Empty(t, rec.Summary)
	})

	t.Run("truncates oversized fields to their caps", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"title":   strings.Repeat("t", docdex.MaxTitleLen+100),
			"content": strings.Repeat("c", docdex.MaxContentLen+1),
		})

		assert.Len(t, rec.Title, docdex.MaxTitleLen)
		assert.Len(t, rec.Content, docdex.MaxContentLen)
	})

	t.Run("truncates by runes not bytes", func(t *testing.T) {
		t.Parallel()

		got := docdex.Truncate(strings.Repeat("é", 10), 5)

		assert.Equal(t, strings.Repeat("é", 5), got)
	})
}

func TestSanitizeRecord_Sets(t *testing.T) {
	t.Parallel()

	t.Run("keeps array elements and drops empties", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"tags": []any{"install", "", "setup", nil, float64(3)},
		})

		assert.Equal(t, []string{"install", "setup", "3"}, rec.Tags)
	})

	t.Run("legacy flattened string becomes a one-element set", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"keywords": "install, setup, configure",
		})

		assert.Equal(t, []string{"install, setup, configure"}, rec.Keywords)
	})

	t.Run("caps item count", func(t *testing.T) {
		t.Parallel()

		items := make([]any, docdex.MaxSetItems+10)
		for i := range items {
			items[i] = "tag"
		}

		rec := docdex.SanitizeRecord(docdex.RawRecord{"topics": items})

		assert.Len(t, rec.Topics, docdex.MaxSetItems)
	})

	t.Run("non-array non-string values become empty", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{"audience": float64(7)})

		assert.Empty(t, rec.Audience)
	})
}

func TestSanitizeRecord_Headings(t *testing.T) {
	t.Parallel()

	t.Run("keeps text and numeric level", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"headings": []any{
				map[string]any{"text": "Overview", "level": float64(1)},
				map[string]any{"text": "Details", "level": float64(3)},
			},
		})

		require.Len(t, rec.Headings, 2)
		assert.Equal(t, docdex.Heading{Text: "Overview", Level: 1}, rec.Headings[0])
		assert.Equal(t, docdex.Heading{Text: "Details", Level: 3}, rec.Headings[1])
	})

	t.Run("parses a string level numerically", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"headings": []any{map[string]any{"text": "H", "level": "2"}},
		})

		require.Len(t, rec.Headings, 1)
		assert.Equal(t, 2, rec.Headings[0].Level)
	})

	t.Run("non-numeric and sub-1 levels default to 1", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"headings": []any{
				map[string]any{"text": "A", "level": "deep"},
				map[string]any{"text": "B", "level": float64(0)},
				map[string]any{"text": "C", "level": float64(-2)},
				map[string]any{"text": "D"},
			},
		})

		require.Len(t, rec.Headings, 4)
		for _, h := range rec.Headings {
			assert.Equal(t, 1, h.Level)
		}
	})

	t.Run("drops non-object entries", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"headings": []any{"just text", map[string]any{"text": "Real", "level": float64(2)}},
		})

		require.Len(t, rec.Headings, 1)
		assert.Equal(t, "Real", rec.Headings[0].Text)
	})
}

func TestSanitizeRecord_Collections(t *testing.T) {
	t.Parallel()

	t.Run("drops links without a URL", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"links": []any{
				map[string]any{"text": "no url"},
				map[string]any{"text": "ok", "url": "/a.html", "type": "internal"},
			},
		})

		require.Len(t, rec.Links, 1)
		assert.Equal(t, docdex.Link{Text: "ok", URL: "/a.html", Type: "internal"}, rec.Links[0])
	})

	t.Run("drops code blocks without content", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"code_blocks": []any{
				map[string]any{"language": "go"},
				map[string]any{"content": "fmt.Println(1)", "language": "go"},
			},
		})

		require.Len(t, rec.CodeBlocks, 1)
		assert.Equal(t, "fmt.Println(1)", rec.CodeBlocks[0].Content)
	})

	t.Run("drops images without a src", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"images": []any{
				map[string]any{"alt": "orphan"},
				map[string]any{"src": "/diagram.png", "alt": "diagram"},
			},
		})

		require.Len(t, rec.Images, 1)
		assert.Equal(t, "/diagram.png", rec.Images[0].Src)
	})
}

func TestSanitizeRecord_Facets(t *testing.T) {
	t.Parallel()

	t.Run("keeps object facets with string and set values", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"facets": map[string]any{
				"platform": []any{"linux", "macos"},
				"edition":  "community",
			},
		})

		require.NotNil(t, rec.Facets)
		assert.Equal(t, docdex.SetFacet("linux", "macos"), rec.Facets["platform"])
		assert.Equal(t, docdex.StringFacet("community"), rec.Facets["edition"])
	})

	t.Run("drops non-object facets entirely", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{"facets": "not an object"})

		assert.Nil(t, rec.Facets)
	})

	t.Run("drops empty facet values", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"facets": map[string]any{"empty": "", "blank": []any{}},
		})

		assert.Nil(t, rec.Facets)
	})

	t.Run("folds legacy modality into facets when absent", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{"modality": "video"})

		require.NotNil(t, rec.Facets)
		assert.Equal(t, docdex.StringFacet("video"), rec.Facets["modality"])
	})

	t.Run("facets.modality wins over legacy modality", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"modality": "video",
			"facets":   map[string]any{"modality": "text"},
		})

		assert.Equal(t, docdex.StringFacet("text"), rec.Facets["modality"])
	})
}

func TestSanitizeRecord_GlobalMetadata(t *testing.T) {
	t.Parallel()

	t.Run("keeps populated book, product and site", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"book":    map[string]any{"title": "Handbook", "version": "2.1"},
			"product": map[string]any{"name": "Widget", "family": []any{"tools"}, "version": "9"},
			"site":    map[string]any{"name": "docs.example.com"},
		})

		require.NotNil(t, rec.Book)
		assert.Equal(t, "Handbook", rec.Book.Title)
		require.NotNil(t, rec.Product)
		assert.Equal(t, []string{"tools"}, rec.Product.Family)
		require.NotNil(t, rec.Site)
		assert.Equal(t, "docs.example.com", rec.Site.Name)
	})

	t.Run("all-empty metadata objects become nil", func(t *testing.T) {
		t.Parallel()

		rec := docdex.SanitizeRecord(docdex.RawRecord{
			"book":    map[string]any{},
			"product": map[string]any{"name": ""},
			"site":    "not an object",
		})

		assert.Nil(t, rec.Book)
		assert.Nil(t, rec.Product)
		assert.Nil(t, rec.Site)
	})
}
