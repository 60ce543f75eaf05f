package docdex_test

import (
	"testing"

	"github.com/fwojciec/docdex"
	"github.com/stretchr/testify/assert"
)

func TestSkipRecordID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		skip bool
	}{
		{"guide/install", false},
		{"README", true},
		{"readme", true},
		{"docs/Readme", true},
		{"project-readme-notes", true},
		{"_drafts/page", true},
		{"guide/_hidden", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.skip, docdex.SkipRecordID(tt.id))
		})
	}
}

func TestDocumentRecord_Indexable(t *testing.T) {
	t.Parallel()

	t.Run("requires id, title and content", func(t *testing.T) {
		t.Parallel()

		assert.True(t, (&docdex.DocumentRecord{ID: "a", Title: "t", Content: "c"}).Indexable())
		assert.False(t, (&docdex.DocumentRecord{Title: "t", Content: "c"}).Indexable())
		assert.False(t, (&docdex.DocumentRecord{ID: "a", Content: "c"}).Indexable())
		assert.False(t, (&docdex.DocumentRecord{ID: "a", Title: "t"}).Indexable())
	})

	t.Run("skipped ids are never indexable", func(t *testing.T) {
		t.Parallel()

		assert.False(t, (&docdex.DocumentRecord{ID: "readme", Title: "t", Content: "c"}).Indexable())
		assert.False(t, (&docdex.DocumentRecord{ID: "_internal", Title: "t", Content: "c"}).Indexable())
	})
}

func TestDocumentRecord_MetadataOnly(t *testing.T) {
	t.Parallel()

	full := &docdex.DocumentRecord{
		ID:          "guide/install",
		Title:       "Install",
		Description: "How to install",
		Tags:        []string{"setup"},
		URL:         "/guide/install.html",
		Content:     "very long body",
		Summary:     "short body",
		Headings:    []docdex.Heading{{Text: "Install", Level: 1}},
		Keywords:    []string{"install"},
	}

	got := full.MetadataOnly()

	assert.Equal(t, "guide/install", got.ID)
	assert.Equal(t, "Install", got.Title)
	assert.Equal(t, "How to install", got.Description)
	assert.Equal(t, []string{"setup"}, got.Tags)
	assert.Equal(t, "/guide/install.html", got.URL)
	assert.Empty(t, got.Content)
	assert.Empty(t, got.Summary)
	assert.Empty(t, got.Headings)
	assert.Empty(t, got.Keywords)
}
