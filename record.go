package docdex

import "strings"

// DocumentRecord is one page's extracted, searchable representation. It is
// the unit of exchange between the index builder and the document loader.
// All fields except ID are optional on the wire.
type DocumentRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	Summary      string `json:"summary,omitempty"`
	Content      string `json:"content,omitempty"`
	URL          string `json:"url,omitempty"`
	LastModified string `json:"last_modified,omitempty"`

	Headings     []Heading `json:"headings,omitempty"`
	HeadingsText string    `json:"headings_text,omitempty"`

	Keywords []string `json:"keywords,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Topics   []string `json:"topics,omitempty"`
	Audience []string `json:"audience,omitempty"`

	ContentType string   `json:"content_type,omitempty"`
	Difficulty  string   `json:"difficulty,omitempty"`
	DocType     string   `json:"doc_type,omitempty"`
	Author      string   `json:"author,omitempty"`
	SectionPath []string `json:"section_path,omitempty"`

	// Facets is an open extension point: arbitrary string keys mapping to
	// a string or a set of strings.
	Facets map[string]FacetValue `json:"facets,omitempty"`

	Links      []Link      `json:"links,omitempty"`
	CodeBlocks []CodeBlock `json:"code_blocks,omitempty"`
	Images     []Image     `json:"images,omitempty"`

	// Global metadata, identical across all records in a build.
	Book    *BookMeta    `json:"book,omitempty"`
	Product *ProductMeta `json:"product,omitempty"`
	Site    *SiteMeta    `json:"site,omitempty"`
}

// Heading is one entry of a page's heading tree.
type Heading struct {
	Text  string `json:"text"`
	Level int    `json:"level"`
}

// Link is a cross-reference or external link extracted from a page.
type Link struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url"`
	Type string `json:"type,omitempty"`
}

// Link type values.
const (
	LinkInternal = "internal"
	LinkExternal = "external"
)

// CodeBlock is a code snippet extracted from a page.
type CodeBlock struct {
	Content  string `json:"content"`
	Language string `json:"language,omitempty"`
}

// Image is an image reference extracted from a page.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt,omitempty"`
}

// BookMeta describes the documentation book a record belongs to.
type BookMeta struct {
	Title   string `json:"title,omitempty"`
	Version string `json:"version,omitempty"`
}

// ProductMeta describes the product a record documents.
type ProductMeta struct {
	Name    string   `json:"name,omitempty"`
	Family  []string `json:"family,omitempty"`
	Version string   `json:"version,omitempty"`
}

// SiteMeta describes the site a record was published on.
type SiteMeta struct {
	Name string `json:"name,omitempty"`
}

// SkipRecordID reports whether an id denotes a non-content page that must
// never enter the document store: ids containing "readme" (any case) and
// ids starting with an underscore.
func SkipRecordID(id string) bool {
	if strings.HasPrefix(id, "_") {
		return true
	}
	return strings.Contains(strings.ToLower(id), "readme")
}

// Indexable reports whether a sanitized record is fit for the store.
// A record without an id, title, or content is not indexable, and ids
// rejected by SkipRecordID are excluded regardless of other fields.
func (r *DocumentRecord) Indexable() bool {
	if r.ID == "" || SkipRecordID(r.ID) {
		return false
	}
	return r.Title != "" && r.Content != ""
}

// MetadataOnly returns a copy of the record reduced to its identifying
// metadata (id, title, description, tags, url), for metadata-only main
// indexes.
func (r *DocumentRecord) MetadataOnly() *DocumentRecord {
	return &DocumentRecord{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
		URL:         r.URL,
	}
}
