package docdex

import (
	"context"
	"time"
)

// Page is one documentation page as produced by the documentation build
// system: an identifier, a title, the raw rendered body, and front-matter
// metadata. The builder consumes pages; it never renders them.
type Page struct {
	// ID is the page identifier, stable across rebuilds. Derived from the
	// page's position in the tree (e.g. "getting-started/install").
	ID string

	// Path is the page's source path relative to the tree root, used for
	// exclude-pattern matching.
	Path string

	Title string

	// Body is the raw rendered page body (HTML).
	Body string

	// Size is the raw rendered size in bytes, used by the large-file skip.
	Size int

	ModTime time.Time

	Meta PageMeta
}

// PageMeta holds a page's front-matter metadata.
type PageMeta struct {
	Description  string                `yaml:"description"`
	Summary      string                `yaml:"summary"`
	Keywords     []string              `yaml:"keywords"`
	Tags         []string              `yaml:"tags"`
	Topics       []string              `yaml:"topics"`
	Audience     []string              `yaml:"audience"`
	ContentType  string                `yaml:"content_type"`
	Difficulty   string                `yaml:"difficulty"`
	DocType      string                `yaml:"doc_type"`
	Author       string                `yaml:"author"`
	SectionPath  []string              `yaml:"section_path"`
	Facets       map[string]FacetValue `yaml:"-"`
	LastModified string                `yaml:"last_modified"`
	URL          string                `yaml:"url"`
}

// PageSource enumerates the documentation page tree in traversal order.
// The returned order defines the order of records in the emitted artifact.
type PageSource interface {
	List(ctx context.Context) ([]*Page, error)
}

// GateDecision is the content-gating system's verdict for one page.
type GateDecision struct {
	// Include reports whether the page appears in this build at all.
	Include bool

	// ExcludeBlocks names content blocks (by heading anchor) to remove
	// from the page's content and headings before extraction.
	ExcludeBlocks []string
}

// Gate is the external content-gating collaborator. Its decisions are
// authoritative and cannot be overridden by builder configuration.
type Gate interface {
	Decide(ctx context.Context, page *Page) (GateDecision, error)
}
