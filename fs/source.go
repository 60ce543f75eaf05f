// Package fs provides file-based implementations of the documentation
// page source and the artifact store.
package fs

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/fwojciec/docdex"
	"gopkg.in/yaml.v3"
)

// Ensure FileSource implements docdex.PageSource at compile time.
var _ docdex.PageSource = (*FileSource)(nil)

// FileSource reads a tree of rendered documentation pages from disk.
// Pages are HTML files, optionally prefixed with a YAML front-matter
// block carried over by the renderer. The walk is lexical, so the page
// order (and therefore the artifact order) is deterministic.
type FileSource struct {
	dir string
}

// NewFileSource creates a FileSource rooted at dir.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// List walks the page tree in lexical order and returns one Page per
// rendered file.
func (s *FileSource) List(ctx context.Context) ([]*docdex.Page, error) {
	var pages []*docdex.Page

	err := filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !isPageFile(path) {
			return nil
		}

		page, err := s.readPage(path, d)
		if err != nil {
			return err
		}
		pages = append(pages, page)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pages, nil
}

func (s *FileSource) readPage(path string, d fs.DirEntry) (*docdex.Page, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		return nil, err
	}
	rel = filepath.ToSlash(rel)

	matter, body, err := splitFrontMatter(string(raw))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "page %q: invalid front matter: %v", rel, err)
	}

	page := &docdex.Page{
		ID:   pageID(rel),
		Path: rel,
		Body: body,
		Size: len(raw),
		Meta: matter.PageMeta,
	}
	page.Meta.Facets = facetValues(matter.Facets)

	if info, err := d.Info(); err == nil {
		page.ModTime = info.ModTime()
	}

	page.Title = matter.Title
	if page.Title == "" {
		page.Title = firstHeadingText(body)
	}
	if page.Title == "" {
		page.Title = titleFromPath(rel)
	}

	return page, nil
}

// frontMatter is the YAML block preceding a rendered page body.
type frontMatter struct {
	Title          string `yaml:"title"`
	docdex.PageMeta `yaml:",inline"`
	Facets         map[string]any `yaml:"facets"`
}

// splitFrontMatter separates an optional leading YAML front-matter block
// (delimited by "---" lines) from the page body.
func splitFrontMatter(raw string) (frontMatter, string, error) {
	var matter frontMatter

	if !strings.HasPrefix(raw, "---\n") && !strings.HasPrefix(raw, "---\r\n") {
		return matter, raw, nil
	}

	rest := raw[strings.Index(raw, "\n")+1:]
	end := strings.Index(rest, "\n---")
	if end < 0 {
		return matter, raw, nil
	}
	block := rest[:end]
	body := rest[end+len("\n---"):]
	body = strings.TrimPrefix(strings.TrimPrefix(body, "\r"), "\n")

	if err := yaml.Unmarshal([]byte(block), &matter); err != nil {
		return matter, "", err
	}
	return matter, body, nil
}

// facetValues converts generic front-matter facet values into the domain
// representation: strings stay strings, sequences become string sets,
// anything else is dropped.
func facetValues(raw map[string]any) map[string]docdex.FacetValue {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]docdex.FacetValue, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case string:
			if v != "" {
				out[key] = docdex.StringFacet(v)
			}
		case []any:
			var values []string
			for _, item := range v {
				if s, ok := item.(string); ok && s != "" {
					values = append(values, s)
				}
			}
			if len(values) > 0 {
				out[key] = docdex.SetFacet(values...)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isPageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// pageID derives the stable page identifier from the relative path by
// stripping the extension: "getting-started/install.html" →
// "getting-started/install".
func pageID(rel string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel))
}

var h1Re = regexp.MustCompile(`(?is)<h1[^>]*>(.*?)</h1>`)
var tagRe = regexp.MustCompile(`<[^>]*>`)

// firstHeadingText returns the text of the first H1 in a rendered body.
func firstHeadingText(body string) string {
	m := h1Re.FindStringSubmatch(body)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(tagRe.ReplaceAllString(m[1], ""))
}

// titleFromPath falls back to a title derived from the file name:
// "getting-started/install.html" → "install".
func titleFromPath(rel string) string {
	base := filepath.Base(rel)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
