// Package goquery provides a goquery-based implementation of
// docdex.FeatureExtractor: links, code blocks, images, and keywords
// extracted from rendered page bodies.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/docdex"
)

// Ensure Extractor implements docdex.FeatureExtractor at compile time.
var _ docdex.FeatureExtractor = (*Extractor)(nil)

// Extractor extracts per-page features from rendered HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes the page body. Links are classified as internal or
// external against baseURL; with an empty baseURL, relative links are
// internal and absolute links external. Results preserve document order.
func (e *Extractor) Extract(html string, baseURL string) (*docdex.PageFeatures, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, docdex.Errorf(docdex.EINVALID, "failed to parse HTML: %v", err)
	}

	var base *url.URL
	if baseURL != "" {
		base, err = url.Parse(baseURL)
		if err != nil {
			return nil, docdex.Errorf(docdex.EINVALID, "invalid base URL: %v", err)
		}
	}

	features := &docdex.PageFeatures{
		Links:      extractLinks(doc, base),
		CodeBlocks: extractCodeBlocks(doc),
		Images:     extractImages(doc),
	}
	features.Keywords = deriveKeywords(doc)
	return features, nil
}

func extractLinks(doc *goquery.Document, base *url.URL) []docdex.Link {
	var links []docdex.Link
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if isNonHTTPLink(href) {
			return
		}

		resolved := href
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				resolved = base.ResolveReference(ref).String()
			}
		}
		if seen[resolved] {
			return
		}
		seen[resolved] = true

		links = append(links, docdex.Link{
			Text: strings.TrimSpace(sel.Text()),
			URL:  resolved,
			Type: linkType(resolved, base),
		})
	})

	return links
}

// isNonHTTPLink reports whether href is a javascript:, mailto:, tel:, or
// fragment-only link.
func isNonHTTPLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(href, "#")
}

func linkType(resolved string, base *url.URL) string {
	u, err := url.Parse(resolved)
	if err != nil || u.Host == "" {
		return docdex.LinkInternal
	}
	if base != nil && strings.EqualFold(u.Host, base.Host) {
		return docdex.LinkInternal
	}
	return docdex.LinkExternal
}

func extractCodeBlocks(doc *goquery.Document) []docdex.CodeBlock {
	var blocks []docdex.CodeBlock

	doc.Find("pre").Each(func(_ int, pre *goquery.Selection) {
		code := pre.Find("code").First()
		target := code
		if code.Length() == 0 {
			target = pre
		}

		content := strings.TrimSpace(target.Text())
		if content == "" {
			return
		}

		blocks = append(blocks, docdex.CodeBlock{
			Content:  content,
			Language: codeLanguage(pre, code),
		})
	})

	return blocks
}

// codeLanguage reads the language from class attributes in the common
// highlighter conventions: "language-go", "lang-go", "highlight-go".
func codeLanguage(pre, code *goquery.Selection) string {
	for _, sel := range []*goquery.Selection{code, pre} {
		if sel.Length() == 0 {
			continue
		}
		class, _ := sel.Attr("class")
		for _, token := range strings.Fields(class) {
			for _, prefix := range []string{"language-", "lang-", "highlight-"} {
				if lang, ok := strings.CutPrefix(token, prefix); ok && lang != "" {
					return lang
				}
			}
		}
	}
	return ""
}

func extractImages(doc *goquery.Document) []docdex.Image {
	var images []docdex.Image

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src, exists := sel.Attr("src")
		if !exists || src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		alt, _ := sel.Attr("alt")
		images = append(images, docdex.Image{
			Src: src,
			Alt: strings.TrimSpace(alt),
		})
	})

	return images
}

// stopWords are excluded from derived keywords.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "as": true, "by": true, "is": true,
	"it": true, "be": true, "with": true, "from": true, "that": true,
	"this": true, "are": true, "was": true, "you": true, "your": true,
}

// deriveKeywords extracts significant terms from the page headings and
// the lead paragraph, preserving first-occurrence order so extraction is
// deterministic.
func deriveKeywords(doc *goquery.Document) []string {
	var text []string
	doc.Find("h1, h2").Each(func(_ int, sel *goquery.Selection) {
		text = append(text, sel.Text())
	})
	if lead := doc.Find("p").First(); lead.Length() > 0 {
		text = append(text, lead.Text())
	}

	seen := make(map[string]bool)
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(strings.Join(text, " "))) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return (r < 'a' || r > 'z') && (r < '0' || r > '9')
		})
		if len(word) <= 2 || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}
	return keywords
}
