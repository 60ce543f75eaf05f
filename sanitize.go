package docdex

import (
	"strconv"
	"strings"
)

// Field caps applied by SanitizeRecord. The loader enforces these
// independently of any builder-side truncation: the artifact is treated
// as untrusted input and values are truncated, never rejected.
const (
	MaxTitleLen           = 200
	MaxDescriptionLen     = 500
	MaxSummaryLen         = 500
	MaxContentLen         = 50000
	MaxHeadingsTextLen    = 2000
	MaxURLLen             = 1000
	MaxLastModifiedLen    = 64
	MaxShortStringLen     = 100
	MaxSetItems           = 50
	MaxSetItemLen         = 100
	MaxSectionPathItems   = 20
	MaxSectionPathItemLen = 200
	MaxHeadings           = 100
	MaxHeadingTextLen     = 300
	MaxLinks              = 100
	MaxLinkTextLen        = 200
	MaxCodeBlocks         = 50
	MaxCodeBlockLen       = 5000
	MaxImages             = 50
	MaxFacetValueLen      = 200
)

// SanitizeRecord coerces an untrusted raw record into a DocumentRecord.
// Every string field becomes string-or-empty (numbers and booleans are
// stringified, anything else becomes empty) and is truncated to its cap.
// Array fields become arrays (non-arrays become empty, except the legacy
// flattened-string form of the string-set fields, which becomes a
// one-element set). Heading levels are numerically coerced with a floor
// of 1. Facets are preserved only when the wire value is an object; the
// legacy flat modality field is folded into facets.modality only when
// that key is absent.
func SanitizeRecord(raw RawRecord) *DocumentRecord {
	rec := &DocumentRecord{
		ID:           stringValue(raw["id"], 0),
		Title:        stringValue(raw["title"], MaxTitleLen),
		Description:  stringValue(raw["description"], MaxDescriptionLen),
		Summary:      stringValue(raw["summary"], MaxSummaryLen),
		Content:      stringValue(raw["content"], MaxContentLen),
		URL:          stringValue(raw["url"], MaxURLLen),
		LastModified: stringValue(raw["last_modified"], MaxLastModifiedLen),
		HeadingsText: stringValue(raw["headings_text"], MaxHeadingsTextLen),
		Keywords:     stringSet(raw["keywords"], MaxSetItems, MaxSetItemLen),
		Tags:         stringSet(raw["tags"], MaxSetItems, MaxSetItemLen),
		Topics:       stringSet(raw["topics"], MaxSetItems, MaxSetItemLen),
		Audience:     stringSet(raw["audience"], MaxSetItems, MaxSetItemLen),
		ContentType:  stringValue(raw["content_type"], MaxShortStringLen),
		Difficulty:   stringValue(raw["difficulty"], MaxShortStringLen),
		DocType:      stringValue(raw["doc_type"], MaxShortStringLen),
		Author:       stringValue(raw["author"], MaxShortStringLen),
		SectionPath:  stringSet(raw["section_path"], MaxSectionPathItems, MaxSectionPathItemLen),
		Headings:     sanitizeHeadings(raw["headings"]),
		Links:        sanitizeLinks(raw["links"]),
		CodeBlocks:   sanitizeCodeBlocks(raw["code_blocks"]),
		Images:       sanitizeImages(raw["images"]),
		Facets:       sanitizeFacets(raw["facets"]),
	}

	// Legacy flat modality facet, preserved only if facets.modality is absent.
	if modality := stringValue(raw["modality"], MaxFacetValueLen); modality != "" {
		if _, ok := rec.Facets["modality"]; !ok {
			if rec.Facets == nil {
				rec.Facets = make(map[string]FacetValue)
			}
			rec.Facets["modality"] = StringFacet(modality)
		}
	}

	rec.Book = sanitizeBook(raw["book"])
	rec.Product = sanitizeProduct(raw["product"])
	rec.Site = sanitizeSite(raw["site"])

	return rec
}

// stringValue coerces a wire value to a string and truncates it to max
// runes (0 = unbounded). Strings pass through, numbers and booleans are
// stringified, everything else becomes empty.
func stringValue(v any, max int) string {
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		s = strconv.FormatBool(t)
	default:
		return ""
	}
	return Truncate(s, max)
}

// Truncate shortens s to max runes. max <= 0 means unbounded.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// intValue coerces a wire value to a positive integer, defaulting to 1.
// String values are parsed numerically and fall back to 1 when non-numeric.
func intValue(v any) int {
	var n int
	switch t := v.(type) {
	case float64:
		n = int(t)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 1
		}
		n = parsed
	default:
		return 1
	}
	if n < 1 {
		return 1
	}
	return n
}

// stringSet coerces a wire value to a capped set of strings. Arrays keep
// their non-empty coerced elements; the legacy flattened-string form
// becomes a one-element set; everything else becomes empty.
func stringSet(v any, maxItems, maxEach int) []string {
	switch t := v.(type) {
	case []any:
		var out []string
		for _, item := range t {
			s := stringValue(item, maxEach)
			if s == "" {
				continue
			}
			out = append(out, s)
			if len(out) == maxItems {
				break
			}
		}
		return out
	case string:
		if t == "" {
			return nil
		}
		return []string{Truncate(t, maxEach)}
	default:
		return nil
	}
}

func sanitizeHeadings(v any) []Heading {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []Heading
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, Heading{
			Text:  stringValue(obj["text"], MaxHeadingTextLen),
			Level: intValue(obj["level"]),
		})
		if len(out) == MaxHeadings {
			break
		}
	}
	return out
}

func sanitizeLinks(v any) []Link {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []Link
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		link := Link{
			Text: stringValue(obj["text"], MaxLinkTextLen),
			URL:  stringValue(obj["url"], MaxURLLen),
			Type: stringValue(obj["type"], MaxShortStringLen),
		}
		if link.URL == "" {
			continue
		}
		out = append(out, link)
		if len(out) == MaxLinks {
			break
		}
	}
	return out
}

func sanitizeCodeBlocks(v any) []CodeBlock {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []CodeBlock
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		block := CodeBlock{
			Content:  stringValue(obj["content"], MaxCodeBlockLen),
			Language: stringValue(obj["language"], MaxShortStringLen),
		}
		if block.Content == "" {
			continue
		}
		out = append(out, block)
		if len(out) == MaxCodeBlocks {
			break
		}
	}
	return out
}

func sanitizeImages(v any) []Image {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	var out []Image
	for _, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		img := Image{
			Src: stringValue(obj["src"], MaxURLLen),
			Alt: stringValue(obj["alt"], MaxShortStringLen),
		}
		if img.Src == "" {
			continue
		}
		out = append(out, img)
		if len(out) == MaxImages {
			break
		}
	}
	return out
}

// sanitizeFacets preserves the facets mapping only if the wire value is an
// object. Array values become capped string sets; non-array, non-empty
// values are coerced to a capped string; empty values are dropped.
func sanitizeFacets(v any) map[string]FacetValue {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]FacetValue, len(obj))
	for key, value := range obj {
		if key == "" {
			continue
		}
		if list, ok := value.([]any); ok {
			values := stringSet(list, MaxSetItems, MaxFacetValueLen)
			if len(values) > 0 {
				out[key] = SetFacet(values...)
			}
			continue
		}
		if s := stringValue(value, MaxFacetValueLen); s != "" {
			out[key] = StringFacet(s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sanitizeBook(v any) *BookMeta {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	book := &BookMeta{
		Title:   stringValue(obj["title"], MaxTitleLen),
		Version: stringValue(obj["version"], MaxShortStringLen),
	}
	if book.Title == "" && book.Version == "" {
		return nil
	}
	return book
}

func sanitizeProduct(v any) *ProductMeta {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	product := &ProductMeta{
		Name:    stringValue(obj["name"], MaxShortStringLen),
		Family:  stringSet(obj["family"], MaxSetItems, MaxSetItemLen),
		Version: stringValue(obj["version"], MaxShortStringLen),
	}
	if product.Name == "" && product.Version == "" && len(product.Family) == 0 {
		return nil
	}
	return product
}

func sanitizeSite(v any) *SiteMeta {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	site := &SiteMeta{Name: stringValue(obj["name"], MaxShortStringLen)}
	if site.Name == "" {
		return nil
	}
	return site
}
