package docdex

import (
	"strconv"
	"strings"
	"unicode"
)

// ExtractHeadings parses markdown and returns all headings (H1-H6) in
// document order. Headings inside fenced code blocks are ignored.
func ExtractHeadings(markdown string) []Heading {
	if markdown == "" {
		return nil
	}

	var headings []Heading
	inFence := false
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		level, text := parseHeading(trimmed)
		if level == 0 {
			continue
		}
		headings = append(headings, Heading{Text: text, Level: level})
	}
	return headings
}

// HeadingsText flattens heading text into a single space-joined string
// for coarse matching.
func HeadingsText(headings []Heading) string {
	if len(headings) == 0 {
		return ""
	}
	parts := make([]string, 0, len(headings))
	for _, h := range headings {
		if h.Text != "" {
			parts = append(parts, h.Text)
		}
	}
	return strings.Join(parts, " ")
}

// RemoveSections removes gated content blocks from markdown. A block is
// identified by its heading anchor (see HeadingAnchor) and spans from the
// heading to the next heading of the same or higher level. Anchors follow
// document order with numeric suffixes for duplicates, so repeated
// headings address distinct blocks.
func RemoveSections(markdown string, anchors []string) string {
	if markdown == "" || len(anchors) == 0 {
		return markdown
	}

	excluded := make(map[string]bool, len(anchors))
	for _, a := range anchors {
		excluded[a] = true
	}

	var out []string
	anchorCounts := make(map[string]int)
	inFence := false
	skipLevel := 0 // 0 when not skipping

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			if skipLevel == 0 {
				out = append(out, line)
			}
			inFence = !inFence
			continue
		}
		if inFence {
			if skipLevel == 0 {
				out = append(out, line)
			}
			continue
		}

		level, text := parseHeading(trimmed)
		if level > 0 {
			anchor := uniqueAnchor(text, anchorCounts)
			switch {
			case excluded[anchor]:
				skipLevel = level
				continue
			case skipLevel > 0 && level <= skipLevel:
				skipLevel = 0
			}
		}

		if skipLevel == 0 {
			out = append(out, line)
		}
	}

	return strings.Join(out, "\n")
}

// HeadingAnchor creates a URL-safe anchor from a heading title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func HeadingAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimSuffix(sb.String(), "-")
}

// uniqueAnchor returns the anchor for a heading, suffixing duplicates
// with a numeric counter ("example", "example-1", ...).
func uniqueAnchor(title string, counts map[string]int) string {
	base := HeadingAnchor(title)
	count := counts[base]
	counts[base] = count + 1
	if count == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(count)
}

// parseHeading returns the level and text of an ATX markdown heading,
// or level 0 when the line is not a heading.
func parseHeading(line string) (int, string) {
	level := 0
	for level < len(line) && level < 7 && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 || level >= len(line) || line[level] != ' ' {
		return 0, ""
	}
	return level, strings.TrimSpace(line[level:])
}
