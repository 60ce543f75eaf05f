package build

import "regexp"

// Non-searchable structural content stripped before conversion: inline
// vector graphics markup, navigation containers, and HTML comments
// carrying renderer directives.
var (
	svgRe     = regexp.MustCompile(`(?is)<svg\b[^>]*>.*?</svg>`)
	navRe     = regexp.MustCompile(`(?is)<nav\b[^>]*>.*?</nav>`)
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// StripClutter removes non-searchable structural content from a rendered
// page body. It never touches prose content, only markup that would
// pollute the search corpus.
func StripClutter(html string) string {
	html = svgRe.ReplaceAllString(html, "")
	html = navRe.ReplaceAllString(html, "")
	html = commentRe.ReplaceAllString(html, "")
	return html
}
