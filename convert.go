package docdex

// Converter converts rendered HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// The input is a page body as produced by the documentation renderer.
	// Returns the Markdown representation of the content.
	Convert(html string) (string, error)
}
