package docdex

// PageFeatures holds the conditionally-extracted per-page features.
// Feature extraction is skipped entirely under lazy extraction, yielding
// valid but sparser records.
type PageFeatures struct {
	Links      []Link
	CodeBlocks []CodeBlock
	Images     []Image
	Keywords   []string
}

// FeatureExtractor extracts links, code blocks, images, and keywords from
// a rendered page body.
type FeatureExtractor interface {
	// Extract processes the page body HTML. baseURL, when non-empty, is
	// used to classify links as internal or external.
	Extract(html string, baseURL string) (*PageFeatures, error)
}
