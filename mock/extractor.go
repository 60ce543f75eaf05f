package mock

import "github.com/fwojciec/docdex"

var _ docdex.FeatureExtractor = (*FeatureExtractor)(nil)

// FeatureExtractor is a mock implementation of docdex.FeatureExtractor.
type FeatureExtractor struct {
	ExtractFn func(html string, baseURL string) (*docdex.PageFeatures, error)
}

func (e *FeatureExtractor) Extract(html string, baseURL string) (*docdex.PageFeatures, error) {
	return e.ExtractFn(html, baseURL)
}
