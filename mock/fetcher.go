package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.ArtifactFetcher = (*ArtifactFetcher)(nil)

// ArtifactFetcher is a mock implementation of docdex.ArtifactFetcher.
type ArtifactFetcher struct {
	FetchFn func(ctx context.Context, url string) ([]byte, error)
	CloseFn func() error
}

func (f *ArtifactFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	return f.FetchFn(ctx, url)
}

func (f *ArtifactFetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
