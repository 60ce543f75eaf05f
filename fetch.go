package docdex

import "context"

// ArtifactFetcher retrieves raw index artifact bytes from a URL.
type ArtifactFetcher interface {
	// Fetch retrieves the artifact at the given URL. A non-success
	// status is an error; the caller decides whether to try another
	// candidate path.
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Close releases fetcher resources.
	Close() error
}
