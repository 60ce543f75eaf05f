// Package load provides the runtime document loader: it fetches one index
// artifact, normalizes the wire payload, filters invalid records,
// sanitizes every field, and materializes a read-only document store.
package load

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/fwojciec/docdex"
)

// DefaultCandidatePaths are the relative index locations tried in order,
// tolerating the loader being invoked from pages at varying depth in the
// site hierarchy.
func DefaultCandidatePaths() []string {
	return []string{
		"./index.json",
		"../index.json",
		"../../index.json",
		"../../../index.json",
	}
}

// Loader fetches and materializes one index artifact. A Loader is
// single-shot: each Load builds a fresh store, never merging into a
// previous one.
type Loader struct {
	Fetcher docdex.ArtifactFetcher

	// BaseURL is the page URL the loader runs from; candidate paths are
	// resolved against it.
	BaseURL string

	// Paths overrides the candidate paths. Empty means the defaults.
	Paths []string

	Logger *slog.Logger
}

// Load attempts the candidate paths sequentially and builds the store
// from the first path yielding a successful fetch and parseable JSON.
// Each path is attempted exactly once. When every candidate fails, Load
// returns EUNAVAILABLE and no store: the loader never exposes a partially
// populated store.
func (l *Loader) Load(ctx context.Context) (*docdex.Store, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	paths := l.Paths
	if len(paths) == 0 {
		paths = DefaultCandidatePaths()
	}

	var lastErr error
	for _, path := range paths {
		target, err := l.resolve(path)
		if err != nil {
			lastErr = err
			continue
		}

		data, err := l.Fetcher.Fetch(ctx, target)
		if err != nil {
			logger.Debug("candidate path failed", "url", target, "err", err)
			lastErr = err
			continue
		}

		raws, err := docdex.DecodeArtifact(data)
		if err != nil {
			logger.Debug("candidate path returned invalid JSON", "url", target, "err", err)
			lastErr = err
			continue
		}

		records := make([]*docdex.DocumentRecord, len(raws))
		for i, raw := range raws {
			records[i] = docdex.SanitizeRecord(raw)
		}
		store := docdex.NewStore(records)
		logger.Info("documents loaded",
			"url", target,
			"documents", store.Len(),
			"dropped", store.Dropped(),
		)
		return store, nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no candidate paths")
	}
	return nil, docdex.Errorf(docdex.EUNAVAILABLE, "no candidate index path succeeded: %v", lastErr)
}

// resolve turns a candidate relative path into an absolute URL against
// the loader's base. Without a base, the path is used as-is.
func (l *Loader) resolve(path string) (string, error) {
	if l.BaseURL == "" {
		return path, nil
	}
	base, err := url.Parse(l.BaseURL)
	if err != nil {
		return "", docdex.Errorf(docdex.EINVALID, "invalid base URL %q: %v", l.BaseURL, err)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return "", docdex.Errorf(docdex.EINVALID, "invalid candidate path %q: %v", path, err)
	}
	return base.ResolveReference(ref).String(), nil
}
