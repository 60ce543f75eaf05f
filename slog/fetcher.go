// Package slog provides logging decorators for docdex interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdex"
)

// Ensure LoggingFetcher implements docdex.ArtifactFetcher at compile time.
var _ docdex.ArtifactFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps an ArtifactFetcher with request logging.
type LoggingFetcher struct {
	next   docdex.ArtifactFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docdex.ArtifactFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher, logging url, bytes, and duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	begin := time.Now()
	data, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch", "url", url, "duration", time.Since(begin), "err", err)
		return nil, err
	}
	f.logger.Info("fetch", "url", url, "bytes", len(data), "duration", time.Since(begin))
	return data, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
