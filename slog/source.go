package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docdex"
)

// Ensure LoggingSource implements docdex.PageSource at compile time.
var _ docdex.PageSource = (*LoggingSource)(nil)

// LoggingSource wraps a PageSource with listing logging.
type LoggingSource struct {
	next   docdex.PageSource
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource.
func NewLoggingSource(next docdex.PageSource, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, logger: logger}
}

// List delegates to the wrapped source, logging page count and duration.
func (s *LoggingSource) List(ctx context.Context) ([]*docdex.Page, error) {
	begin := time.Now()
	pages, err := s.next.List(ctx)
	if err != nil {
		s.logger.Error("list pages", "duration", time.Since(begin), "err", err)
		return nil, err
	}
	s.logger.Info("list pages", "pages", len(pages), "duration", time.Since(begin))
	return pages, nil
}
