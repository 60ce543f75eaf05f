package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.PageSource = (*PageSource)(nil)

// PageSource is a mock implementation of docdex.PageSource.
type PageSource struct {
	ListFn func(ctx context.Context) ([]*docdex.Page, error)
}

func (s *PageSource) List(ctx context.Context) ([]*docdex.Page, error) {
	return s.ListFn(ctx)
}
