package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.Gate = (*Gate)(nil)

// Gate is a mock implementation of docdex.Gate.
type Gate struct {
	DecideFn func(ctx context.Context, page *docdex.Page) (docdex.GateDecision, error)
}

func (g *Gate) Decide(ctx context.Context, page *docdex.Page) (docdex.GateDecision, error) {
	return g.DecideFn(ctx, page)
}
