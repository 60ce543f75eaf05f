package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore is a mock implementation of docdex.ArtifactStore.
type ArtifactStore struct {
	SaveMainFn func(ctx context.Context, data []byte) error
	SavePageFn func(ctx context.Context, id string, data []byte) error
	CommitFn   func() error
	AbortFn    func() error
}

func (s *ArtifactStore) SaveMain(ctx context.Context, data []byte) error {
	if s.SaveMainFn == nil {
		return nil
	}
	return s.SaveMainFn(ctx, data)
}

func (s *ArtifactStore) SavePage(ctx context.Context, id string, data []byte) error {
	if s.SavePageFn == nil {
		return nil
	}
	return s.SavePageFn(ctx, id, data)
}

func (s *ArtifactStore) Commit() error {
	if s.CommitFn == nil {
		return nil
	}
	return s.CommitFn()
}

func (s *ArtifactStore) Abort() error {
	if s.AbortFn == nil {
		return nil
	}
	return s.AbortFn()
}
