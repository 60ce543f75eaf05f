package mock

import (
	"context"

	"github.com/fwojciec/docdex"
)

var _ docdex.FingerprintStore = (*FingerprintStore)(nil)

// FingerprintStore is a mock implementation of docdex.FingerprintStore.
type FingerprintStore struct {
	FindFingerprintFn func(ctx context.Context, pageID string) (*docdex.Fingerprint, error)
	SaveFingerprintFn func(ctx context.Context, fp *docdex.Fingerprint) error
	RecordBuildFn     func(ctx context.Context, run *docdex.BuildRun) error
}

func (s *FingerprintStore) FindFingerprint(ctx context.Context, pageID string) (*docdex.Fingerprint, error) {
	return s.FindFingerprintFn(ctx, pageID)
}

func (s *FingerprintStore) SaveFingerprint(ctx context.Context, fp *docdex.Fingerprint) error {
	return s.SaveFingerprintFn(ctx, fp)
}

func (s *FingerprintStore) RecordBuild(ctx context.Context, run *docdex.BuildRun) error {
	if s.RecordBuildFn == nil {
		return nil
	}
	return s.RecordBuildFn(ctx, run)
}
