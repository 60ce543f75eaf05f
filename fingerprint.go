package docdex

import (
	"context"
	"encoding/json"
	"time"
)

// Fingerprint records a page's content hash and the record emitted for it,
// so incremental builds can reuse unchanged pages' records verbatim.
type Fingerprint struct {
	PageID  string          `json:"pageId"`
	Hash    string          `json:"hash"`
	Record  json.RawMessage `json:"record"`
	BuiltAt time.Time       `json:"builtAt"`
}

// BuildRun summarizes one builder invocation for the build history.
type BuildRun struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Pages      int       `json:"pages"`
	Built      int       `json:"built"`
	Reused     int       `json:"reused"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
}

// FingerprintStore persists page fingerprints across builds. It is shared
// read/write across builds but only read during a single build's
// extraction phase; updates happen after extraction completes.
type FingerprintStore interface {
	// FindFingerprint retrieves a page's fingerprint.
	// Returns ENOTFOUND if no fingerprint exists for the page.
	FindFingerprint(ctx context.Context, pageID string) (*Fingerprint, error)

	// SaveFingerprint creates or replaces a page's fingerprint.
	SaveFingerprint(ctx context.Context, fp *Fingerprint) error

	// RecordBuild appends a build run to the build history.
	RecordBuild(ctx context.Context, run *BuildRun) error
}

// ArtifactStore persists emitted artifacts with atomic semantics.
// Save methods write to a temporary location; Commit makes the new
// artifact set permanent; Abort discards pending writes. A failed build
// never clobbers a previously committed index.
type ArtifactStore interface {
	SaveMain(ctx context.Context, data []byte) error
	SavePage(ctx context.Context, id string, data []byte) error
	Commit() error
	Abort() error
}
