package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/docdex"
)

// Compile-time interface verification.
var _ docdex.FingerprintStore = (*FingerprintService)(nil)

// FingerprintService implements docdex.FingerprintStore using SQLite.
type FingerprintService struct {
	db *DB
}

// NewFingerprintService creates a new FingerprintService.
func NewFingerprintService(db *DB) *FingerprintService {
	return &FingerprintService{db: db}
}

// FindFingerprint retrieves a page's fingerprint.
// Returns ENOTFOUND if no fingerprint exists for the page.
func (s *FingerprintService) FindFingerprint(ctx context.Context, pageID string) (*docdex.Fingerprint, error) {
	var fp docdex.Fingerprint
	var builtAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT page_id, hash, record, built_at
		FROM fingerprints
		WHERE page_id = ?
	`, pageID).Scan(&fp.PageID, &fp.Hash, &fp.Record, &builtAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docdex.Errorf(docdex.ENOTFOUND, "fingerprint for page %q not found", pageID)
	} else if err != nil {
		return nil, err
	}

	fp.BuiltAt, err = time.Parse(time.RFC3339, builtAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse built_at: %w", err)
	}
	return &fp, nil
}

// SaveFingerprint creates or replaces a page's fingerprint.
func (s *FingerprintService) SaveFingerprint(ctx context.Context, fp *docdex.Fingerprint) error {
	if fp.PageID == "" {
		return docdex.Errorf(docdex.EINVALID, "fingerprint page ID required")
	}
	if fp.Hash == "" {
		return docdex.Errorf(docdex.EINVALID, "fingerprint hash required")
	}

	builtAt := fp.BuiltAt
	if builtAt.IsZero() {
		builtAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fingerprints (page_id, hash, record, built_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(page_id) DO UPDATE SET
			hash = excluded.hash,
			record = excluded.record,
			built_at = excluded.built_at
	`, fp.PageID, fp.Hash, []byte(fp.Record), builtAt.Format(time.RFC3339))

	return err
}

// RecordBuild appends a build run to the build history.
func (s *FingerprintService) RecordBuild(ctx context.Context, run *docdex.BuildRun) error {
	if run.ID == "" {
		return docdex.Errorf(docdex.EINVALID, "build run ID required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO builds (id, started_at, finished_at, pages, built, reused, skipped, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.Pages, run.Built, run.Reused, run.Skipped, run.Failed)

	return err
}

// Builds returns the most recent build runs, newest first.
func (s *FingerprintService) Builds(ctx context.Context, limit int) ([]*docdex.BuildRun, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, finished_at, pages, built, reused, skipped, failed
		FROM builds
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*docdex.BuildRun
	for rows.Next() {
		var run docdex.BuildRun
		var startedAt, finishedAt string
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt, &run.Pages, &run.Built, &run.Reused, &run.Skipped, &run.Failed); err != nil {
			return nil, err
		}
		if run.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("failed to parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt); err != nil {
			return nil, fmt.Errorf("failed to parse finished_at: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}
