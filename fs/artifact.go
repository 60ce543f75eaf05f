package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/docdex"
)

// Ensure ArtifactStore implements docdex.ArtifactStore at compile time.
var _ docdex.ArtifactStore = (*ArtifactStore)(nil)

// ArtifactStore writes index artifacts with atomic update semantics.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on
// Commit, so a failed build never clobbers a previously committed index.
type ArtifactStore struct {
	baseDir string
	name    string
}

// NewArtifactStore creates a new ArtifactStore.
// baseDir is the parent directory, name is the output directory name.
func NewArtifactStore(baseDir, name string) *ArtifactStore {
	return &ArtifactStore{
		baseDir: baseDir,
		name:    name,
	}
}

func (s *ArtifactStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ArtifactStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// SaveMain writes the aggregate index to index.json.
func (s *ArtifactStore) SaveMain(ctx context.Context, data []byte) error {
	return s.write(filepath.Join(s.tempDir(), "index.json"), data)
}

// SavePage writes one page's record to docs/<id>.json.
func (s *ArtifactStore) SavePage(ctx context.Context, id string, data []byte) error {
	if id == "" || filepath.IsAbs(id) {
		return docdex.Errorf(docdex.EINVALID, "invalid page id %q", id)
	}
	docsDir := filepath.Join(s.tempDir(), "docs")
	rel := filepath.FromSlash(id) + ".json"
	full := filepath.Join(docsDir, rel)

	// Reject ids that would escape the docs directory, including ids
	// that would land on the main index file.
	if r, err := filepath.Rel(docsDir, full); err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return docdex.Errorf(docdex.EINVALID, "invalid page id %q", id)
	}

	return s.write(full, data)
}

func (s *ArtifactStore) write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Commit atomically replaces the final directory with the temp directory.
// The previous index is moved aside first and removed only once the new
// one is in place, so a failed commit leaves the committed index intact.
func (s *ArtifactStore) Commit() error {
	final := s.finalDir()
	old := final + ".old"

	if err := os.RemoveAll(old); err != nil {
		return err
	}
	replaced := false
	if _, err := os.Stat(final); err == nil {
		if err := os.Rename(final, old); err != nil {
			return err
		}
		replaced = true
	}
	if err := os.Rename(s.tempDir(), final); err != nil {
		if replaced {
			_ = os.Rename(old, final)
		}
		return err
	}
	if replaced {
		return os.RemoveAll(old)
	}
	return nil
}

// Abort discards pending writes.
func (s *ArtifactStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
