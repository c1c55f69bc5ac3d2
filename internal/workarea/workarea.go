// Package workarea names the files that make up a chunk processing work
// directory and guards it against concurrent writers.
//
// The manifest is the single durable state file; everything else in the work
// area is derived from it. Callers that mutate the work area should hold the
// advisory lock for the duration of the command.
package workarea

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

const (
	// ManifestName is the persisted pipeline state file.
	ManifestName = "manifest.json"
	// ChapterPlanName is the optional chapter structure file.
	ChapterPlanName = "chapter_plan.json"
	// LockName is the advisory lock file guarding the work area.
	LockName = ".shuttle.lock"
)

// ChunkFileName returns the relative name of a raw text chunk.
func ChunkFileName(id int) string {
	return fmt.Sprintf("chunk_%03d.txt", id)
}

// ProcessedFileName returns the relative name of a transformed chunk.
func ProcessedFileName(id int) string {
	return fmt.Sprintf("processed_%03d.md", id)
}

// SummaryFileName returns the relative name of a chunk summary side artifact.
func SummaryFileName(id int) string {
	return fmt.Sprintf("summary_chunk_%03d.txt", id)
}

// SegmentFileName returns the name of an extracted audio segment.
func SegmentFileName(base string, id int) string {
	return fmt.Sprintf("%s_chunk_%03d.mp3", base, id)
}

// ManifestPath returns the manifest location inside dir.
func ManifestPath(dir string) string {
	return filepath.Join(dir, ManifestName)
}

// ChapterPlanPath returns the chapter plan location inside dir.
func ChapterPlanPath(dir string) string {
	return filepath.Join(dir, ChapterPlanName)
}

// Ensure creates the work directory if needed.
func Ensure(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create work directory %q: %w", dir, err)
	}
	return nil
}

// Lock is an advisory file lock over one work area.
type Lock struct {
	path string
	fl   *flock.Flock
}

// NewLock prepares a lock for the given work directory.
func NewLock(dir string) *Lock {
	path := filepath.Join(dir, LockName)
	return &Lock{path: path, fl: flock.New(path)}
}

// Acquire takes the lock without blocking. It fails when another process
// already holds the work area.
func (l *Lock) Acquire() error {
	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire work area lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("work area %q is locked by another shuttle process", filepath.Dir(l.path))
	}
	return nil
}

// Release drops the lock. Safe to call when the lock was never acquired.
func (l *Lock) Release() error {
	return l.fl.Unlock()
}

// Path returns the lock file location.
func (l *Lock) Path() string {
	return l.path
}
