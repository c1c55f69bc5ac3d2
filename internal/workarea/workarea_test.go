package workarea_test

import (
	"path/filepath"
	"testing"

	"shuttle/internal/workarea"
)

func TestFileNamesArePadded(t *testing.T) {
	if got := workarea.ChunkFileName(0); got != "chunk_000.txt" {
		t.Fatalf("unexpected chunk name: %q", got)
	}
	if got := workarea.ProcessedFileName(12); got != "processed_012.md" {
		t.Fatalf("unexpected processed name: %q", got)
	}
	if got := workarea.SummaryFileName(3); got != "summary_chunk_003.txt" {
		t.Fatalf("unexpected summary name: %q", got)
	}
	if got := workarea.SegmentFileName("episode", 1); got != "episode_chunk_001.mp3" {
		t.Fatalf("unexpected segment name: %q", got)
	}
}

func TestLockExcludesSecondHolder(t *testing.T) {
	dir := t.TempDir()

	first := workarea.NewLock(dir)
	if err := first.Acquire(); err != nil {
		t.Fatalf("first acquire failed: %v", err)
	}
	defer first.Release()

	second := workarea.NewLock(dir)
	if err := second.Acquire(); err == nil {
		second.Release()
		t.Fatal("expected second acquire to fail while lock held")
	}

	if err := first.Release(); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if err := second.Acquire(); err != nil {
		t.Fatalf("acquire after release failed: %v", err)
	}
	second.Release()
}

func TestManifestPath(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "manifest.json")
	if got := workarea.ManifestPath(dir); got != want {
		t.Fatalf("unexpected manifest path: %q", got)
	}
}
