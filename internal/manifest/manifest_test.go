package manifest_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shuttle/internal/manifest"
	"shuttle/internal/services"
)

func TestCreateWritesChunksAndManifest(t *testing.T) {
	workDir := t.TempDir()
	store := manifest.NewStore(workDir, nil)

	contents := []string{"First chunk.", "Second chunk.", "你好世界"}
	m, err := store.Create(contents, 8000, "/tmp/source.txt")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if m.TotalChunks != 3 {
		t.Fatalf("TotalChunks = %d, want 3", m.TotalChunks)
	}
	if m.Chunks[0].RawPath != "chunk_000.txt" {
		t.Errorf("RawPath = %q, want chunk_000.txt", m.Chunks[0].RawPath)
	}
	if m.Chunks[2].ProcessedPath != "processed_002.md" {
		t.Errorf("ProcessedPath = %q, want processed_002.md", m.Chunks[2].ProcessedPath)
	}
	if m.Chunks[2].CharCount != 4 {
		t.Errorf("CharCount = %d, want 4 code points for CJK content", m.Chunks[2].CharCount)
	}

	for i, want := range contents {
		data, err := os.ReadFile(filepath.Join(workDir, m.Chunks[i].RawPath))
		if err != nil {
			t.Fatalf("read chunk %d: %v", i, err)
		}
		if string(data) != want {
			t.Errorf("chunk %d content = %q, want %q", i, data, want)
		}
	}

	raw, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	for _, key := range []string{`"total_chunks"`, `"chunk_size"`, `"source_file"`, `"work_dir"`, `"raw_path"`, `"char_count"`, `"status"`} {
		if !strings.Contains(string(raw), key) {
			t.Errorf("manifest missing key %s", key)
		}
	}
}

func TestLoadRoundTrip(t *testing.T) {
	workDir := t.TempDir()
	store := manifest.NewStore(workDir, nil)

	created, err := store.Create([]string{"alpha", "beta"}, 4000, "/src/talk.txt")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.ChunkSize != created.ChunkSize || loaded.SourceFile != created.SourceFile {
		t.Errorf("loaded header %d/%q, want %d/%q", loaded.ChunkSize, loaded.SourceFile, created.ChunkSize, created.SourceFile)
	}
	if len(loaded.Chunks) != len(created.Chunks) {
		t.Fatalf("loaded %d chunks, want %d", len(loaded.Chunks), len(created.Chunks))
	}
	for i := range loaded.Chunks {
		if loaded.Chunks[i] != created.Chunks[i] {
			t.Errorf("chunk %d = %+v, want %+v", i, loaded.Chunks[i], created.Chunks[i])
		}
	}
}

func TestLoadMissingManifest(t *testing.T) {
	store := manifest.NewStore(t.TempDir(), nil)

	_, err := store.Load()
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("error = %v, want not-found marker", err)
	}
}

func TestLoadRejectsCorruptManifest(t *testing.T) {
	workDir := t.TempDir()
	store := manifest.NewStore(workDir, nil)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt manifest: %v", err)
	}

	_, err := store.Load()
	if !errors.Is(err, services.ErrDataIntegrity) {
		t.Errorf("error = %v, want data-integrity marker", err)
	}
}

func TestLoadRejectsUnknownStatus(t *testing.T) {
	workDir := t.TempDir()
	store := manifest.NewStore(workDir, nil)
	if _, err := store.Create([]string{"alpha"}, 100, "src"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	data, err := os.ReadFile(store.Path())
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	patched := strings.Replace(string(data), `"pending"`, `"failed"`, 1)
	if err := os.WriteFile(store.Path(), []byte(patched), 0o644); err != nil {
		t.Fatalf("write patched manifest: %v", err)
	}

	_, err = store.Load()
	if !errors.Is(err, services.ErrDataIntegrity) {
		t.Errorf("error = %v, want data-integrity marker for status outside pending/done", err)
	}
}

func TestMarkDonePersistsAndIsIdempotent(t *testing.T) {
	workDir := t.TempDir()
	store := manifest.NewStore(workDir, nil)
	if _, err := store.Create([]string{"alpha", "beta"}, 100, "src"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := store.MarkDone(1, "processed_001.md"); err != nil {
		t.Fatalf("MarkDone returned error: %v", err)
	}
	if err := store.MarkDone(1, "processed_001.md"); err != nil {
		t.Fatalf("second MarkDone returned error: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Chunks[1].Status != manifest.StatusDone {
		t.Errorf("chunk 1 status = %q, want done", loaded.Chunks[1].Status)
	}
	if loaded.Chunks[0].Status != manifest.StatusPending {
		t.Errorf("chunk 0 status = %q, want pending", loaded.Chunks[0].Status)
	}
	if got := loaded.Pending(); got != 1 {
		t.Errorf("Pending() = %d, want 1", got)
	}
	if got := loaded.Done(); got != 1 {
		t.Errorf("Done() = %d, want 1", got)
	}
}

func TestMarkDoneUnknownChunk(t *testing.T) {
	workDir := t.TempDir()
	store := manifest.NewStore(workDir, nil)
	if _, err := store.Create([]string{"alpha"}, 100, "src"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	err := store.MarkDone(9, "processed_009.md")
	if !errors.Is(err, services.ErrNotFound) {
		t.Errorf("error = %v, want not-found marker", err)
	}
}

func TestValidateRejectsGappedIDs(t *testing.T) {
	m := manifest.New([]string{"a", "b"}, 100, "src", "/tmp/w")
	m.Chunks[1].ID = 5
	if err := m.Validate(); err == nil {
		t.Fatal("expected validation error for non-contiguous ids")
	}
}

func TestManifestJSONShape(t *testing.T) {
	m := manifest.New([]string{"hello"}, 100, "/s.txt", "/w")
	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	chunks, ok := decoded["chunks"].([]any)
	if !ok || len(chunks) != 1 {
		t.Fatalf("chunks field = %v, want one-element array", decoded["chunks"])
	}
	entry := chunks[0].(map[string]any)
	if entry["id"].(float64) != 0 {
		t.Errorf("id = %v, want 0", entry["id"])
	}
	if entry["status"].(string) != "pending" {
		t.Errorf("status = %v, want pending", entry["status"])
	}
}
