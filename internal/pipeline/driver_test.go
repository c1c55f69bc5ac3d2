package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shuttle/internal/manifest"
	"shuttle/internal/prompts"
	"shuttle/internal/workarea"
)

type fakeClient struct {
	transform func(prompt string) (string, error)
	calls     int
	prompts   []string
}

func (f *fakeClient) Transform(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	return f.transform(prompt)
}

func (f *fakeClient) HealthCheck(context.Context) error { return nil }

// echoClient returns structured output long enough to pass every heuristic.
func echoClient() *fakeClient {
	return &fakeClient{transform: func(prompt string) (string, error) {
		return "## Section\n\n" + prompt, nil
	}}
}

func newWorkArea(t *testing.T, contents []string) string {
	t.Helper()
	dir := t.TempDir()
	if _, err := manifest.NewStore(dir, nil).Create(contents, 8000, "input.txt"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return dir
}

func runOptions() Options {
	return Options{PromptName: prompts.NameStructureOnly}
}

func TestRunProcessesAllPendingChunks(t *testing.T) {
	dir := newWorkArea(t, []string{"chunk zero text.", "chunk one text."})
	client := echoClient()
	driver := NewDriver(dir, prompts.NewLibrary(""), client, nil)

	result, err := driver.Run(context.Background(), runOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.ProcessedCount != 2 || result.FailedCount != 0 {
		t.Fatalf("counts = %+v", result)
	}
	if client.calls != 2 {
		t.Fatalf("client calls = %d, want 2", client.calls)
	}

	m, err := manifest.NewStore(dir, nil).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, chunk := range m.Chunks {
		if chunk.Status != manifest.StatusDone {
			t.Fatalf("chunk %d status = %q, want done", chunk.ID, chunk.Status)
		}
		if _, err := os.Stat(filepath.Join(dir, chunk.ProcessedPath)); err != nil {
			t.Fatalf("processed output for chunk %d missing: %v", chunk.ID, err)
		}
	}
}

func TestRunIsIdempotentOnDoneChunks(t *testing.T) {
	dir := newWorkArea(t, []string{"chunk zero text.", "chunk one text."})
	client := echoClient()
	driver := NewDriver(dir, prompts.NewLibrary(""), client, nil)

	if _, err := driver.Run(context.Background(), runOptions()); err != nil {
		t.Fatalf("first Run: %v", err)
	}

	result, err := driver.Run(context.Background(), runOptions())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if result.ProcessedCount != 0 || result.FailedCount != 0 {
		t.Fatalf("re-run must reprocess nothing, got %+v", result)
	}
	if result.SkippedCount != 2 {
		t.Fatalf("SkippedCount = %d, want 2", result.SkippedCount)
	}
	if client.calls != 2 {
		t.Fatalf("re-run must not call the transform again, calls = %d", client.calls)
	}
}

func TestRunMissingRawFileFailsSoft(t *testing.T) {
	dir := newWorkArea(t, []string{"chunk zero text.", "chunk one text."})
	if err := os.Remove(filepath.Join(dir, workarea.ChunkFileName(0))); err != nil {
		t.Fatalf("remove chunk file: %v", err)
	}

	driver := NewDriver(dir, prompts.NewLibrary(""), echoClient(), nil)
	result, err := driver.Run(context.Background(), runOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Success {
		t.Fatal("run with a failure must not report success")
	}
	if result.FailedCount != 1 || result.ProcessedCount != 1 {
		t.Fatalf("counts = %+v", result)
	}

	m, _ := manifest.NewStore(dir, nil).Load()
	if chunk, _ := m.Chunk(0); chunk.Status != manifest.StatusPending {
		t.Fatalf("failed chunk must stay pending, got %q", chunk.Status)
	}
	if chunk, _ := m.Chunk(1); chunk.Status != manifest.StatusDone {
		t.Fatalf("healthy chunk must be done, got %q", chunk.Status)
	}
}

func TestRunTransformFailureContinues(t *testing.T) {
	dir := newWorkArea(t, []string{"chunk zero text.", "chunk one text.", "chunk two text."})
	call := 0
	client := &fakeClient{transform: func(prompt string) (string, error) {
		call++
		if call == 2 {
			return "", errors.New("boom")
		}
		return "## Section\n\n" + prompt, nil
	}}

	driver := NewDriver(dir, prompts.NewLibrary(""), client, nil)
	result, err := driver.Run(context.Background(), runOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.FailedCount != 1 || result.ProcessedCount != 2 {
		t.Fatalf("counts = %+v", result)
	}

	m, _ := manifest.NewStore(dir, nil).Load()
	if chunk, _ := m.Chunk(1); chunk.Status != manifest.StatusPending {
		t.Fatalf("failed chunk must stay pending for retry, got %q", chunk.Status)
	}
}

func TestRunIsolatesChunkContext(t *testing.T) {
	dir := newWorkArea(t, []string{"alpha content.", "beta content."})
	client := echoClient()
	driver := NewDriver(dir, prompts.NewLibrary(""), client, nil)

	if _, err := driver.Run(context.Background(), runOptions()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(client.prompts) != 2 {
		t.Fatalf("prompts = %d", len(client.prompts))
	}
	if strings.Contains(client.prompts[1], "alpha content.") {
		t.Fatal("second chunk's prompt must not carry the first chunk's content")
	}
}

func TestRunQualityWarningsKeepChunkDone(t *testing.T) {
	long := strings.Repeat("word ", 200)
	dir := newWorkArea(t, []string{long})
	client := &fakeClient{transform: func(string) (string, error) {
		return "tiny", nil
	}}

	driver := NewDriver(dir, prompts.NewLibrary(""), client, nil)
	result, err := driver.Run(context.Background(), runOptions())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("shrunken output must produce a warning")
	}
	if result.Success {
		t.Fatal("warnings must make the run unsuccessful")
	}
	if result.FailedCount != 0 {
		t.Fatalf("warnings are not failures, got %+v", result)
	}

	m, _ := manifest.NewStore(dir, nil).Load()
	if chunk, _ := m.Chunk(0); chunk.Status != manifest.StatusDone {
		t.Fatalf("flagged chunk is still done, got %q", chunk.Status)
	}
}

func TestRunSummaryLeavesStatusUntouched(t *testing.T) {
	dir := newWorkArea(t, []string{"summarize me."})
	driver := NewDriver(dir, prompts.NewLibrary(""), echoClient(), nil)

	result, err := driver.Run(context.Background(), Options{PromptName: prompts.NameSummarize})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.ProcessedCount != 1 {
		t.Fatalf("counts = %+v", result)
	}
	if _, err := os.Stat(filepath.Join(dir, workarea.SummaryFileName(0))); err != nil {
		t.Fatalf("summary output missing: %v", err)
	}

	m, _ := manifest.NewStore(dir, nil).Load()
	if chunk, _ := m.Chunk(0); chunk.Status != manifest.StatusPending {
		t.Fatalf("summary run must not flip status, got %q", chunk.Status)
	}
}

func TestDryRunNeedsNoClient(t *testing.T) {
	dir := newWorkArea(t, []string{"chunk zero text."})
	driver := NewDriver(dir, prompts.NewLibrary(""), nil, nil)

	result, err := driver.DryRun(context.Background(), Options{
		PromptName: prompts.NameStructureOnly,
		Model:      "test-model",
		APIFormat:  "openai",
	})
	if err != nil {
		t.Fatalf("DryRun: %v", err)
	}
	if !result.Success || !result.DryRun {
		t.Fatalf("result = %+v", result)
	}
	if result.TotalChunks != 1 || result.Model != "test-model" {
		t.Fatalf("result = %+v", result)
	}
}

func TestRunWithoutManifestFails(t *testing.T) {
	driver := NewDriver(t.TempDir(), prompts.NewLibrary(""), echoClient(), nil)
	if _, err := driver.Run(context.Background(), runOptions()); err == nil {
		t.Fatal("expected error without a manifest")
	}
}

func TestRunUnknownPromptFails(t *testing.T) {
	dir := newWorkArea(t, []string{"text."})
	driver := NewDriver(dir, prompts.NewLibrary(""), echoClient(), nil)
	if _, err := driver.Run(context.Background(), Options{PromptName: "no_such_prompt"}); err == nil {
		t.Fatal("expected error for unknown prompt")
	}
}
