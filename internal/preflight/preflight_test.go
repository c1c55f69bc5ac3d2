package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"shuttle/internal/config"
	"shuttle/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Log directory", dir)
	if !result.Passed {
		t.Fatalf("writable directory should pass: %+v", result)
	}

	result = CheckDirectoryAccess("Log directory", filepath.Join(dir, "missing"))
	if result.Passed {
		t.Fatalf("missing directory should fail: %+v", result)
	}

	file := filepath.Join(dir, "file")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	result = CheckDirectoryAccess("Log directory", file)
	if result.Passed {
		t.Fatalf("plain file should fail: %+v", result)
	}
}

func TestCheckLLMMissingKey(t *testing.T) {
	result := CheckLLM(context.Background(), "Transform LLM", config.LLMConfig{})
	if result.Passed {
		t.Fatalf("missing key should fail: %+v", result)
	}
	if result.Detail != "API key missing" {
		t.Fatalf("Detail = %q", result.Detail)
	}
}

func TestCheckLLMHealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "OK"}}]}`))
	}))
	defer server.Close()

	result := CheckLLM(context.Background(), "Transform LLM", config.LLMConfig{
		APIKey:    "key",
		BaseURL:   server.URL,
		Model:     "test-model",
		APIFormat: "openai",
	})
	if !result.Passed {
		t.Fatalf("healthy endpoint should pass: %+v", result)
	}
}

func TestCheckLLMUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	result := CheckLLM(context.Background(), "Transform LLM", config.LLMConfig{
		APIKey:    "key",
		BaseURL:   server.URL,
		Model:     "test-model",
		APIFormat: "openai",
	})
	if result.Passed {
		t.Fatalf("401 should fail: %+v", result)
	}
}

func TestRunAllCoversConfiguredChecks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"content": "OK"}}]}`))
	}))
	defer server.Close()

	cfg := testsupport.NewConfig(t, testsupport.WithLLM(server.URL, "test-model"))
	results := RunAll(context.Background(), cfg)

	seen := map[string]bool{}
	for _, result := range results {
		seen[result.Name] = true
	}
	for _, want := range []string{"FFmpeg", "FFprobe", "yt-dlp", "Log directory", "Output directory", "Transform LLM"} {
		if !seen[want] {
			t.Fatalf("expected check %q in results %+v", want, results)
		}
	}
	if seen["Deepgram"] {
		t.Fatalf("Deepgram check should be skipped without a key: %+v", results)
	}
}

func TestHardFailures(t *testing.T) {
	results := []Result{
		{Name: "a", Passed: true},
		{Name: "b", Passed: false, Optional: true},
		{Name: "c", Passed: false},
	}
	if got := HardFailures(results); got != 1 {
		t.Fatalf("HardFailures = %d, want 1", got)
	}
}
