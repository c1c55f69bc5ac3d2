package transcript

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCleanVTTStripsStructure(t *testing.T) {
	content := `WEBVTT
Kind: captions
Language: en

1
00:00:00.000 --> 00:00:05.000
<c>Hello there</c>

2
00:00:05.000 --> 00:00:10.000
Hello there

3
00:00:10.000 --> 00:00:15.000
General <00:00:12.000>Kenobi
`
	got := CleanVTT(content)
	want := "Hello there General Kenobi"
	if got != want {
		t.Fatalf("CleanVTT = %q, want %q", got, want)
	}
}

func TestCleanVTTKeepsNonConsecutiveDuplicates(t *testing.T) {
	content := "first line\nsecond line\nfirst line\n"
	got := CleanVTT(content)
	want := "first line second line first line"
	if got != want {
		t.Fatalf("CleanVTT = %q, want %q", got, want)
	}
}

func TestParseVTTMissingFile(t *testing.T) {
	if _, err := ParseVTT(filepath.Join(t.TempDir(), "absent.vtt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParseVTTReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caps.vtt")
	if err := os.WriteFile(path, []byte("WEBVTT\n\n00:00:00.000 --> 00:00:01.000\nhi\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ParseVTT(path)
	if err != nil {
		t.Fatalf("ParseVTT: %v", err)
	}
	if got != "hi" {
		t.Fatalf("ParseVTT = %q, want %q", got, "hi")
	}
}
