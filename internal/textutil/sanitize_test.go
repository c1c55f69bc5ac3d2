package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeFileNameReplacesUnsafeCharacters(t *testing.T) {
	got := SanitizeFileName(`a/b\c:d*e?f"g<h>i|j`)
	if got != "a_b_c_d_e_f_g_h_i_j" {
		t.Fatalf("SanitizeFileName = %q", got)
	}
}

func TestSanitizeFileNameTrimsSpacesAndPeriods(t *testing.T) {
	got := SanitizeFileName("  ..A Title.. ")
	if got != "A Title" {
		t.Fatalf("SanitizeFileName = %q", got)
	}
}

func TestSanitizeFileNameCapsLength(t *testing.T) {
	got := SanitizeFileName(strings.Repeat("长", 300))
	if count := len([]rune(got)); count != 200 {
		t.Fatalf("rune count = %d, want 200", count)
	}
}

func TestSanitizeFileNameEmpty(t *testing.T) {
	if got := SanitizeFileName("   "); got != "" {
		t.Fatalf("SanitizeFileName = %q, want empty", got)
	}
}

func TestSanitizeToken(t *testing.T) {
	cases := map[string]string{
		"Hello World": "hello_world",
		"ABC-123":     "abc-123",
		"":            "unknown",
		"___":         "unknown",
	}
	for input, want := range cases {
		if got := SanitizeToken(input); got != want {
			t.Fatalf("SanitizeToken(%q) = %q, want %q", input, got, want)
		}
	}
}
