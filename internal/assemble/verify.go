package assemble

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"
)

// VerifyResult is the structural quality report for an optimized document.
// Checks holds per-check values keyed by name; Passed is true only when no
// check produced a warning.
type VerifyResult struct {
	Passed   bool           `json:"passed"`
	Checks   map[string]any `json:"checks"`
	Warnings []string       `json:"warnings"`
}

var sectionHeaderPattern = regexp.MustCompile(`(?m)^##\s+.+`)

// properEndings are the characters a complete document plausibly ends with:
// sentence punctuation, markdown markers, and closing quotes or brackets.
var properEndings = []string{
	".", "!", "?", "。", "！", "？", "*", "`", "\"", "”",
	")", "）", "」", ">", "-", ":", "：",
}

const (
	sectionWarnMinChars = 3000
	shortLastLineRunes  = 10

	bilingualCJKFloor   = 0.1
	bilingualASCIIFloor = 0.05
)

// Verify runs the structural checks over the optimized text. rawPath is
// optional; when present the optimized/raw size ratio is checked against the
// range expected for the language mode. Verification never fails hard on
// content: a missing file is the only case reported without checks.
func Verify(optimizedPath, rawPath string, bilingual bool) *VerifyResult {
	result := &VerifyResult{
		Checks:   map[string]any{},
		Warnings: []string{},
	}

	data, err := os.ReadFile(optimizedPath)
	if err != nil {
		result.Checks["file_exists"] = false
		result.Warnings = append(result.Warnings, "Optimized text file not found")
		return result
	}
	text := string(data)

	totalChars := utf8.RuneCountInString(text)
	result.Checks["file_exists"] = true
	result.Checks["total_chars"] = totalChars
	result.Checks["total_lines"] = strings.Count(text, "\n") + 1

	result.Checks["non_empty"] = totalChars > 0
	if totalChars == 0 {
		result.Warnings = append(result.Warnings, "File is empty")
	}

	sections := sectionHeaderPattern.FindAllString(text, -1)
	result.Checks["section_count"] = len(sections)
	result.Checks["has_sections"] = len(sections) > 0
	if len(sections) == 0 && totalChars > sectionWarnMinChars {
		result.Warnings = append(result.Warnings, fmt.Sprintf("No section headers (##) found in %d chars of text", totalChars))
	}

	checkTruncation(result, text)

	if bilingual {
		checkBilingualBalance(result, text, totalChars)
	}

	if rawPath != "" {
		checkSizeRatio(result, totalChars, rawPath, bilingual)
	}

	result.Passed = len(result.Warnings) == 0
	return result
}

func checkTruncation(result *VerifyResult, text string) {
	var lastLine string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lastLine = trimmed
		}
	}
	if lastLine == "" {
		result.Checks["no_truncation"] = false
		result.Warnings = append(result.Warnings, "No non-empty lines found")
		return
	}

	complete := strings.HasPrefix(lastLine, "#") || utf8.RuneCountInString(lastLine) < shortLastLineRunes
	if !complete {
		for _, ending := range properEndings {
			if strings.HasSuffix(lastLine, ending) {
				complete = true
				break
			}
		}
	}
	result.Checks["no_truncation"] = complete
	if !complete {
		tail := []rune(lastLine)
		if len(tail) > 50 {
			tail = tail[len(tail)-50:]
		}
		result.Warnings = append(result.Warnings, fmt.Sprintf("Possible truncation: last line does not end with punctuation: %q", string(tail)))
	}
}

func checkBilingualBalance(result *VerifyResult, text string, totalChars int) {
	cjk, ascii := 0, 0
	for _, r := range text {
		switch {
		case r >= 0x4e00 && r <= 0x9fff:
			cjk++
		case r < 128 && ((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')):
			ascii++
		}
	}
	cjkRatio, asciiRatio := 0.0, 0.0
	if totalChars > 0 {
		cjkRatio = float64(cjk) / float64(totalChars)
		asciiRatio = float64(ascii) / float64(totalChars)
	}
	result.Checks["cn_char_ratio"] = round3(cjkRatio)
	result.Checks["en_char_ratio"] = round3(asciiRatio)

	balanced := cjkRatio > bilingualCJKFloor && asciiRatio > bilingualASCIIFloor
	result.Checks["bilingual_balanced"] = balanced
	if cjkRatio <= bilingualCJKFloor {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Chinese character ratio too low (%.1f%%), translation may be missing", cjkRatio*100))
	}
	if asciiRatio <= bilingualASCIIFloor {
		result.Warnings = append(result.Warnings, fmt.Sprintf("English character ratio too low (%.1f%%), original text may be missing", asciiRatio*100))
	}
}

func checkSizeRatio(result *VerifyResult, totalChars int, rawPath string, bilingual bool) {
	raw, err := os.ReadFile(rawPath)
	if err != nil {
		// Comparison input is advisory; skip the check when unreadable.
		return
	}
	rawChars := utf8.RuneCountInString(string(raw))
	if rawChars == 0 {
		return
	}
	ratio := float64(totalChars) / float64(rawChars)
	result.Checks["raw_text_chars"] = rawChars
	result.Checks["size_ratio_vs_raw"] = round2(ratio)

	low, high := 0.7, 2.0
	mode := "monolingual"
	if bilingual {
		low, high = 1.2, 4.0
		mode = "bilingual"
	}
	ok := ratio >= low && ratio <= high
	result.Checks["size_ratio_ok"] = ok
	if !ok {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"Size ratio %.2fx vs raw text is outside expected range (%.1f-%.1fx for %s)", ratio, low, high, mode))
	}
}

func round3(v float64) float64 {
	return float64(int(v*1000+0.5)) / 1000
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
