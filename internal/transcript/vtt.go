// Package transcript turns raw caption artifacts into clean plain text:
// WebVTT subtitle files and Deepgram transcription JSON.
package transcript

import (
	"os"
	"regexp"
	"strings"

	"shuttle/internal/services"
)

func readTextFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

var (
	vttTagPattern = regexp.MustCompile(`<[^>]+>`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

// ParseVTT reads a WebVTT subtitle file and returns its plain text.
func ParseVTT(path string) (string, error) {
	data, err := readTextFile(path)
	if err != nil {
		return "", services.Wrap(services.ErrInput, "transcript", "parse_vtt", "read subtitle file", err)
	}
	return CleanVTT(data), nil
}

// CleanVTT extracts the spoken text from WebVTT content. Header lines,
// timing lines, cue numbers, and inline tags are removed; consecutive
// duplicate lines (common in auto-generated captions, where each cue repeats
// the previous line) collapse to one.
func CleanVTT(content string) string {
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, "-->") {
			continue
		}
		if strings.HasPrefix(line, "WEBVTT") || strings.HasPrefix(line, "Kind:") || strings.HasPrefix(line, "Language:") {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || digitsPattern.MatchString(trimmed) {
			continue
		}
		clean := strings.TrimSpace(vttTagPattern.ReplaceAllString(line, ""))
		if clean == "" {
			continue
		}
		if len(kept) > 0 && kept[len(kept)-1] == clean {
			continue
		}
		kept = append(kept, clean)
	}
	return strings.Join(kept, " ")
}
