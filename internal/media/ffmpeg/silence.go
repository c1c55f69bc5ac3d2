// Package ffmpeg shells out to ffmpeg for silence analysis and audio
// segment extraction.
//
// This package has no shuttle-specific dependencies and could be extracted
// as a standalone library.
package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// Silence is one detected silence interval in seconds.
type Silence struct {
	Start float64
	End   float64
}

// Midpoint returns the center of the interval, the position used as a
// natural split candidate.
func (s Silence) Midpoint() float64 {
	return (s.Start + s.End) / 2
}

var (
	silenceStartRe = regexp.MustCompile(`silence_start: ([\d.]+)`)
	silenceEndRe   = regexp.MustCompile(`silence_end: ([\d.]+)`)
)

// DetectSilences runs ffmpeg's silencedetect filter over the whole stream
// and returns the detected intervals in order. ffmpeg reports detections on
// stderr and may exit nonzero even when the scan produced usable output, so
// a nonzero exit is tolerated as long as the process ran; an empty result is
// a valid outcome, not an error.
func DetectSilences(ctx context.Context, binary, path string, noiseDB, minDuration float64) ([]Silence, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("ffmpeg silencedetect: empty path")
	}

	filter := fmt.Sprintf("silencedetect=noise=%sdB:d=%s", FormatSeconds(noiseDB), FormatSeconds(minDuration))
	cmd := exec.CommandContext(ctx, binary, "-i", path, "-af", filter, "-f", "null", "-") //nolint:gosec
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return nil, fmt.Errorf("ffmpeg silencedetect: %w", err)
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ffmpeg silencedetect: %w", ctx.Err())
		}
	}

	return parseSilences(stderr.Bytes()), nil
}

func parseSilences(output []byte) []Silence {
	var silences []Silence
	var start float64
	hasStart := false

	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if m := silenceStartRe.FindStringSubmatch(line); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				start = v
				hasStart = true
			}
			continue
		}
		if m := silenceEndRe.FindStringSubmatch(line); m != nil && hasStart {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil && v > start {
				silences = append(silences, Silence{Start: start, End: v})
			}
			hasStart = false
		}
	}

	return silences
}

// FormatSeconds renders a float the way ffmpeg command lines expect, with
// no trailing zeros and no exponent.
func FormatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
