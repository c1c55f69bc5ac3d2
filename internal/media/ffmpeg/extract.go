package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ExtractAudioSegment re-encodes a time range of the source into an MP3 at
// dest. The seek flag precedes the input for fast keyframe seeking, and the
// range is expressed as start plus duration so rounding errors do not
// accumulate across consecutive segments.
func ExtractAudioSegment(ctx context.Context, binary, source string, start, duration float64, dest string) error {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	if strings.TrimSpace(source) == "" {
		return errors.New("ffmpeg extract: empty source")
	}
	if strings.TrimSpace(dest) == "" {
		return errors.New("ffmpeg extract: empty destination")
	}
	if duration <= 0 {
		return fmt.Errorf("ffmpeg extract: invalid duration %s", FormatSeconds(duration))
	}

	args := []string{
		"-y",
		"-ss", FormatSeconds(start),
		"-i", source,
		"-t", FormatSeconds(duration),
		"-c:a", "libmp3lame",
		"-q:a", "2",
		dest,
	}
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg extract: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
