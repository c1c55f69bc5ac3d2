// Package ytdlp fetches video chapter metadata through the yt-dlp tool.
//
// Chapter metadata is advisory input for the chapter plan, so every failure
// mode here degrades to "no chapters" with the error recorded in the result
// instead of aborting the caller.
package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"shuttle/internal/logging"
)

// DefaultTimeout bounds one metadata fetch.
const DefaultTimeout = 30 * time.Second

// Chapter is one chapter entry as reported by the video platform.
type Chapter struct {
	Title     string  `json:"title"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Result reports a chapter fetch. Error is populated for tool-level
// failures (missing binary, timeout); a video without chapters is a normal
// result with HasChapters false.
type Result struct {
	HasChapters bool      `json:"has_chapters"`
	Chapters    []Chapter `json:"chapters"`
	Error       string    `json:"error,omitempty"`
}

// FetchChapters asks yt-dlp for the chapter list of videoURL. binary may be
// empty to use "yt-dlp" from PATH; timeout <= 0 uses DefaultTimeout.
func FetchChapters(ctx context.Context, binary, videoURL string, timeout time.Duration, logger *slog.Logger) *Result {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "ytdlp")
	if binary == "" {
		binary = "yt-dlp"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, "--print", "%(chapters)j", videoURL)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		logger.Warn("chapter fetch timed out",
			logging.String("url", videoURL),
			logging.Duration("timeout", timeout))
		return &Result{HasChapters: false, Chapters: []Chapter{}, Error: fmt.Sprintf("timeout after %s", timeout)}
	}
	if err != nil && stdout.Len() == 0 {
		if errors.Is(err, exec.ErrNotFound) {
			return &Result{HasChapters: false, Chapters: []Chapter{}, Error: "yt-dlp not found; install it to fetch chapter metadata"}
		}
		// Warnings can make yt-dlp exit non-zero while still printing data,
		// so only a run with no stdout at all is treated as a tool failure.
		logger.Warn("yt-dlp failed",
			logging.String("url", videoURL),
			logging.Error(err),
			logging.String("stderr", strings.TrimSpace(stderr.String())))
		return &Result{HasChapters: false, Chapters: []Chapter{}, Error: err.Error()}
	}

	output := strings.TrimSpace(stdout.String())
	switch output {
	case "", "null", "NA", "None":
		return &Result{HasChapters: false, Chapters: []Chapter{}}
	}

	var parsed []Chapter
	if err := json.Unmarshal([]byte(output), &parsed); err != nil || len(parsed) == 0 {
		return &Result{HasChapters: false, Chapters: []Chapter{}}
	}

	logger.Debug("chapters fetched",
		logging.String("url", videoURL),
		logging.Int("count", len(parsed)))
	return &Result{HasChapters: true, Chapters: parsed}
}
