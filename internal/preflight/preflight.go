package preflight

import (
	"context"

	"shuttle/internal/config"
	"shuttle/internal/deps"
)

// Result reports the outcome of a single preflight check. Optional checks
// never count as hard failures: they cover features the pipeline degrades
// without (chapter metadata, Deepgram transcription).
type Result struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional"`
	Detail   string `json:"detail"`
}

// RunAll executes every applicable readiness check for the given config.
// Feature checks run only when the feature is configured.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	requirements := []deps.Requirement{
		{Name: "FFmpeg", Command: cfg.FFmpegBinary(), Description: "Required for audio splitting"},
		{Name: "FFprobe", Command: cfg.FFprobeBinary(), Description: "Required for media inspection"},
		{Name: "yt-dlp", Command: cfg.YtdlpBinary(), Description: "Enables chapter metadata fetching", Optional: true},
	}
	for _, status := range deps.CheckBinaries(requirements) {
		detail := status.Detail
		if detail == "" {
			detail = status.Command
		}
		results = append(results, Result{
			Name:     status.Name,
			Passed:   status.Available,
			Optional: status.Optional,
			Detail:   detail,
		})
	}

	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	if cfg.Paths.OutputDir != "" {
		dir := CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir)
		dir.Optional = true
		results = append(results, dir)
	}

	results = append(results, CheckLLM(ctx, "Transform LLM", cfg.GetLLM()))

	if cfg.Deepgram.APIKey != "" {
		results = append(results, CheckDeepgram(ctx, cfg.Deepgram.APIKey))
	}

	return results
}

// HardFailures counts the non-optional checks that did not pass.
func HardFailures(results []Result) int {
	count := 0
	for _, result := range results {
		if !result.Passed && !result.Optional {
			count++
		}
	}
	return count
}
