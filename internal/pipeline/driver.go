// Package pipeline drives chunks through the external transformation.
//
// The driver walks the manifest in chunk order and submits each chunk in a
// fully isolated call: no prior chunk's output or conversation state is
// carried forward, so an error in one chunk cannot drift into the next.
// Failures are soft per chunk. A failed chunk stays pending in the manifest
// and the run moves on; re-running the same command retries exactly the
// chunks that never finished.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"

	"shuttle/internal/logging"
	"shuttle/internal/manifest"
	"shuttle/internal/prompts"
	"shuttle/internal/services"
	"shuttle/internal/services/transform"
	"shuttle/internal/workarea"
)

// Options selects what a run does.
type Options struct {
	PromptName       string
	ExtraInstruction string

	// Model and APIFormat are echoed into the dry-run record so callers can
	// confirm what a real run would use.
	Model     string
	APIFormat string
}

// Result reports one processing run. Success requires zero failures and
// zero quality warnings; partial progress is still persisted either way.
type Result struct {
	Success        bool     `json:"success"`
	ProcessedCount int      `json:"processed_count"`
	FailedCount    int      `json:"failed_count"`
	SkippedCount   int      `json:"skipped_count"`
	TotalChunks    int      `json:"total_chunks"`
	Warnings       []string `json:"warnings"`
	OutputFiles    []string `json:"output_files"`
}

// DryRunResult reports a validation-only run: manifest and prompt resolved,
// no API calls made.
type DryRunResult struct {
	Success      bool   `json:"success"`
	DryRun       bool   `json:"dry_run"`
	TotalChunks  int    `json:"total_chunks"`
	PromptName   string `json:"prompt_name"`
	PromptLength int    `json:"prompt_length"`
	Model        string `json:"model"`
	APIFormat    string `json:"api_format"`
	Message      string `json:"message"`
}

// Driver processes the chunks of one work area sequentially.
type Driver struct {
	workDir string
	store   *manifest.Store
	library *prompts.Library
	client  transform.Client
	logger  *slog.Logger
}

// NewDriver builds a driver over the given work area. The client may be nil
// when only DryRun will be used.
func NewDriver(workDir string, library *prompts.Library, client transform.Client, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Driver{
		workDir: workDir,
		store:   manifest.NewStore(workDir, logger),
		library: library,
		client:  client,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
	}
}

// DryRun validates that a real run could start: the manifest loads and the
// prompt template resolves. Nothing is submitted anywhere.
func (d *Driver) DryRun(ctx context.Context, opts Options) (*DryRunResult, error) {
	m, template, err := d.prepare(opts)
	if err != nil {
		return nil, err
	}
	return &DryRunResult{
		Success:      true,
		DryRun:       true,
		TotalChunks:  m.TotalChunks,
		PromptName:   opts.PromptName,
		PromptLength: utf8.RuneCountInString(template),
		Model:        opts.Model,
		APIFormat:    opts.APIFormat,
		Message:      "Dry run: all validations passed",
	}, nil
}

// Run processes every chunk that still needs work. Chunks already done are
// skipped, so re-running after a full success is a no-op. Summary prompts
// are the exception: their outputs are side artifacts, so they process
// every chunk and never touch chunk status.
func (d *Driver) Run(ctx context.Context, opts Options) (*Result, error) {
	m, template, err := d.prepare(opts)
	if err != nil {
		return nil, err
	}
	if d.client == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "run", "no transform client configured", nil)
	}

	isSummary := prompts.IsSummary(opts.PromptName)

	runID := uuid.NewString()
	ctx = services.WithRunID(ctx, runID)
	ctx = services.WithStage(ctx, "process")

	result := &Result{
		TotalChunks: m.TotalChunks,
		Warnings:    []string{},
		OutputFiles: []string{},
	}

	d.logger.Info("processing run started",
		logging.String(logging.FieldRunID, runID),
		logging.String("prompt", opts.PromptName),
		logging.Int("total_chunks", m.TotalChunks),
		logging.Int("pending_chunks", m.Pending()))

	for _, chunk := range m.Chunks {
		chunkCtx := services.WithChunkID(ctx, chunk.ID)
		logger := logging.WithContext(chunkCtx, d.logger)

		if !isSummary && chunk.Status == manifest.StatusDone {
			result.SkippedCount++
			logger.Debug("chunk already done, skipping")
			continue
		}

		raw, err := os.ReadFile(filepath.Join(d.workDir, chunk.RawPath))
		if err != nil {
			result.FailedCount++
			logging.ErrorWithContext(chunkCtx, logger, "chunk file missing", logging.Error(err),
				logging.String(logging.FieldErrorHint, "re-run the chunking stage to regenerate chunk files"))
			continue
		}
		content := string(raw)

		logger.Info("processing chunk",
			logging.Int("position", chunk.ID+1),
			logging.Int("total_chunks", m.TotalChunks))

		text, err := d.client.Transform(chunkCtx, prompts.Render(template, content))
		if err != nil {
			result.FailedCount++
			logging.ErrorWithContext(chunkCtx, logger, "chunk transformation failed", logging.Error(err),
				logging.String(logging.FieldErrorHint, "chunk stays pending; re-run to retry failed chunks"))
			continue
		}

		if !isSummary {
			for _, warning := range validateOutput(opts.PromptName, chunk.ID, content, text) {
				result.Warnings = append(result.Warnings, warning)
				logging.WarnWithContext(chunkCtx, logger, warning,
					logging.String(logging.FieldImpact, "output kept; review before merging"))
			}
		}

		outName := chunk.ProcessedPath
		if isSummary {
			outName = workarea.SummaryFileName(chunk.ID)
		}
		outPath := filepath.Join(d.workDir, outName)
		if err := os.WriteFile(outPath, []byte(text), 0o644); err != nil {
			result.FailedCount++
			logging.ErrorWithContext(chunkCtx, logger, "write chunk output failed", logging.Error(err))
			continue
		}

		if !isSummary {
			if err := d.store.MarkDone(chunk.ID, outName); err != nil {
				return nil, fmt.Errorf("record chunk %d completion: %w", chunk.ID, err)
			}
		}

		result.ProcessedCount++
		result.OutputFiles = append(result.OutputFiles, outPath)
	}

	result.Success = result.FailedCount == 0 && len(result.Warnings) == 0

	d.logger.Info("processing run finished",
		logging.String(logging.FieldRunID, runID),
		logging.Bool("success", result.Success),
		logging.Int("processed", result.ProcessedCount),
		logging.Int("failed", result.FailedCount),
		logging.Int("skipped", result.SkippedCount),
		logging.Int("warnings", len(result.Warnings)))

	return result, nil
}

func (d *Driver) prepare(opts Options) (*manifest.Manifest, string, error) {
	m, err := d.store.Load()
	if err != nil {
		return nil, "", err
	}
	template, err := d.library.Load(opts.PromptName)
	if err != nil {
		return nil, "", err
	}
	return m, prompts.AppendInstruction(template, opts.ExtraInstruction), nil
}
