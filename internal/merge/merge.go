// Package merge reassembles processed chunks into the final document.
//
// The merge walks the manifest in chunk order, inserts chapter headings at
// the chunks where the chapter plan says a chapter starts, and concatenates
// the processed outputs. Missing outputs are reported, not fatal: the merge
// writes whatever could be assembled so a partial document is available for
// inspection while the missing chunks are reprocessed.
package merge

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"shuttle/internal/chapters"
	"shuttle/internal/logging"
	"shuttle/internal/manifest"
	"shuttle/internal/services"
	"shuttle/internal/workarea"
)

// Result reports one merge operation. Success means every processed chunk
// file was present; the output file is written either way.
type Result struct {
	Success          bool     `json:"success"`
	OutputFile       string   `json:"output_file"`
	TotalLines       int      `json:"total_lines"`
	TotalChars       int      `json:"total_chars"`
	ChaptersInserted int      `json:"chapters_inserted"`
	MissingFiles     []string `json:"missing_files"`
	Warnings         []string `json:"warnings"`
}

// Merge assembles the processed chunks of workDir into outputFile. The
// optional header is prepended once, followed by a --- separator unless the
// header already ends with one.
func Merge(workDir, outputFile, header string, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "merge")

	m, err := manifest.NewStore(workDir, logger).Load()
	if err != nil {
		return nil, err
	}

	plan, planWarnings, err := chapters.LoadPlan(workarea.ChapterPlanPath(workDir))
	if err != nil {
		return nil, services.Wrap(services.ErrDataIntegrity, "merge", "chapter_plan", "load chapter plan", err)
	}

	result := &Result{
		OutputFile:   outputFile,
		MissingFiles: []string{},
		Warnings:     append([]string{}, planWarnings...),
	}
	for _, warning := range planWarnings {
		logger.Warn("chapter plan entry skipped", logging.String("detail", warning))
	}

	var out strings.Builder
	if header != "" {
		header = strings.TrimSpace(header)
		out.WriteString(header)
		if strings.HasSuffix(header, "---") {
			out.WriteString("\n")
		} else {
			out.WriteString("\n---\n")
		}
	}

	for _, chunk := range m.Chunks {
		if chapter, ok := plan.At(chunk.ID); ok && !chapter.Empty() {
			out.WriteString(fmt.Sprintf("\n## %s\n", chapter.TitleEN))
			if chapter.TitleZH != "" {
				out.WriteString(fmt.Sprintf("## %s\n", chapter.TitleZH))
			}
			out.WriteString("\n")
			result.ChaptersInserted++
		}

		processedPath := filepath.Join(workDir, chunk.ProcessedPath)
		content, err := os.ReadFile(processedPath)
		if err != nil {
			result.MissingFiles = append(result.MissingFiles, processedPath)
			warning := fmt.Sprintf("processed file not found: %s", processedPath)
			result.Warnings = append(result.Warnings, warning)
			logger.Warn("processed chunk missing, content omitted",
				logging.Int(logging.FieldChunkID, chunk.ID),
				logging.String("path", processedPath),
				logging.String(logging.FieldErrorHint, "re-run the process stage to regenerate it"))
			continue
		}
		out.Write(content)
		out.WriteString("\n")
	}

	final := out.String()
	if dir := filepath.Dir(outputFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, services.Wrap(services.ErrInput, "merge", "write", "create output directory", err)
		}
	}
	if err := os.WriteFile(outputFile, []byte(final), 0o644); err != nil {
		return nil, services.Wrap(services.ErrInput, "merge", "write", "write merged output", err)
	}

	result.Success = len(result.MissingFiles) == 0
	result.TotalLines = strings.Count(final, "\n")
	result.TotalChars = utf8.RuneCountInString(final)

	logger.Info("merge complete",
		logging.String("output", outputFile),
		logging.Int("chapters_inserted", result.ChaptersInserted),
		logging.Int("missing_files", len(result.MissingFiles)),
		logging.Bool("success", result.Success))

	return result, nil
}
