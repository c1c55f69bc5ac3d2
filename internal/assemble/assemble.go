// Package assemble produces the final published document: YAML frontmatter,
// a metadata header, the optimized transcript body, and an attribution
// footer. It also verifies the optimized text against structural quality
// checks before publication.
package assemble

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"shuttle/internal/fileutil"
	"shuttle/internal/services"
	"shuttle/internal/textutil"
)

// Metadata carries the document attributes rendered into the frontmatter
// and header. Empty fields render as empty values rather than being omitted,
// except Date which is dropped entirely when unset.
type Metadata struct {
	Title            string
	Source           string
	Channel          string
	Date             string
	Created          string
	DurationSeconds  int
	TranscriptSource string
	Bilingual        bool
}

// Result reports one assembly operation.
type Result struct {
	Success       bool   `json:"success"`
	OutputFile    string `json:"output_file"`
	TotalChars    int    `json:"total_chars"`
	TotalLines    int    `json:"total_lines"`
	PublishedFile string `json:"published_file,omitempty"`
}

type frontmatter struct {
	Title            string `yaml:"title"`
	Source           string `yaml:"source"`
	Channel          string `yaml:"channel"`
	Date             string `yaml:"date,omitempty"`
	Created          string `yaml:"created"`
	Type             string `yaml:"type"`
	Bilingual        bool   `yaml:"bilingual"`
	Duration         string `yaml:"duration"`
	TranscriptSource string `yaml:"transcript_source"`
}

// Assemble reads the optimized text and writes the final markdown document.
// A missing title falls back to one derived from the output filename.
func Assemble(optimizedPath, outputFile string, meta Metadata) (*Result, error) {
	body, err := os.ReadFile(optimizedPath)
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "assemble", "read", fmt.Sprintf("optimized text %s", optimizedPath), err)
	}
	text := strings.TrimSpace(string(body))

	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = TitleFromFilename(outputFile)
	}

	durationMin := 0
	if meta.DurationSeconds > 0 {
		durationMin = meta.DurationSeconds / 60
	}
	languageMode := "Chinese"
	if meta.Bilingual {
		languageMode = "Bilingual"
	}

	front, err := yaml.Marshal(frontmatter{
		Title:            meta.Title,
		Source:           meta.Source,
		Channel:          meta.Channel,
		Date:             meta.Date,
		Created:          meta.Created,
		Type:             "video-transcript",
		Bilingual:        meta.Bilingual,
		Duration:         fmt.Sprintf("%dm", durationMin),
		TranscriptSource: meta.TranscriptSource,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrInput, "assemble", "frontmatter", "marshal frontmatter", err)
	}

	var out strings.Builder
	out.WriteString("---\n")
	out.Write(front)
	out.WriteString("---\n")
	out.WriteString("\n")
	out.WriteString(fmt.Sprintf("# %s\n", meta.Title))
	out.WriteString("\n")
	out.WriteString(fmt.Sprintf("> Video source: [YouTube - %s](%s)\n", meta.Channel, meta.Source))
	out.WriteString(fmt.Sprintf("> Language mode: %s\n", languageMode))
	out.WriteString(fmt.Sprintf("> Duration: %d minutes\n", durationMin))
	out.WriteString("\n---\n\n")
	out.WriteString(text)
	out.WriteString("\n\n---\n\n")
	out.WriteString(fmt.Sprintf("*This article was generated by AI voice transcription (%s), for reference only.*\n", meta.TranscriptSource))

	final := out.String()
	if dir := filepath.Dir(outputFile); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, services.Wrap(services.ErrInput, "assemble", "write", "create output directory", err)
		}
	}
	if err := os.WriteFile(outputFile, []byte(final), 0o644); err != nil {
		return nil, services.Wrap(services.ErrInput, "assemble", "write", "write assembled document", err)
	}

	absolute, err := filepath.Abs(outputFile)
	if err != nil {
		absolute = outputFile
	}
	return &Result{
		Success:    true,
		OutputFile: absolute,
		TotalChars: utf8.RuneCountInString(final),
		TotalLines: strings.Count(final, "\n") + 1,
	}, nil
}

// Publish copies the assembled document into outputDir under a sanitized
// filename, verifying the copy by checksum. It returns the published path.
func Publish(assembledFile, outputDir string) (string, error) {
	if strings.TrimSpace(outputDir) == "" {
		return "", services.Wrap(services.ErrConfiguration, "assemble", "publish", "no output directory configured", nil)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrInput, "assemble", "publish", "create output directory", err)
	}
	name := textutil.SanitizeFileName(filepath.Base(assembledFile))
	dest := filepath.Join(outputDir, name)
	if err := fileutil.CopyFileVerified(assembledFile, dest); err != nil {
		return "", services.Wrap(services.ErrInput, "assemble", "publish", "copy assembled document", err)
	}
	return dest, nil
}

// TitleFromFilename derives a readable title from a document path: the
// extension is dropped and separator runs become spaces with title casing.
func TitleFromFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	base = strings.Join(strings.Fields(base), " ")
	if base == "" {
		return "Untitled"
	}
	return cases.Title(language.Und).String(base)
}
