// Package prompts resolves the transformation prompt templates applied to
// each chunk.
//
// Templates ship embedded in the binary; a configured directory can add new
// templates or shadow the built-in ones. A template marks where the chunk
// content goes with a {RAW_TEXT} or {STRUCTURED_TEXT} placeholder; a
// template with neither simply has the content appended.
package prompts

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"shuttle/internal/services"
)

//go:embed templates/*.md
var builtin embed.FS

const (
	placeholderRaw        = "{RAW_TEXT}"
	placeholderStructured = "{STRUCTURED_TEXT}"
)

// Built-in template names. Validation heuristics key off these.
const (
	NameStructureOnly = "structure_only"
	NameQuickCleanup  = "quick_cleanup"
	NameTranslateOnly = "translate_only"
	NameSummarize     = "summarize"
)

// IsSummary reports whether the named template produces summaries instead
// of transformed chunks. Summary outputs live beside the pipeline outputs
// and never affect chunk status.
func IsSummary(name string) bool {
	return name == NameSummarize
}

// Library resolves templates by name, preferring an override directory when
// one is configured.
type Library struct {
	dir string
}

// NewLibrary builds a Library. dir may be empty to use only the built-in
// templates.
func NewLibrary(dir string) *Library {
	return &Library{dir: strings.TrimSpace(dir)}
}

// Load returns the template body for name. Unknown names produce an input
// error that lists the available templates.
func (l *Library) Load(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", services.Wrap(services.ErrInput, "prompts", "load", "empty prompt name", nil)
	}

	if l.dir != "" {
		data, err := os.ReadFile(filepath.Join(l.dir, name+".md"))
		if err == nil {
			return string(data), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", services.Wrap(services.ErrInput, "prompts", "load", fmt.Sprintf("read prompt %q", name), err)
		}
	}

	data, err := builtin.ReadFile("templates/" + name + ".md")
	if err != nil {
		available := l.Available()
		return "", services.Wrap(services.ErrInput, "prompts", "load",
			fmt.Sprintf("prompt template %q not found; available: %s", name, strings.Join(available, ", ")), nil)
	}
	return string(data), nil
}

// Available lists the template names resolvable through this library.
func (l *Library) Available() []string {
	seen := map[string]struct{}{}

	entries, err := builtin.ReadDir("templates")
	if err == nil {
		for _, entry := range entries {
			seen[strings.TrimSuffix(entry.Name(), ".md")] = struct{}{}
		}
	}
	if l.dir != "" {
		if entries, err := os.ReadDir(l.dir); err == nil {
			for _, entry := range entries {
				if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
					continue
				}
				seen[strings.TrimSuffix(entry.Name(), ".md")] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AppendInstruction attaches a caller-supplied instruction to the template.
func AppendInstruction(template, extra string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return template
	}
	return template + fmt.Sprintf("\n\n**Additional Instructions**: %s\n", extra)
}

// Render substitutes the chunk content into the template. The raw
// placeholder wins over the structured one; with neither present the
// content is appended after a blank line.
func Render(template, content string) string {
	if strings.Contains(template, placeholderRaw) {
		return strings.ReplaceAll(template, placeholderRaw, content)
	}
	if strings.Contains(template, placeholderStructured) {
		return strings.ReplaceAll(template, placeholderStructured, content)
	}
	return template + "\n\n" + content
}
