// Package chapters loads the optional chapter plan that the merge stage uses
// to insert section headings between chunks.
//
// The plan file is advisory input, often hand-edited, so parse failures
// degrade to warnings instead of aborting a merge: a broken plan yields an
// empty plan plus a warning, and individually malformed entries are skipped.
package chapters

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
)

// Chapter is one heading inserted before the chunk it starts at. Either
// title may be empty; a chapter with both titles empty is not rendered.
type Chapter struct {
	TitleEN string
	TitleZH string
}

// Empty reports whether the chapter has no renderable title.
func (c Chapter) Empty() bool {
	return c.TitleEN == "" && c.TitleZH == ""
}

// Plan maps starting chunk IDs to their chapter headings. When several
// entries name the same start chunk, the last one wins.
type Plan map[int]Chapter

// At returns the chapter starting at the given chunk ID.
func (p Plan) At(id int) (Chapter, bool) {
	c, ok := p[id]
	return c, ok
}

// LoadPlan reads a chapter plan file. A missing file is not an error; it
// returns an empty plan. Malformed content is reported through warnings and
// the unusable parts are dropped.
func LoadPlan(path string) (Plan, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Plan{}, nil, nil
		}
		return nil, nil, fmt.Errorf("read chapter plan: %w", err)
	}

	return parsePlan(data)
}

func parsePlan(data []byte) (Plan, []string, error) {
	var warnings []string

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		warnings = append(warnings, fmt.Sprintf("could not parse chapter plan: %v", err))
		return Plan{}, warnings, nil
	}

	entries, ok := raw.([]any)
	if !ok {
		warnings = append(warnings, "chapter plan is not a list; ignoring it")
		return Plan{}, warnings, nil
	}

	plan := Plan{}
	for _, item := range entries {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		value, present := entry["start_chunk"]
		if !present || value == nil {
			continue
		}
		id, ok := coerceChunkID(value)
		if !ok {
			warnings = append(warnings, fmt.Sprintf("invalid start_chunk value: %v", value))
			continue
		}
		plan[id] = Chapter{
			TitleEN: stringValue(entry["title_en"]),
			TitleZH: stringValue(entry["title_zh"]),
		}
	}

	return plan, warnings, nil
}

// coerceChunkID accepts integers, whole or fractional numbers (truncated),
// and decimal strings.
func coerceChunkID(value any) (int, bool) {
	switch v := value.(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n), true
		}
		if f, err := v.Float64(); err == nil {
			return int(f), true
		}
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return int(n), true
		}
	}
	return 0, false
}

func stringValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return ""
	}
}
