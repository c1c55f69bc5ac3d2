// Package manifest persists the chunk pipeline state.
//
// The manifest file is the single source of truth for resumability: every
// stage re-reads it from disk instead of trusting an in-memory copy, and
// every mutation is written back immediately. The file stays human-readable
// JSON so operators can inspect and diff it between stages.
package manifest

import (
	"fmt"
	"unicode/utf8"

	"shuttle/internal/workarea"
)

// Status is the persisted processing state of one chunk. Failures are never
// persisted; a chunk that failed in one run stays pending so the next run
// retries it.
type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

var statusSet = map[Status]struct{}{
	StatusPending: {},
	StatusDone:    {},
}

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	_, ok := statusSet[s]
	return ok
}

// Chunk describes one bounded unit of text tracked through the pipeline.
// Paths are relative to the work directory.
type Chunk struct {
	ID            int    `json:"id"`
	RawPath       string `json:"raw_path"`
	ProcessedPath string `json:"processed_path"`
	CharCount     int    `json:"char_count"`
	Status        Status `json:"status"`
}

// Manifest is the persisted pipeline state for one work area.
type Manifest struct {
	TotalChunks int     `json:"total_chunks"`
	ChunkSize   int     `json:"chunk_size"`
	SourceFile  string  `json:"source_file"`
	WorkDir     string  `json:"work_dir"`
	Chunks      []Chunk `json:"chunks"`
}

// New builds a manifest for the given chunk contents. Chunk IDs are assigned
// contiguously from zero in input order; char counts are Unicode code points.
func New(contents []string, chunkSize int, sourceFile, workDir string) *Manifest {
	m := &Manifest{
		TotalChunks: len(contents),
		ChunkSize:   chunkSize,
		SourceFile:  sourceFile,
		WorkDir:     workDir,
		Chunks:      make([]Chunk, 0, len(contents)),
	}
	for i, content := range contents {
		m.Chunks = append(m.Chunks, Chunk{
			ID:            i,
			RawPath:       workarea.ChunkFileName(i),
			ProcessedPath: workarea.ProcessedFileName(i),
			CharCount:     utf8.RuneCountInString(content),
			Status:        StatusPending,
		})
	}
	return m
}

// Validate checks the structural invariants: contiguous IDs from zero, known
// statuses, and a consistent chunk count.
func (m *Manifest) Validate() error {
	if m.TotalChunks != len(m.Chunks) {
		return fmt.Errorf("total_chunks %d does not match %d chunk entries", m.TotalChunks, len(m.Chunks))
	}
	for i, chunk := range m.Chunks {
		if chunk.ID != i {
			return fmt.Errorf("chunk at position %d has id %d; ids must be contiguous from 0", i, chunk.ID)
		}
		if !chunk.Status.Valid() {
			return fmt.Errorf("chunk %d has unknown status %q", chunk.ID, chunk.Status)
		}
		if chunk.RawPath == "" {
			return fmt.Errorf("chunk %d has empty raw_path", chunk.ID)
		}
	}
	return nil
}

// Pending returns the number of chunks still awaiting processing.
func (m *Manifest) Pending() int {
	count := 0
	for _, chunk := range m.Chunks {
		if chunk.Status == StatusPending {
			count++
		}
	}
	return count
}

// Done returns the number of chunks already processed.
func (m *Manifest) Done() int {
	return len(m.Chunks) - m.Pending()
}

// Chunk returns the entry with the given ID.
func (m *Manifest) Chunk(id int) (*Chunk, bool) {
	for i := range m.Chunks {
		if m.Chunks[i].ID == id {
			return &m.Chunks[i], true
		}
	}
	return nil, false
}
