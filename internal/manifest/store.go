package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"shuttle/internal/logging"
	"shuttle/internal/services"
	"shuttle/internal/workarea"
)

// Store reads and writes the manifest for one work directory. Writes are
// atomic (temp file plus rename) so a crash never leaves a torn manifest
// behind.
type Store struct {
	workDir string
	path    string
	logger  *slog.Logger
	mu      sync.Mutex
}

// NewStore creates a store rooted at the given work directory.
func NewStore(workDir string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Store{
		workDir: workDir,
		path:    workarea.ManifestPath(workDir),
		logger:  logging.NewComponentLogger(logger, "manifest"),
	}
}

// Path returns the manifest file location.
func (s *Store) Path() string {
	return s.path
}

// Create writes the chunk contents into the work directory, builds the
// manifest for them, and persists it. Any existing manifest is replaced.
func (s *Store) Create(contents []string, chunkSize int, sourceFile string) (*Manifest, error) {
	if len(contents) == 0 {
		return nil, services.Wrap(services.ErrInput, "manifest", "create", "no chunks to record", nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := workarea.Ensure(s.workDir); err != nil {
		return nil, services.Wrap(services.ErrInput, "manifest", "create", "prepare work directory", err)
	}

	m := New(contents, chunkSize, sourceFile, s.workDir)
	for i, content := range contents {
		path := filepath.Join(s.workDir, m.Chunks[i].RawPath)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return nil, services.Wrap(services.ErrInput, "manifest", "create", fmt.Sprintf("write chunk %d", i), err)
		}
	}

	if err := s.save(m); err != nil {
		return nil, err
	}

	s.logger.Debug("manifest created",
		logging.Int("total_chunks", m.TotalChunks),
		logging.String("path", s.path))
	return m, nil
}

// Load reads and validates the manifest. A missing file is reported through
// the not-found marker so callers can distinguish "stage not run yet" from a
// corrupt state file.
func (s *Store) Load() (*Manifest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Save persists the manifest atomically.
func (s *Store) Save(m *Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(m)
}

// MarkDone records that a chunk finished processing and where its output
// lives, then persists immediately. Marking an already-done chunk is a no-op
// so interrupted runs can safely replay.
func (s *Store) MarkDone(chunkID int, processedPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, err := s.load()
	if err != nil {
		return err
	}

	chunk, ok := m.Chunk(chunkID)
	if !ok {
		return services.Wrap(services.ErrNotFound, "manifest", "mark_done", fmt.Sprintf("chunk %d not in manifest", chunkID), nil)
	}
	if chunk.Status == StatusDone && (processedPath == "" || chunk.ProcessedPath == processedPath) {
		return nil
	}

	chunk.Status = StatusDone
	if processedPath != "" {
		chunk.ProcessedPath = processedPath
	}

	if err := s.save(m); err != nil {
		return err
	}

	s.logger.Debug("chunk marked done",
		logging.Int(logging.FieldChunkID, chunkID),
		logging.String("processed_path", chunk.ProcessedPath))
	return nil
}

func (s *Store) load() (*Manifest, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "manifest", "load", fmt.Sprintf("no manifest at %s; run the chunking stage first", s.path), err)
		}
		return nil, services.Wrap(services.ErrDataIntegrity, "manifest", "load", "read manifest", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, services.Wrap(services.ErrDataIntegrity, "manifest", "load", "parse manifest", err)
	}
	if err := m.Validate(); err != nil {
		return nil, services.Wrap(services.ErrDataIntegrity, "manifest", "load", "validate manifest", err)
	}

	return &m, nil
}

func (s *Store) save(m *Manifest) error {
	if err := m.Validate(); err != nil {
		return services.Wrap(services.ErrDataIntegrity, "manifest", "save", "validate manifest", err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return services.Wrap(services.ErrDataIntegrity, "manifest", "save", "marshal manifest", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return services.Wrap(services.ErrInput, "manifest", "save", "create work directory", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return services.Wrap(services.ErrInput, "manifest", "save", "write temp file", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return services.Wrap(services.ErrInput, "manifest", "save", "rename temp file", err)
	}

	return nil
}
