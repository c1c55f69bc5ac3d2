package testsupport

import (
	"path/filepath"
	"testing"

	"shuttle/internal/config"
)

// ConfigOption adjusts the test configuration before directories are created.
type ConfigOption func(*config.Config)

// WithLLM fills the transform API settings with usable values.
func WithLLM(baseURL, model string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.LLM.APIKey = "test-key"
		cfg.LLM.BaseURL = baseURL
		cfg.LLM.Model = model
	}
}

// NewConfig returns a validated configuration rooted in a per-test temp
// directory so tests never touch the user's real directories.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.OutputDir = filepath.Join(base, "articles")

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// BaseDir returns the directory that contains the config's managed paths.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
