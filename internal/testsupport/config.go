package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"dfsorter/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a finalized config rooted in a unique temp directory.
// The input directory is created; the output side is left untouched.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.InputDir = filepath.Join(base, "input")
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.HeaderFile = filepath.Join(base, "define.h")

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("finalize test config: %v", err)
	}
	if err := os.MkdirAll(cfg.Paths.InputDir, 0o755); err != nil {
		t.Fatalf("mkdir input dir: %v", err)
	}
	return &cfg
}

// WithMacroName overrides the header macro name.
func WithMacroName(name string) ConfigOption {
	return func(c *config.Config) {
		c.Header.MacroName = name
	}
}

// WithCustomSort enables tag sorting with the given split mode and orders.
func WithCustomSort(mode string, primary, secondary []string) ConfigOption {
	return func(c *config.Config) {
		c.Sort.Enabled = true
		c.Sort.SplitMode = mode
		c.Sort.PrimaryOrder = primary
		c.Sort.SecondaryOrder = secondary
	}
}

// WithVerifiedCopies turns on hash-verified copies.
func WithVerifiedCopies() ConfigOption {
	return func(c *config.Config) {
		c.Copy.Verify = true
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputDir)
}
