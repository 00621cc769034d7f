package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"dfsorter/internal/fault"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the input folder, output folder, and header destination.
type Paths struct {
	InputDir   string `toml:"input_dir"`
	OutputDir  string `toml:"output_dir"`
	HeaderFile string `toml:"header_file"`
}

// Header contains settings for the generated C header.
type Header struct {
	// MacroName doubles as the include guard symbol.
	MacroName string `toml:"macro_name"`
}

// Discover controls which input files are considered.
type Discover struct {
	Extensions []string `toml:"extensions"`
	// IgnoreFile is looked up inside the input directory and uses gitignore syntax.
	IgnoreFile string `toml:"ignore_file"`
}

// Sort contains the custom two-level tag ordering.
type Sort struct {
	Enabled        bool     `toml:"enabled"`
	SplitMode      string   `toml:"split_mode"`
	PrimaryOrder   []string `toml:"primary_order"`
	SecondaryOrder []string `toml:"secondary_order"`
}

// Copy contains file copy behaviour.
type Copy struct {
	Verify bool `toml:"verify"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for dfsorter.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Header   Header   `toml:"header"`
	Discover Discover `toml:"discover"`
	Sort     Sort     `toml:"sort"`
	Copy     Copy     `toml:"copy"`
	Logging  Logging  `toml:"logging"`

	// baseDir anchors relative paths; it is the loaded file's directory.
	baseDir string
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/dfsorter/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
		cfg.baseDir = filepath.Dir(resolvedPath)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Finalize normalizes and validates the config. Callers that mutate a loaded
// config (flag overrides) must call it again.
func (c *Config) Finalize() error {
	if err := c.normalize(); err != nil {
		return fault.Wrap(fault.ErrConfiguration, "config", "normalize", "", err)
	}
	if err := c.Validate(); err != nil {
		return fault.Wrap(fault.ErrConfiguration, "config", "validate", "", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("dfsorter.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// LockPath returns the advisory lock file guarding the output directory. The
// file stays on disk between runs so every process locks the same inode.
func (c *Config) LockPath() string {
	dir := filepath.Dir(c.Paths.OutputDir)
	return filepath.Join(dir, "."+filepath.Base(c.Paths.OutputDir)+".lock")
}

// IgnorePath returns the absolute ignore file location, or "" when disabled.
func (c *Config) IgnorePath() string {
	name := strings.TrimSpace(c.Discover.IgnoreFile)
	if name == "" {
		return ""
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Paths.InputDir, name)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// resolvePath expands pathValue, joining relative values onto baseDir when a
// config file was loaded and onto the working directory otherwise.
func (c *Config) resolvePath(pathValue string) (string, error) {
	if pathValue != "" && c.baseDir != "" && !strings.HasPrefix(pathValue, "~") && !filepath.IsAbs(pathValue) {
		pathValue = filepath.Join(c.baseDir, pathValue)
	}
	return expandPath(pathValue)
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
