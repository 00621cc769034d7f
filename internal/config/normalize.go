package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeHeader()
	c.normalizeDiscover()
	c.normalizeSort()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = c.resolvePath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = c.resolvePath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HeaderFile) == "" {
		c.Paths.HeaderFile = defaultHeaderFile
	}
	if c.Paths.HeaderFile, err = c.resolvePath(strings.TrimSpace(c.Paths.HeaderFile)); err != nil {
		return fmt.Errorf("paths.header_file: %w", err)
	}
	if c.Logging.File, err = c.resolvePath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeHeader() {
	c.Header.MacroName = strings.TrimSpace(c.Header.MacroName)
	if c.Header.MacroName == "" {
		if value, ok := os.LookupEnv("DFSORTER_MACRO_NAME"); ok {
			c.Header.MacroName = strings.TrimSpace(value)
		}
	}
	if c.Header.MacroName == "" {
		c.Header.MacroName = defaultMacroName
	}
}

func (c *Config) normalizeDiscover() {
	exts := make([]string, 0, len(c.Discover.Extensions))
	seen := make(map[string]struct{}, len(c.Discover.Extensions))
	for _, ext := range c.Discover.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = append(exts, defaultExtensions...)
	}
	c.Discover.Extensions = exts
	c.Discover.IgnoreFile = strings.TrimSpace(c.Discover.IgnoreFile)
}

func (c *Config) normalizeSort() {
	// An empty mode is kept so custom sort rejects it instead of guessing.
	c.Sort.SplitMode = strings.TrimSpace(c.Sort.SplitMode)
	c.Sort.PrimaryOrder = trimTags(c.Sort.PrimaryOrder)
	c.Sort.SecondaryOrder = trimTags(c.Sort.SecondaryOrder)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
}

func trimTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
