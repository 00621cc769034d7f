package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable. Macro names and split modes
// are checked by the pipeline itself so their failures carry dedicated markers.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDiscover(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	input := filepath.Clean(c.Paths.InputDir)
	output := filepath.Clean(c.Paths.OutputDir)
	if input == output {
		return errors.New("paths.output_dir must differ from paths.input_dir; the output directory is recreated on every run")
	}
	if within(input, output) {
		return fmt.Errorf("paths.output_dir %q must not contain paths.input_dir", output)
	}
	header := filepath.Clean(c.Paths.HeaderFile)
	if header == output || within(header, output) {
		return errors.New("paths.header_file must not be or live inside paths.output_dir")
	}
	if header == input {
		return errors.New("paths.header_file must not be paths.input_dir")
	}
	return nil
}

func (c *Config) validateDiscover() error {
	if len(c.Discover.Extensions) == 0 {
		return errors.New("discover.extensions must include at least one extension")
	}
	for _, ext := range c.Discover.Extensions {
		if ext == "." || strings.ContainsAny(ext, `/\`) {
			return fmt.Errorf("discover.extensions: invalid extension %q", ext)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}

// within reports whether child sits inside parent.
func within(child, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
