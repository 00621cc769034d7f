package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dfsorter/internal/config"
)

// pipelineFlags are the per-invocation overrides shared by run and plan.
type pipelineFlags struct {
	input      string
	output     string
	header     string
	macro      string
	customSort bool
	splitMode  string
	primary    []string
	secondary  []string
	extensions []string
	verify     bool
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "Input folder holding the audio files")
	flags.StringVarP(&f.output, "output", "o", "", "Output folder, recreated on every run")
	flags.StringVar(&f.header, "header", "", "Path of the generated header file")
	flags.StringVarP(&f.macro, "macro", "m", "", "Include guard macro name")
	flags.BoolVar(&f.customSort, "custom-sort", false, "Order files by primary/secondary tags")
	flags.StringVar(&f.splitMode, "split-mode", "", "Tokenization for custom sort: underscore, camel_case, pascal_case")
	flags.StringSliceVar(&f.primary, "primary", nil, "Primary tag order (comma separated)")
	flags.StringSliceVar(&f.secondary, "secondary", nil, "Secondary tag order (comma separated)")
	flags.StringSliceVar(&f.extensions, "ext", nil, "Audio extensions to include (comma separated)")
	flags.BoolVar(&f.verify, "verify", false, "Hash-verify every copied file")
}

// apply returns a copy of base with every explicitly set flag applied.
func (f *pipelineFlags) apply(cmd *cobra.Command, base *config.Config) (*config.Config, error) {
	cfg := *base
	flags := cmd.Flags()
	// Path flags resolve from the working directory, not the config file.
	for _, p := range []struct {
		name  string
		value string
		dst   *string
	}{
		{"input", f.input, &cfg.Paths.InputDir},
		{"output", f.output, &cfg.Paths.OutputDir},
		{"header", f.header, &cfg.Paths.HeaderFile},
	} {
		if !flags.Changed(p.name) {
			continue
		}
		expanded, err := config.ExpandPath(strings.TrimSpace(p.value))
		if err != nil {
			return nil, fmt.Errorf("--%s: %w", p.name, err)
		}
		*p.dst = expanded
	}
	if flags.Changed("macro") {
		cfg.Header.MacroName = f.macro
	}
	if flags.Changed("custom-sort") {
		cfg.Sort.Enabled = f.customSort
	}
	if flags.Changed("split-mode") {
		cfg.Sort.SplitMode = f.splitMode
	}
	if flags.Changed("primary") {
		cfg.Sort.PrimaryOrder = f.primary
	}
	if flags.Changed("secondary") {
		cfg.Sort.SecondaryOrder = f.secondary
	}
	if flags.Changed("ext") {
		cfg.Discover.Extensions = f.extensions
	}
	if flags.Changed("verify") {
		cfg.Copy.Verify = f.verify
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
