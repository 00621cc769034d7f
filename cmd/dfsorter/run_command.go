package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"dfsorter/internal/fault"
	"dfsorter/internal/identifier"
	"dfsorter/internal/sorter"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Copy audio files under sequential names and write the header",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg, err := flags.apply(cmd, base)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, cfg)
			if err != nil {
				return err
			}

			res, err := sorter.New(cfg, logger).Run(cmd.Context())
			if err != nil {
				return reportFailure(cmd.ErrOrStderr(), err)
			}

			out := cmd.OutOrStdout()
			for _, m := range res.Mappings {
				fmt.Fprintf(out, "File name: %s, corresponding number: %04d\n", m.File.Base, m.Index)
			}
			fmt.Fprintf(out, "Files copied and %s generated successfully.\n", filepath.Base(cfg.Paths.HeaderFile))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

// reportFailure prints user-facing detail for validation failures and returns
// the error main should exit with.
func reportFailure(w io.Writer, err error) error {
	var invalid *identifier.InvalidNamesError
	switch {
	case errors.As(err, &invalid):
		fmt.Fprintln(w, "The following macro names are invalid. Please check and correct the file names:")
		for _, p := range invalid.Problems {
			fmt.Fprintf(w, "Invalid name: %s (%s)\n", p.Name, p.Reason)
		}
		return fmt.Errorf("%w: %d rejected", fault.ErrInvalidFileName, len(invalid.Problems))
	case errors.Is(err, fault.ErrInvalidMacroName):
		fmt.Fprintln(w, "Invalid macro name. Please check and correct the macro name.")
	case errors.Is(err, fault.ErrInvalidSplitMode):
		fmt.Fprintln(w, "Invalid word split logic.")
	}
	return err
}
