package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dfsorter/internal/sorter"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var flags pipelineFlags

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview the track numbering without writing anything",
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

			res, err := sorter.New(cfg, logger).Plan(cmd.Context())
			if err != nil {
				return reportFailure(cmd.ErrOrStderr(), err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Input: %s\n", cfg.Paths.InputDir)
			fmt.Fprintf(out, "Custom sort: %s", yesNo(res.CustomSort))
			if res.CustomSort {
				fmt.Fprintf(out, " (%s)", res.SplitMode)
			}
			fmt.Fprintln(out)

			if len(res.Mappings) == 0 {
				fmt.Fprintln(out, "No audio files found")
				return nil
			}
			rows := make([][]string, 0, len(res.Mappings))
			for i, m := range res.Mappings {
				rows = append(rows, []string{
					strconv.Itoa(m.Index),
					m.TargetName(),
					m.File.Name,
					m.File.Base,
					res.Entries[i].Priority.String(),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Target", "Source", "Define", "Priority"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
			))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}
