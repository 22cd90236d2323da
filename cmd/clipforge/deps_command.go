package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipforge/internal/preflight"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check host readiness: directories and external binaries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cfg)
			rows := make([][]string, 0, len(results))
			for _, result := range results {
				state := "FAIL"
				if result.Passed {
					state = "OK"
				}
				rows = append(rows, []string{result.Name, state, result.Detail})
			}
			columns := []column{{Title: "Check"}, {Title: "State"}, {Title: "Detail"}}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(columns, rows))

			if !preflight.AllPassed(results) {
				return fmt.Errorf("one or more readiness checks failed")
			}
			return nil
		},
	}
}
