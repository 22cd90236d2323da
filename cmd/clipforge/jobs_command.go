package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"clipforge/internal/joblog"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Show render job history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := joblog.Open(cfg)
			if err != nil {
				return fmt.Errorf("open job history: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limitFlag)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No render jobs recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				detail := entry.OutputPath
				if entry.ErrorMessage != "" {
					detail = entry.ErrorMessage
				}
				rows = append(rows, []string{
					entry.CreatedAt.Local().Format("2006-01-02 15:04"),
					titleCase(string(entry.Status)),
					entry.Format,
					strconv.Itoa(entry.ClipCount),
					formatSecs(entry.Duration),
					formatBytes(entry.FileSize),
					detail,
				})
			}
			columns := []column{
				{Title: "Created"},
				{Title: "Status"},
				{Title: "Format"},
				numeric("Clips"),
				numeric("Duration"),
				numeric("Size"),
				{Title: "Output / Error"},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(columns, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum jobs to show (0 for all)")
	return cmd
}
