package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"clipforge/internal/format"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "formats",
		Short:       "List available output presets",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(format.All()))
			for _, output := range format.All() {
				rows = append(rows, []string{
					output.Key,
					output.Label,
					fmt.Sprintf("%dx%d", output.Width, output.Height),
					fmt.Sprintf("%.2f", output.AspectRatio()),
				})
			}
			columns := []column{{Title: "Key"}, {Title: "Platform"}, {Title: "Dimensions"}, numeric("Ratio")}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(columns, rows))
			return nil
		},
	}
}
