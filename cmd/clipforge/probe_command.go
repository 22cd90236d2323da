package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"clipforge/internal/media/ffprobe"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "probe <file>",
		Short: "Inspect a media file's streams and duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			result, err := ffprobe.Inspect(cmd.Context(), cfg.FFprobeBinary(), args[0])
			if err != nil {
				return fmt.Errorf("probe %s: %w", args[0], err)
			}

			width, height := result.Dimensions()
			rows := [][]string{
				{"Duration", formatSecs(result.DurationSeconds())},
				{"Dimensions", fmt.Sprintf("%dx%d", width, height)},
				{"Audio streams", strconv.Itoa(result.AudioStreamCount())},
				{"Size", formatBytes(result.SizeBytes())},
			}
			if stream, ok := result.VideoStream(); ok {
				rows = append(rows, []string{"Video codec", stream.CodecName})
			}

			fmt.Fprintln(cmd.OutOrStdout(), fieldTable(rows))
			return nil
		},
	}
}
