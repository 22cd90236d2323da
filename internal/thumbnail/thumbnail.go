// Package thumbnail grabs a single preview frame from a rendered artifact.
// Extraction is best effort: callers log failures and keep the render result.
package thumbnail

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

var runCommand = defaultRunCommand

func defaultRunCommand(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	return cmd.CombinedOutput()
}

// Options control where in the artifact the preview frame is taken from.
type Options struct {
	// OffsetSeconds is the seek position for the grab. Offsets beyond the
	// artifact duration are pulled back to its midpoint.
	OffsetSeconds float64
	// Duration is the artifact duration, used to bound the offset. Zero
	// disables the bound.
	Duration float64
}

// Extract writes a JPEG preview frame of videoPath to outputPath. The output
// file is removed again when the grab produces nothing usable.
func Extract(ctx context.Context, ffmpegBinary, videoPath, outputPath string, opts Options) error {
	offset := opts.OffsetSeconds
	if offset < 0 {
		offset = 0
	}
	if opts.Duration > 0 && offset >= opts.Duration {
		offset = opts.Duration / 2
	}

	args := []string{
		"-y", "-hide_banner", "-loglevel", "error",
		"-ss", strconv.FormatFloat(offset, 'f', -1, 64),
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		outputPath,
	}

	if output, err := runCommand(ctx, ffmpegBinary, args); err != nil {
		_ = os.Remove(outputPath)
		detail := strings.TrimSpace(string(output))
		if detail != "" {
			return fmt.Errorf("thumbnail grab: %w: %s", err, detail)
		}
		return fmt.Errorf("thumbnail grab: %w", err)
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(outputPath)
		return fmt.Errorf("thumbnail grab produced no file")
	}
	return nil
}
