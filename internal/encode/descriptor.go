package encode

import (
	"context"
	"os"

	"clipforge/internal/media/ffprobe"
	"clipforge/internal/services"
)

// describeOutput verifies an encode attempt actually produced a usable file
// and fills in the output descriptor fields. A missing or zero-byte file is
// an empty-output failure regardless of the encoder's exit status.
func describeOutput(ctx context.Context, ffprobeBin, path string) (width, height int, duration float64, size int64, err error) {
	info, statErr := os.Stat(path)
	if statErr != nil || info.Size() == 0 {
		return 0, 0, 0, 0, services.Wrap(services.ErrEmptyOutput, "encode", "describe",
			"encoder exited successfully but produced no output", nil)
	}
	size = info.Size()

	result, probeErr := ffprobe.Inspect(ctx, ffprobeBin, path)
	if probeErr != nil {
		return 0, 0, 0, size, services.Wrap(services.ErrEmptyOutput, "encode", "describe",
			"output file is not a readable media container", probeErr)
	}
	width, height = result.Dimensions()
	duration = result.DurationSeconds()
	if width == 0 || height == 0 {
		return 0, 0, duration, size, services.Wrap(services.ErrEmptyOutput, "encode", "describe",
			"output file contains no video stream", nil)
	}
	return width, height, duration, size, nil
}
