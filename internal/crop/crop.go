// Package crop computes focus-point-aware crop rectangles for aspect ratio
// conversion.
package crop

import "math"

// ratioTolerance is the aspect ratio delta under which no crop is applied and
// the source is purely scaled.
const ratioTolerance = 0.01

// Decision describes the rectangle to keep from a source frame. The rectangle
// is always fully contained in the source.
type Decision struct {
	Width   int
	Height  int
	OffsetX int
	OffsetY int
}

// IsFullFrame reports whether the decision keeps the entire source frame.
func (d Decision) IsFullFrame(sourceW, sourceH int) bool {
	return d.OffsetX == 0 && d.OffsetY == 0 && d.Width == sourceW && d.Height == sourceH
}

// Compute returns the crop rectangle that converts the source frame to the
// target aspect ratio while keeping the focus point in view. Focus values are
// percentages in [0,100]; 50/50 centers the crop. Out-of-range focus values
// are clamped rather than rejected so the result always stays inside the
// source.
func Compute(sourceW, sourceH, targetW, targetH int, focusX, focusY float64) Decision {
	if sourceW <= 0 || sourceH <= 0 || targetW <= 0 || targetH <= 0 {
		return Decision{Width: sourceW, Height: sourceH}
	}

	sourceRatio := float64(sourceW) / float64(sourceH)
	targetRatio := float64(targetW) / float64(targetH)

	if math.Abs(sourceRatio-targetRatio) < ratioTolerance {
		return Decision{Width: sourceW, Height: sourceH}
	}

	if sourceRatio > targetRatio {
		// Source is wider than the target: crop horizontally, bias by focusX.
		cropW := int(math.Round(float64(sourceH) * targetRatio))
		if cropW > sourceW {
			cropW = sourceW
		}
		maxOffset := sourceW - cropW
		offsetX := clampInt(int(math.Round(focusX/100*float64(maxOffset))), 0, maxOffset)
		return Decision{Width: cropW, Height: sourceH, OffsetX: offsetX}
	}

	// Source is taller than the target: crop vertically, bias by focusY.
	cropH := int(math.Round(float64(sourceW) / targetRatio))
	if cropH > sourceH {
		cropH = sourceH
	}
	maxOffset := sourceH - cropH
	offsetY := clampInt(int(math.Round(focusY/100*float64(maxOffset))), 0, maxOffset)
	return Decision{Width: sourceW, Height: cropH, OffsetY: offsetY}
}

func clampInt(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
