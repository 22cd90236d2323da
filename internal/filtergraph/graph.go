package filtergraph

import (
	"clipforge/internal/crop"
	"clipforge/internal/timeline"
)

// ScaleMode selects how a source frame is fitted to the target dimensions.
type ScaleMode string

const (
	// ScaleCrop applies the focus-aware crop rectangle, then scales.
	ScaleCrop ScaleMode = "crop"
	// ScalePad scales to fit and letterboxes the remainder.
	ScalePad ScaleMode = "pad"
)

// TransformNode normalizes one clip: trim, crop or pad, scale, and pixel
// format. Input is the zero-based encoder input index for the clip's source.
type TransformNode struct {
	Input     int
	TrimStart float64
	TrimEnd   float64
	Crop      crop.Decision
	SourceW   int
	SourceH   int
	TargetW   int
	TargetH   int
	Mode      ScaleMode
}

// TransitionNode blends two adjacent streams. Offset is the absolute timeline
// position, in seconds, where the incoming clip's contribution begins.
type TransitionNode struct {
	Kind     timeline.TransitionType
	Duration float64
	Offset   float64
}

// Boundary is one clip-to-clip handover: either a plain concatenation (nil
// Transition) or a timed blend.
type Boundary struct {
	Transition *TransitionNode
}

// IsCut reports whether the boundary is a plain concatenation.
func (b Boundary) IsCut() bool {
	return b.Transition == nil
}

// Graph is the declarative transformation plan for one encode job. It is a
// value object: all offset arithmetic and node wiring happens before any
// encoder syntax is produced.
type Graph struct {
	Transforms []TransformNode
	// Boundaries has exactly len(Transforms)-1 entries; Boundaries[i]
	// joins clip i and clip i+1.
	Boundaries []Boundary
	TargetW    int
	TargetH    int
	FrameRate  int
	// CRF is the compression parameter applied when the graph is encoded.
	CRF int
	// WithAudio controls whether audio streams are carried through the
	// graph. The drop-audio fallback clears it.
	WithAudio bool
}

// SingleClip reports whether the graph degenerates to one transform node with
// no transition or concat stage.
func (g Graph) SingleClip() bool {
	return len(g.Transforms) == 1
}

// TransitionCount returns the number of blending boundaries.
func (g Graph) TransitionCount() int {
	count := 0
	for _, boundary := range g.Boundaries {
		if !boundary.IsCut() {
			count++
		}
	}
	return count
}
