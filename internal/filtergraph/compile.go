package filtergraph

import (
	"fmt"

	"clipforge/internal/crop"
	"clipforge/internal/services"
	"clipforge/internal/timeline"
)

// DefaultFrameRate normalizes all clips to a common rate so concatenation and
// blending are well-defined.
const DefaultFrameRate = 30

// Options parameterizes compilation.
type Options struct {
	TargetW   int
	TargetH   int
	CRF       int
	Mode      ScaleMode
	FrameRate int
	WithAudio bool
}

// Compile turns a resolved timeline plus per-clip crop decisions into a
// transformation graph. decisions must be index-aligned with the timeline's
// clips; each entry is the crop for that clip's source dimensions.
func Compile(tl timeline.Timeline, decisions []crop.Decision, sources [][2]int, opts Options) (Graph, error) {
	if len(tl.Clips) == 0 {
		return Graph{}, services.Wrap(services.ErrValidation, "filtergraph", "compile", "timeline has no clips", nil)
	}
	if len(decisions) != len(tl.Clips) {
		return Graph{}, services.Wrap(services.ErrValidation, "filtergraph", "compile",
			fmt.Sprintf("have %d crop decisions for %d clips", len(decisions), len(tl.Clips)), nil)
	}
	if len(sources) != len(tl.Clips) {
		return Graph{}, services.Wrap(services.ErrValidation, "filtergraph", "compile",
			fmt.Sprintf("have %d source dimensions for %d clips", len(sources), len(tl.Clips)), nil)
	}
	if opts.TargetW <= 0 || opts.TargetH <= 0 {
		return Graph{}, services.Wrap(services.ErrValidation, "filtergraph", "compile",
			fmt.Sprintf("invalid target dimensions %dx%d", opts.TargetW, opts.TargetH), nil)
	}

	mode := opts.Mode
	if mode == "" {
		mode = ScaleCrop
	}
	frameRate := opts.FrameRate
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}

	graph := Graph{
		TargetW:   opts.TargetW,
		TargetH:   opts.TargetH,
		FrameRate: frameRate,
		CRF:       opts.CRF,
		WithAudio: opts.WithAudio,
	}

	for i, clip := range tl.Clips {
		graph.Transforms = append(graph.Transforms, TransformNode{
			Input:     i,
			TrimStart: clip.TrimStart,
			TrimEnd:   clip.TrimEnd,
			Crop:      decisions[i],
			SourceW:   sources[i][0],
			SourceH:   sources[i][1],
			TargetW:   opts.TargetW,
			TargetH:   opts.TargetH,
			Mode:      mode,
		})
	}

	// A single clip compiles to one transform node and nothing else.
	if len(tl.Clips) == 1 {
		return graph, nil
	}

	for i := 1; i < len(tl.Clips); i++ {
		clip := tl.Clips[i]
		if !clip.Transition.Blends() {
			graph.Boundaries = append(graph.Boundaries, Boundary{})
			continue
		}
		graph.Boundaries = append(graph.Boundaries, Boundary{
			Transition: &TransitionNode{
				Kind:     clip.Transition,
				Duration: clip.TransitionDuration,
				// The timeline already resolved where the incoming
				// clip starts in the composed output.
				Offset: clip.StartOffset,
			},
		})
	}

	return graph, nil
}

// StripTransitions returns a copy of the graph with every boundary reduced to
// a plain concatenation. The plain-concat fallback strategy uses this when a
// transition-bearing encode keeps failing.
func (g Graph) StripTransitions() Graph {
	clone := g
	clone.Boundaries = make([]Boundary, len(g.Boundaries))
	clone.Transforms = append([]TransformNode(nil), g.Transforms...)
	return clone
}

// WithoutAudio returns a copy of the graph with audio disabled.
func (g Graph) WithoutAudio() Graph {
	clone := g
	clone.WithAudio = false
	clone.Transforms = append([]TransformNode(nil), g.Transforms...)
	clone.Boundaries = append([]Boundary(nil), g.Boundaries...)
	return clone
}
