package encode

import (
	"strconv"

	"clipforge/internal/filtergraph"
)

// plan is one encode attempt's full parameter set. Fallback strategies derive
// new plans from the previous one; plans are values and never mutated in
// place.
type plan struct {
	Name string
	// Graph is the transformation graph for this attempt.
	Graph filtergraph.Graph
	// AudioCopy stream-copies source audio instead of routing it through
	// the filter graph. Only single-clip jobs qualify; the stream copy is
	// the fast path whose failures the force-reencode fallback absorbs.
	AudioCopy bool
}

// primaryPlan derives the first attempt from a compiled graph.
func primaryPlan(graph filtergraph.Graph) plan {
	return plan{
		Graph:     graph,
		AudioCopy: graph.WithAudio && graph.SingleClip(),
	}
}

// buildArgs serializes a plan into the encoder's argument vector.
func buildArgs(p plan, sources []string, outputPath string) []string {
	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	for _, source := range sources {
		args = append(args, "-i", source)
	}

	graph := p.Graph
	audioCopy := p.AudioCopy && graph.WithAudio && graph.SingleClip()
	if audioCopy {
		// Copied audio bypasses the filter graph entirely.
		graph = graph.WithoutAudio()
	}

	serialized := graph.Serialize()
	args = append(args, "-filter_complex", serialized.FilterComplex)
	args = append(args, "-map", "["+serialized.VideoLabel+"]")

	switch {
	case audioCopy:
		args = append(args, "-map", "0:a?", "-c:a", "copy", "-shortest")
	case graph.WithAudio:
		args = append(args, "-map", "["+serialized.AudioLabel+"]", "-c:a", "aac", "-b:a", "192k")
	default:
		args = append(args, "-an")
	}

	args = append(args,
		"-c:v", "libx264",
		"-crf", strconv.Itoa(p.Graph.CRF),
		"-preset", "medium",
		"-movflags", "+faststart",
	)
	args = append(args, outputPath)
	return args
}
