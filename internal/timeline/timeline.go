package timeline

import "fmt"

// TransitionType identifies how one clip hands over to the next.
type TransitionType string

const (
	TransitionCut           TransitionType = "cut"
	TransitionFade          TransitionType = "fade"
	TransitionCrossdissolve TransitionType = "crossdissolve"
)

// Known reports whether the transition type is a supported value. The empty
// string is accepted and treated as a cut.
func (t TransitionType) Known() bool {
	switch t {
	case "", TransitionCut, TransitionFade, TransitionCrossdissolve:
		return true
	default:
		return false
	}
}

// Blends reports whether the transition overlaps adjacent clips in time.
func (t TransitionType) Blends() bool {
	return t == TransitionFade || t == TransitionCrossdissolve
}

// ClipSpec describes one requested clip. Source is an opaque reference the
// asset store resolves; TrimEnd of zero means "end of source".
type ClipSpec struct {
	Source             string
	TrimStart          float64
	TrimEnd            float64
	Transition         TransitionType
	TransitionDuration float64
}

// Clip is a resolved clip inside a Timeline.
type Clip struct {
	Source         string
	SourceDuration float64
	TrimStart      float64
	TrimEnd        float64
	// EffectiveDuration is the clip's visible length after trims.
	EffectiveDuration float64
	// Transition describes how this clip enters the composition. It is
	// always a cut for the first clip.
	Transition TransitionType
	// TransitionDuration is the resolved overlap in seconds, zero for cuts.
	TransitionDuration float64
	// StartOffset is the absolute time in the composed output where this
	// clip's visible contribution begins.
	StartOffset float64
}

// Timeline is an ordered sequence of resolved clips plus the composed
// duration.
type Timeline struct {
	Clips    []Clip
	Duration float64
}

// SingleClip reports whether the timeline degenerates to one clip with no
// transitions.
func (t Timeline) SingleClip() bool {
	return len(t.Clips) == 1
}

func (t Timeline) String() string {
	return fmt.Sprintf("timeline: %d clips, %.2fs", len(t.Clips), t.Duration)
}
