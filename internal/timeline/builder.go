package timeline

import (
	"fmt"

	"clipforge/internal/services"
)

const (
	// DefaultMaxClips bounds the clip list length.
	DefaultMaxClips = 20
	// DefaultEpsilon is the safety margin subtracted from adjacent clip
	// durations when clamping transition overlaps, and the floor for any
	// resolved transition duration.
	DefaultEpsilon = 0.1
)

// Builder validates clip specs and resolves them into a Timeline.
type Builder struct {
	maxClips int
	epsilon  float64
}

// NewBuilder constructs a Builder. Non-positive arguments fall back to the
// package defaults.
func NewBuilder(maxClips int, epsilon float64) Builder {
	if maxClips <= 0 {
		maxClips = DefaultMaxClips
	}
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return Builder{maxClips: maxClips, epsilon: epsilon}
}

// Build resolves the clip list into a Timeline. sourceDurations carries the
// known duration of each clip's source, index-aligned with specs. Build fails
// before any side effects: either the whole timeline is valid or nothing is.
func (b Builder) Build(specs []ClipSpec, sourceDurations []float64) (Timeline, error) {
	if err := b.validate(specs, sourceDurations); err != nil {
		return Timeline{}, err
	}

	clips := make([]Clip, len(specs))
	for i, spec := range specs {
		sourceDuration := sourceDurations[i]
		end := spec.TrimEnd
		if end <= 0 || end > sourceDuration {
			end = sourceDuration
		}
		effective := end - spec.TrimStart
		if effective < 0 {
			effective = 0
		}
		clips[i] = Clip{
			Source:            spec.Source,
			SourceDuration:    sourceDuration,
			TrimStart:         spec.TrimStart,
			TrimEnd:           end,
			EffectiveDuration: effective,
			Transition:        TransitionCut,
		}
	}

	// Resolve transitions left to right. The first clip never has one; cut
	// boundaries contribute zero overlap to the offset arithmetic.
	for i := 1; i < len(clips); i++ {
		spec := specs[i]
		transition := spec.Transition
		if transition == "" {
			transition = TransitionCut
		}
		clips[i].Transition = transition
		if !transition.Blends() {
			continue
		}
		clips[i].TransitionDuration = b.clampTransition(spec.TransitionDuration, clips[i-1].EffectiveDuration, clips[i].EffectiveDuration)
	}

	total := 0.0
	for i := range clips {
		if i == 0 {
			clips[i].StartOffset = 0
		} else {
			clips[i].StartOffset = clips[i-1].StartOffset + clips[i-1].EffectiveDuration - clips[i].TransitionDuration
		}
		total += clips[i].EffectiveDuration - clips[i].TransitionDuration
	}

	return Timeline{Clips: clips, Duration: total}, nil
}

// clampTransition bounds a requested overlap to what the adjacent clips can
// absorb, leaving an epsilon margin so neither clip is fully consumed. The
// result never drops below epsilon.
func (b Builder) clampTransition(requested, prevDuration, thisDuration float64) float64 {
	limit := prevDuration
	if thisDuration < limit {
		limit = thisDuration
	}
	limit -= b.epsilon

	duration := requested
	if duration > limit {
		duration = limit
	}
	if duration < b.epsilon {
		duration = b.epsilon
	}
	return duration
}

func (b Builder) validate(specs []ClipSpec, sourceDurations []float64) error {
	if len(specs) == 0 {
		return services.Wrap(services.ErrValidation, "timeline", "build", "clip list is empty", nil)
	}
	if len(specs) > b.maxClips {
		return services.Wrap(services.ErrValidation, "timeline", "build",
			fmt.Sprintf("clip count %d exceeds maximum %d", len(specs), b.maxClips), nil)
	}
	if len(sourceDurations) != len(specs) {
		return services.Wrap(services.ErrValidation, "timeline", "build",
			fmt.Sprintf("have %d source durations for %d clips", len(sourceDurations), len(specs)), nil)
	}
	for i, spec := range specs {
		if spec.Source == "" {
			return services.Wrap(services.ErrValidation, "timeline", "build",
				fmt.Sprintf("clip %d has no source reference", i), nil)
		}
		if spec.TrimStart < 0 {
			return services.Wrap(services.ErrValidation, "timeline", "build",
				fmt.Sprintf("clip %d trim start %.3f is negative", i, spec.TrimStart), nil)
		}
		if spec.TrimEnd > 0 && spec.TrimEnd <= spec.TrimStart {
			return services.Wrap(services.ErrValidation, "timeline", "build",
				fmt.Sprintf("clip %d trim end %.3f not after trim start %.3f", i, spec.TrimEnd, spec.TrimStart), nil)
		}
		if !spec.Transition.Known() {
			return services.Wrap(services.ErrValidation, "timeline", "build",
				fmt.Sprintf("clip %d has unknown transition %q", i, spec.Transition), nil)
		}
		if spec.TransitionDuration < 0 {
			return services.Wrap(services.ErrValidation, "timeline", "build",
				fmt.Sprintf("clip %d transition duration %.3f is negative", i, spec.TransitionDuration), nil)
		}
		if sourceDurations[i] <= 0 {
			return services.Wrap(services.ErrValidation, "timeline", "build",
				fmt.Sprintf("clip %d source duration %.3f is not positive", i, sourceDurations[i]), nil)
		}
		if spec.TrimStart >= sourceDurations[i] {
			return services.Wrap(services.ErrValidation, "timeline", "build",
				fmt.Sprintf("clip %d trim start %.3f beyond source duration %.3f", i, spec.TrimStart, sourceDurations[i]), nil)
		}
	}
	return nil
}
