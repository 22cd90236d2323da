package render

import (
	"fmt"
	"strings"

	"clipforge/internal/filtergraph"
	"clipforge/internal/services"
)

// DefaultQuality is used when a request leaves the quality unset.
const DefaultQuality = 80

// DefaultFocus centers the crop window on both axes.
const DefaultFocus = 50.0

// Clip is one entry of a composition request, before source resolution.
type Clip struct {
	// Source references the clip's media, resolved by the configured
	// assets resolver.
	Source string
	// TrimStart and TrimEnd bound the used portion in source seconds.
	// A zero TrimEnd means the end of the source.
	TrimStart float64
	TrimEnd   float64
	// Transition names how this clip enters the composition: cut, fade,
	// or crossdissolve. Empty means cut. Ignored for the first clip.
	Transition string
	// TransitionDuration is the requested overlap in seconds.
	TransitionDuration float64
}

// Request describes one render job end to end.
type Request struct {
	Clips []Clip
	// Format selects the output preset by key.
	Format string
	// Quality spans 1 (smallest) to 100 (best). Zero selects DefaultQuality.
	Quality int
	// FocusX and FocusY position the crop window, 0 to 100 per axis.
	FocusX float64
	FocusY float64
	// ScaleMode is "crop" (default) or "pad".
	ScaleMode string
	// MaxDuration rejects compositions longer than this many seconds.
	// Zero disables the bound.
	MaxDuration float64
	// OutputName is the artifact base name without extension. Empty
	// derives a name from the job ID.
	OutputName string
}

// NewRequest returns a Request with centered focus and default quality for
// the given sources.
func NewRequest(format string, sources ...string) Request {
	clips := make([]Clip, 0, len(sources))
	for _, source := range sources {
		clips = append(clips, Clip{Source: source})
	}
	return Request{
		Clips:   clips,
		Format:  format,
		Quality: DefaultQuality,
		FocusX:  DefaultFocus,
		FocusY:  DefaultFocus,
	}
}

// normalize fills defaulted fields in place.
func (r *Request) normalize() {
	if r.Quality == 0 {
		r.Quality = DefaultQuality
	}
	if r.ScaleMode == "" {
		r.ScaleMode = string(filtergraph.ScaleCrop)
	}
	r.ScaleMode = strings.ToLower(strings.TrimSpace(r.ScaleMode))
	r.Format = strings.ToLower(strings.TrimSpace(r.Format))
}

// validate checks every request field that does not require probing sources.
// It runs before any subprocess is spawned.
func (r Request) validate() error {
	if len(r.Clips) == 0 {
		return services.Wrap(services.ErrValidation, "render", "validate", "request has no clips", nil)
	}
	if r.Quality < 1 || r.Quality > 100 {
		return services.Wrap(services.ErrValidation, "render", "validate",
			fmt.Sprintf("quality %d outside 1..100", r.Quality), nil)
	}
	if r.FocusX < 0 || r.FocusX > 100 || r.FocusY < 0 || r.FocusY > 100 {
		return services.Wrap(services.ErrValidation, "render", "validate",
			fmt.Sprintf("focus (%g, %g) outside 0..100", r.FocusX, r.FocusY), nil)
	}
	switch filtergraph.ScaleMode(r.ScaleMode) {
	case filtergraph.ScaleCrop, filtergraph.ScalePad:
	default:
		return services.Wrap(services.ErrValidation, "render", "validate",
			fmt.Sprintf("unknown scale mode %q", r.ScaleMode), nil)
	}
	if r.MaxDuration < 0 {
		return services.Wrap(services.ErrValidation, "render", "validate", "negative max duration", nil)
	}
	return nil
}
