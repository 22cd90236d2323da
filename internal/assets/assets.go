package assets

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"clipforge/internal/media/ffprobe"
	"clipforge/internal/services"
)

// Source describes a resolved clip source: where it lives on disk and the
// probed properties the timeline and crop planners need.
type Source struct {
	Path string
	// Duration is the full source duration in seconds.
	Duration float64
	Width    int
	Height   int
	// HasAudio reports whether at least one audio stream is present.
	HasAudio bool
}

// Resolver turns a clip reference from a render request into a probed Source.
type Resolver interface {
	Resolve(ctx context.Context, ref string) (Source, error)
}

// LocalResolver resolves clip references as filesystem paths, optionally
// relative to a base directory, and probes each file once.
type LocalResolver struct {
	// BaseDir anchors relative references. Empty means the process working
	// directory.
	BaseDir string
	// FFprobeBinary is the prober executable to invoke.
	FFprobeBinary string
}

// Resolve locates and probes the referenced file. A reference that does not
// exist or holds no video stream is a validation failure, not a probe error.
func (r LocalResolver) Resolve(ctx context.Context, ref string) (Source, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Source{}, services.Wrap(services.ErrValidation, "assets", "resolve", "empty clip reference", nil)
	}

	path := ref
	if !filepath.IsAbs(path) && r.BaseDir != "" {
		path = filepath.Join(r.BaseDir, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Source{}, services.Wrap(services.ErrNotFound, "assets", "resolve", "clip source "+ref, err)
		}
		return Source{}, services.Wrap(services.ErrTransient, "assets", "resolve", "stat clip source", err)
	}
	if info.IsDir() {
		return Source{}, services.Wrap(services.ErrValidation, "assets", "resolve", "clip reference is a directory: "+ref, nil)
	}

	binary := r.FFprobeBinary
	if binary == "" {
		binary = "ffprobe"
	}
	probed, err := ffprobe.Inspect(ctx, binary, path)
	if err != nil {
		return Source{}, services.Wrap(services.ErrValidation, "assets", "probe", "unreadable media: "+ref, err)
	}

	width, height := probed.Dimensions()
	if width == 0 || height == 0 {
		return Source{}, services.Wrap(services.ErrValidation, "assets", "probe", "no video stream: "+ref, nil)
	}
	duration := probed.DurationSeconds()
	if duration <= 0 {
		return Source{}, services.Wrap(services.ErrValidation, "assets", "probe", "zero-length source: "+ref, nil)
	}

	return Source{
		Path:     path,
		Duration: duration,
		Width:    width,
		Height:   height,
		HasAudio: probed.AudioStreamCount() > 0,
	}, nil
}
