package render

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"clipforge/internal/assets"
	"clipforge/internal/config"
	"clipforge/internal/crop"
	"clipforge/internal/encode"
	"clipforge/internal/filtergraph"
	"clipforge/internal/format"
	"clipforge/internal/joblog"
	"clipforge/internal/logging"
	"clipforge/internal/preflight"
	"clipforge/internal/quality"
	"clipforge/internal/services"
	"clipforge/internal/thumbnail"
	"clipforge/internal/timeline"
)

// Renderer composes the full pipeline: resolve sources, build the timeline,
// plan crops, compile the filter graph, and hand the job to the encode
// orchestrator. Requests are validated and the host checked before any
// subprocess is spawned.
type Renderer struct {
	cfg          *config.Config
	resolver     assets.Resolver
	orchestrator *encode.Orchestrator
	history      *joblog.Store
	logger       *slog.Logger
}

// New wires a renderer. The history store may be nil to disable persistence;
// a nil resolver defaults to local filesystem resolution.
func New(cfg *config.Config, resolver assets.Resolver, orchestrator *encode.Orchestrator, history *joblog.Store, logger *slog.Logger) *Renderer {
	if resolver == nil {
		resolver = assets.LocalResolver{FFprobeBinary: cfg.FFprobeBinary()}
	}
	if orchestrator == nil {
		orchestrator = encode.NewOrchestrator(cfg, nil, nil, logger)
	}
	return &Renderer{
		cfg:          cfg,
		resolver:     resolver,
		orchestrator: orchestrator,
		history:      history,
		logger:       logging.NewComponentLogger(logger, "render"),
	}
}

// Render executes one request to completion. Validation and setup problems
// return an error; encode failures are reported inside the Result.
func (r *Renderer) Render(ctx context.Context, req Request) (encode.Result, error) {
	req.normalize()
	if err := req.validate(); err != nil {
		return encode.Result{}, err
	}

	output, err := format.Lookup(req.Format)
	if err != nil {
		return encode.Result{}, err
	}

	if err := r.checkHost(); err != nil {
		return encode.Result{}, err
	}

	jobID := uuid.NewString()
	ctx = services.WithJobID(ctx, jobID)
	r.logger.InfoContext(ctx, "render requested", logging.Args(
		logging.String(logging.FieldPreset, output.Key),
		logging.Int("clips", len(req.Clips)),
		logging.Int("quality", req.Quality),
	)...)

	sources, err := r.resolveSources(ctx, req.Clips)
	if err != nil {
		return encode.Result{}, err
	}

	tl, err := r.buildTimeline(req.Clips, sources)
	if err != nil {
		return encode.Result{}, err
	}
	if req.MaxDuration > 0 && tl.Duration > req.MaxDuration {
		return encode.Result{}, services.Wrap(services.ErrValidation, "render", "validate",
			fmt.Sprintf("composition runs %.2fs, limit is %.2fs", tl.Duration, req.MaxDuration), nil)
	}

	graph, err := r.compileGraph(req, output, tl, sources)
	if err != nil {
		return encode.Result{}, err
	}

	outputBase := strings.TrimSpace(req.OutputName)
	if outputBase == "" {
		outputBase = "render-" + jobID
	}

	job := encode.Job{
		ID:         jobID,
		Sources:    sourcePaths(sources),
		Graph:      graph,
		OutputBase: outputBase,
	}
	result := r.orchestrator.Execute(ctx, job)

	if result.Succeeded() && r.cfg.Thumbnail.Enabled {
		result.ThumbnailPath = r.grabThumbnail(ctx, result)
	}
	r.recordHistory(ctx, jobID, req, output.Key, result)
	return result, nil
}

// checkHost runs the preflight checks so a doomed render fails before any
// encoder process starts.
func (r *Renderer) checkHost() error {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return services.Wrap(services.ErrConfiguration, "render", "preflight", "", err)
	}
	for _, check := range preflight.RunAll(r.cfg) {
		if !check.Passed {
			return services.Wrap(services.ErrConfiguration, "render", "preflight",
				fmt.Sprintf("%s: %s", check.Name, check.Detail), nil)
		}
	}
	return nil
}

func (r *Renderer) resolveSources(ctx context.Context, clips []Clip) ([]assets.Source, error) {
	sources := make([]assets.Source, 0, len(clips))
	for i, clip := range clips {
		source, err := r.resolver.Resolve(ctx, clip.Source)
		if err != nil {
			return nil, fmt.Errorf("clip %d: %w", i+1, err)
		}
		sources = append(sources, source)
	}
	return sources, nil
}

func (r *Renderer) buildTimeline(clips []Clip, sources []assets.Source) (timeline.Timeline, error) {
	specs := make([]timeline.ClipSpec, 0, len(clips))
	durations := make([]float64, 0, len(clips))
	for i, clip := range clips {
		specs = append(specs, timeline.ClipSpec{
			Source:             clip.Source,
			TrimStart:          clip.TrimStart,
			TrimEnd:            clip.TrimEnd,
			Transition:         timeline.TransitionType(strings.ToLower(strings.TrimSpace(clip.Transition))),
			TransitionDuration: clip.TransitionDuration,
		})
		durations = append(durations, sources[i].Duration)
	}
	builder := timeline.NewBuilder(r.cfg.Timeline.MaxClips, r.cfg.Timeline.TransitionEpsilon)
	return builder.Build(specs, durations)
}

func (r *Renderer) compileGraph(req Request, output format.Output, tl timeline.Timeline, sources []assets.Source) (filtergraph.Graph, error) {
	mode := filtergraph.ScaleMode(req.ScaleMode)
	decisions := make([]crop.Decision, len(tl.Clips))
	dims := make([][2]int, len(tl.Clips))
	withAudio := true
	for i, source := range sources {
		dims[i] = [2]int{source.Width, source.Height}
		if mode == filtergraph.ScaleCrop {
			decisions[i] = crop.Compute(source.Width, source.Height, output.Width, output.Height, req.FocusX, req.FocusY)
		}
		if !source.HasAudio {
			// Any silent clip silences the whole composition; a concat
			// with a missing audio stream cannot be expressed.
			withAudio = false
		}
	}

	mapper := quality.NewMapper(r.cfg.Encode.CRFMin, r.cfg.Encode.CRFMax)
	return filtergraph.Compile(tl, decisions, dims, filtergraph.Options{
		TargetW:   output.Width,
		TargetH:   output.Height,
		CRF:       mapper.CRF(req.Quality),
		Mode:      mode,
		WithAudio: withAudio,
	})
}

// grabThumbnail extracts a preview frame next to the artifact. Extraction is
// best effort and never invalidates the render result.
func (r *Renderer) grabThumbnail(ctx context.Context, result encode.Result) string {
	thumbPath := strings.TrimSuffix(result.OutputPath, filepath.Ext(result.OutputPath)) + ".jpg"
	err := thumbnail.Extract(ctx, r.cfg.FFmpegBinary(), result.OutputPath, thumbPath, thumbnail.Options{
		OffsetSeconds: r.cfg.Thumbnail.OffsetSeconds,
		Duration:      result.Duration,
	})
	if err != nil {
		r.logger.WarnContext(ctx, "thumbnail extraction failed", logging.Args(logging.Error(err))...)
		return ""
	}
	return thumbPath
}

func (r *Renderer) recordHistory(ctx context.Context, jobID string, req Request, formatKey string, result encode.Result) {
	if r.history == nil {
		return
	}
	entry := joblog.Entry{
		ID:           jobID,
		Status:       result.Status,
		Format:       formatKey,
		Quality:      req.Quality,
		ClipCount:    len(req.Clips),
		OutputPath:   result.OutputPath,
		Width:        result.Width,
		Height:       result.Height,
		Duration:     result.Duration,
		FileSize:     result.FileSize,
		Attempts:     result.Attempts,
		Strategy:     result.Strategy,
		Retryable:    result.Retryable,
		ErrorMessage: result.ErrorMessage,
	}
	if err := r.history.Record(ctx, entry); err != nil {
		r.logger.WarnContext(ctx, "job history write failed", logging.Args(logging.Error(err))...)
	}
}

func sourcePaths(sources []assets.Source) []string {
	paths := make([]string, 0, len(sources))
	for _, source := range sources {
		paths = append(paths, source.Path)
	}
	return paths
}
