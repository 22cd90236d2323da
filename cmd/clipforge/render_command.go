package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"clipforge/internal/assets"
	"clipforge/internal/joblog"
	"clipforge/internal/render"
)

// planFile is the TOML shape of a multi-clip composition plan.
type planFile struct {
	Format      string     `toml:"format"`
	Quality     int        `toml:"quality"`
	FocusX      *float64   `toml:"focus_x"`
	FocusY      *float64   `toml:"focus_y"`
	ScaleMode   string     `toml:"scale_mode"`
	MaxDuration float64    `toml:"max_duration"`
	Output      string     `toml:"output"`
	Clips       []planClip `toml:"clips"`
}

type planClip struct {
	Source             string  `toml:"source"`
	TrimStart          float64 `toml:"trim_start"`
	TrimEnd            float64 `toml:"trim_end"`
	Transition         string  `toml:"transition"`
	TransitionDuration float64 `toml:"transition_duration"`
}

func newRenderCommand(ctx *commandContext) *cobra.Command {
	var (
		formatFlag      string
		qualityFlag     int
		focusXFlag      float64
		focusYFlag      float64
		scaleModeFlag   string
		maxDurationFlag float64
		outputFlag      string
		planFlag        string
	)

	cmd := &cobra.Command{
		Use:   "render [clip...]",
		Short: "Compose clips into a platform-ready export",
		Long: `Compose one or more clips into a single export.

Clips given as arguments are joined with hard cuts. Trims and transitions
need a TOML plan file passed with --plan:

    [[clips]]
    source = "intro.mp4"
    trim_end = 4.0

    [[clips]]
    source = "main.mp4"
    transition = "fade"
    transition_duration = 0.8`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			req := render.NewRequest(formatFlag, args...)
			req.Quality = qualityFlag
			req.FocusX = focusXFlag
			req.FocusY = focusYFlag
			req.ScaleMode = scaleModeFlag
			req.MaxDuration = maxDurationFlag
			req.OutputName = strings.TrimSpace(outputFlag)

			baseDir := ""
			if planFlag != "" {
				plan, planDir, err := loadPlan(planFlag)
				if err != nil {
					return err
				}
				baseDir = planDir
				applyPlan(&req, plan, cmd)
			}
			if len(req.Clips) == 0 {
				return errors.New("no clips: pass clip paths or --plan")
			}

			logger := ctx.ensureLogger()
			var history *joblog.Store
			if cfg.JobLog.Enabled {
				history, err = joblog.Open(cfg)
				if err != nil {
					return fmt.Errorf("open job history: %w", err)
				}
				defer history.Close()
			}

			resolver := assets.LocalResolver{BaseDir: baseDir, FFprobeBinary: cfg.FFprobeBinary()}
			renderer := render.New(cfg, resolver, nil, history, logger)

			result, err := renderer.Render(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderResultTable(result))
			if !result.Succeeded() {
				return fmt.Errorf("render failed after %d attempt(s): %s", result.Attempts, result.ErrorMessage)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "vertical", "Output preset (see 'clipforge formats')")
	cmd.Flags().IntVarP(&qualityFlag, "quality", "q", render.DefaultQuality, "Quality from 1 (smallest) to 100 (best)")
	cmd.Flags().Float64Var(&focusXFlag, "focus-x", render.DefaultFocus, "Horizontal crop focus, 0 (left) to 100 (right)")
	cmd.Flags().Float64Var(&focusYFlag, "focus-y", render.DefaultFocus, "Vertical crop focus, 0 (top) to 100 (bottom)")
	cmd.Flags().StringVar(&scaleModeFlag, "scale-mode", "crop", "Fit strategy: crop or pad")
	cmd.Flags().Float64Var(&maxDurationFlag, "max-duration", 0, "Reject compositions longer than this many seconds")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Artifact base name (without extension)")
	cmd.Flags().StringVarP(&planFlag, "plan", "p", "", "TOML plan file describing clips, trims, and transitions")
	return cmd
}

func loadPlan(path string) (planFile, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return planFile{}, "", fmt.Errorf("read plan: %w", err)
	}
	var plan planFile
	if err := toml.Unmarshal(data, &plan); err != nil {
		return planFile{}, "", fmt.Errorf("parse plan %s: %w", path, err)
	}
	planDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return planFile{}, "", err
	}
	return plan, planDir, nil
}

// applyPlan merges the plan into the request. Explicitly set flags win over
// plan values; plan clips replace positional arguments entirely.
func applyPlan(req *render.Request, plan planFile, cmd *cobra.Command) {
	if len(plan.Clips) > 0 {
		req.Clips = req.Clips[:0]
		for _, clip := range plan.Clips {
			req.Clips = append(req.Clips, render.Clip{
				Source:             clip.Source,
				TrimStart:          clip.TrimStart,
				TrimEnd:            clip.TrimEnd,
				Transition:         clip.Transition,
				TransitionDuration: clip.TransitionDuration,
			})
		}
	}
	if plan.Format != "" && !cmd.Flags().Changed("format") {
		req.Format = plan.Format
	}
	if plan.Quality != 0 && !cmd.Flags().Changed("quality") {
		req.Quality = plan.Quality
	}
	if plan.FocusX != nil && !cmd.Flags().Changed("focus-x") {
		req.FocusX = *plan.FocusX
	}
	if plan.FocusY != nil && !cmd.Flags().Changed("focus-y") {
		req.FocusY = *plan.FocusY
	}
	if plan.ScaleMode != "" && !cmd.Flags().Changed("scale-mode") {
		req.ScaleMode = plan.ScaleMode
	}
	if plan.MaxDuration != 0 && !cmd.Flags().Changed("max-duration") {
		req.MaxDuration = plan.MaxDuration
	}
	if plan.Output != "" && !cmd.Flags().Changed("output") {
		req.OutputName = plan.Output
	}
}
