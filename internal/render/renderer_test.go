package render

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/assets"
	"clipforge/internal/config"
	"clipforge/internal/joblog"
	"clipforge/internal/logging"
	"clipforge/internal/services"
	"clipforge/internal/testsupport"
)

func renderConfig(t *testing.T, duration float64) (*config.Config, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	binDir := filepath.Join(base, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg.Tools.FFmpegBinary = testsupport.FakeFFmpeg(t, binDir)
	cfg.Tools.FFprobeBinary = testsupport.FakeFFprobe(t, binDir, 1920, 1080, duration)

	clipDir := filepath.Join(base, "clips")
	if err := os.MkdirAll(clipDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a.mp4", "b.mp4"} {
		if err := os.WriteFile(filepath.Join(clipDir, name), []byte("media"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return cfg, clipDir
}

func newRenderer(t *testing.T, cfg *config.Config, clipDir string, history *joblog.Store) *Renderer {
	t.Helper()
	resolver := assets.LocalResolver{BaseDir: clipDir, FFprobeBinary: cfg.FFprobeBinary()}
	return New(cfg, resolver, nil, history, logging.NewNop())
}

func TestRenderSingleClip(t *testing.T) {
	cfg, clipDir := renderConfig(t, 20)
	renderer := newRenderer(t, cfg, clipDir, nil)

	req := NewRequest("vertical", "a.mp4")
	req.OutputName = "short"

	result, err := renderer.Render(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("expected success, got %+v", result)
	}
	want := filepath.Join(cfg.Paths.OutputDir, "short.mp4")
	if result.OutputPath != want {
		t.Errorf("output path: got %q, want %q", result.OutputPath, want)
	}
	if _, statErr := os.Stat(result.OutputPath); statErr != nil {
		t.Errorf("artifact missing: %v", statErr)
	}
	if result.ThumbnailPath != "" {
		t.Errorf("thumbnails disabled, got %q", result.ThumbnailPath)
	}
}

func TestRenderMultiClipWithTransition(t *testing.T) {
	cfg, clipDir := renderConfig(t, 20)
	renderer := newRenderer(t, cfg, clipDir, nil)

	req := Request{
		Clips: []Clip{
			{Source: "a.mp4", TrimEnd: 8},
			{Source: "b.mp4", TrimEnd: 6, Transition: "fade", TransitionDuration: 1},
		},
		Format: "square",
		FocusX: DefaultFocus,
		FocusY: DefaultFocus,
	}

	result, err := renderer.Render(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Succeeded() {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Attempts != 1 {
		t.Errorf("expected single attempt, got %d", result.Attempts)
	}
}

func TestRenderValidatesBeforeProbing(t *testing.T) {
	cfg, clipDir := renderConfig(t, 20)
	renderer := newRenderer(t, cfg, clipDir, nil)

	cases := []struct {
		name string
		req  Request
	}{
		{"no clips", Request{Format: "vertical", Quality: 50, FocusX: 50, FocusY: 50}},
		{"quality too high", func() Request {
			r := NewRequest("vertical", "a.mp4")
			r.Quality = 101
			return r
		}()},
		{"focus out of range", func() Request {
			r := NewRequest("vertical", "a.mp4")
			r.FocusX = 150
			return r
		}()},
		{"bad scale mode", func() Request {
			r := NewRequest("vertical", "a.mp4")
			r.ScaleMode = "stretch"
			return r
		}()},
		{"unknown format", NewRequest("cinema", "a.mp4")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := renderer.Render(context.Background(), tc.req)
			if !errors.Is(err, services.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestRenderEnforcesMaxDuration(t *testing.T) {
	cfg, clipDir := renderConfig(t, 42.5)
	renderer := newRenderer(t, cfg, clipDir, nil)

	req := NewRequest("vertical", "a.mp4")
	req.MaxDuration = 30

	_, err := renderer.Render(context.Background(), req)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	entries, readErr := os.ReadDir(cfg.Paths.OutputDir)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if len(entries) != 0 {
		t.Error("no artifact should exist for a rejected request")
	}
}

func TestRenderWritesThumbnail(t *testing.T) {
	cfg, clipDir := renderConfig(t, 20)
	cfg.Thumbnail.Enabled = true
	renderer := newRenderer(t, cfg, clipDir, nil)

	req := NewRequest("portrait", "a.mp4")
	result, err := renderer.Render(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ThumbnailPath == "" {
		t.Fatal("expected thumbnail path")
	}
	if _, statErr := os.Stat(result.ThumbnailPath); statErr != nil {
		t.Errorf("thumbnail missing: %v", statErr)
	}
}

func TestRenderRecordsHistory(t *testing.T) {
	cfg, clipDir := renderConfig(t, 20)
	history, err := joblog.Open(cfg)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	defer history.Close()

	renderer := newRenderer(t, cfg, clipDir, history)
	if _, err := renderer.Render(context.Background(), NewRequest("vertical", "a.mp4")); err != nil {
		t.Fatalf("render: %v", err)
	}

	entries, err := history.List(context.Background(), 0)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	if entries[0].Format != "vertical" || entries[0].ClipCount != 1 {
		t.Errorf("entry mismatch: %+v", entries[0])
	}
}

func TestRenderMissingSource(t *testing.T) {
	cfg, clipDir := renderConfig(t, 20)
	renderer := newRenderer(t, cfg, clipDir, nil)

	_, err := renderer.Render(context.Background(), NewRequest("vertical", "missing.mp4"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
