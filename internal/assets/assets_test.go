package assets

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"clipforge/internal/services"
	"clipforge/internal/testsupport"
)

func TestLocalResolverProbesSource(t *testing.T) {
	dir := t.TempDir()
	ffprobe := testsupport.FakeFFprobe(t, dir, 1920, 1080, 42.5)
	if err := os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("media"), 0o644); err != nil {
		t.Fatal(err)
	}

	resolver := LocalResolver{BaseDir: dir, FFprobeBinary: ffprobe}
	source, err := resolver.Resolve(context.Background(), "clip.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if source.Path != filepath.Join(dir, "clip.mp4") {
		t.Errorf("path: got %q", source.Path)
	}
	if source.Width != 1920 || source.Height != 1080 {
		t.Errorf("dimensions: got %dx%d", source.Width, source.Height)
	}
	if source.Duration != 42.5 {
		t.Errorf("duration: got %v", source.Duration)
	}
}

func TestLocalResolverMissingSource(t *testing.T) {
	dir := t.TempDir()
	ffprobe := testsupport.FakeFFprobe(t, dir, 1920, 1080, 10)

	resolver := LocalResolver{BaseDir: dir, FFprobeBinary: ffprobe}
	_, err := resolver.Resolve(context.Background(), "missing.mp4")
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestLocalResolverEmptyReference(t *testing.T) {
	resolver := LocalResolver{}
	_, err := resolver.Resolve(context.Background(), "   ")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
