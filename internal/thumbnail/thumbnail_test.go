package thumbnail

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"clipforge/internal/testsupport"
)

func TestExtractWritesFrame(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := testsupport.FakeFFmpeg(t, dir)
	out := filepath.Join(dir, "thumb.jpg")

	err := Extract(context.Background(), ffmpeg, "/video.mp4", out, Options{OffsetSeconds: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, statErr := os.Stat(out)
	if statErr != nil || info.Size() == 0 {
		t.Fatalf("thumbnail missing or empty: %v", statErr)
	}
}

func TestExtractRemovesEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	ffmpeg := testsupport.FakeFFmpegEmpty(t, dir)
	out := filepath.Join(dir, "thumb.jpg")

	if err := Extract(context.Background(), ffmpeg, "/video.mp4", out, Options{}); err == nil {
		t.Fatal("expected error for missing frame")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("empty thumbnail left behind: %v", err)
	}
}

func TestExtractClampsOffset(t *testing.T) {
	var gotArgs []string
	runCommand = func(_ context.Context, _ string, args []string) ([]byte, error) {
		gotArgs = args
		out := args[len(args)-1]
		return nil, os.WriteFile(out, []byte("jpg"), 0o644)
	}
	t.Cleanup(func() { runCommand = defaultRunCommand })

	out := filepath.Join(t.TempDir(), "thumb.jpg")
	err := Extract(context.Background(), "ffmpeg", "/video.mp4", out, Options{OffsetSeconds: 30, Duration: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	seek := ""
	for i, a := range gotArgs {
		if a == "-ss" && i+1 < len(gotArgs) {
			seek = gotArgs[i+1]
		}
	}
	value, parseErr := strconv.ParseFloat(seek, 64)
	if parseErr != nil || value != 5 {
		t.Fatalf("expected seek clamped to midpoint 5, got %q", seek)
	}
}
