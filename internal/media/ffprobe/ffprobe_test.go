package ffprobe

import (
	"context"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video", CodecName: "h264", Width: 1080, Height: 1920},
			{CodecType: "audio"},
			{CodecType: "audio"},
		},
		Format: Format{
			Duration: "12.5",
			Size:     "1000",
		},
	}
	stream, ok := result.VideoStream()
	if !ok || stream.CodecName != "h264" {
		t.Fatalf("unexpected video stream: %#v ok=%v", stream, ok)
	}
	width, height := result.Dimensions()
	if width != 1080 || height != 1920 {
		t.Fatalf("unexpected dimensions: %dx%d", width, height)
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 12.5 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{Duration: "bad", Size: "-1"},
	}
	if result.DurationSeconds() != 0 {
		t.Fatalf("expected duration 0, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if _, ok := result.VideoStream(); ok {
		t.Fatal("expected no video stream")
	}
	if w, h := result.Dimensions(); w != 0 || h != 0 {
		t.Fatalf("expected zero dimensions, got %dx%d", w, h)
	}
}

func TestInspectRejectsEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
