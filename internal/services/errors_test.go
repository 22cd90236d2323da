package services_test

import (
	"errors"
	"strings"
	"testing"

	"clipforge/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrEncodeFailed, "encode", "mux", "failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrEncodeFailed) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"encode", "mux", "failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "encode", "cleanup", "partial file removal", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient marker for nil input, got %v", err)
	}
}

func TestRetryableClassification(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"validation", services.Wrap(services.ErrValidation, "timeline", "build", "too many clips", nil), false},
		{"encoder unavailable", services.Wrap(services.ErrEncoderUnavailable, "encode", "preflight", "ffmpeg missing", nil), false},
		{"empty output", services.Wrap(services.ErrEmptyOutput, "encode", "verify", "zero-byte file", nil), false},
		{"timeout", services.Wrap(services.ErrTimeout, "encode", "run", "deadline exceeded", nil), true},
		{"encode failed", services.Wrap(services.ErrEncodeFailed, "encode", "run", "exit status 1", errors.New("exit status 1")), true},
		{"transient", services.Wrap(services.ErrTransient, "encode", "stage", "rename", errors.New("io")), true},
	}
	for _, tc := range cases {
		if got := services.Retryable(tc.err); got != tc.retryable {
			t.Fatalf("%s: Retryable = %v, want %v", tc.name, got, tc.retryable)
		}
	}
}
