package encode

import (
	"strings"
	"unicode/utf8"

	"clipforge/internal/filtergraph"
)

// Status is the terminal state of an encode job. Execute runs a job
// synchronously, so only the two final states are observable.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Job carries everything one encode needs: the compiled graph, the resolved
// source path per graph input, and where the final artifact should land.
// Jobs are created per request and discarded once a Result exists.
type Job struct {
	ID string
	// Sources is index-aligned with the graph's transform inputs.
	Sources []string
	Graph   filtergraph.Graph
	// OutputBase names the final artifact (without extension) inside the
	// orchestrator's output directory.
	OutputBase string
}

// Result is the normalized outcome of an encode job. The caller owns it once
// returned; the orchestrator holds no reference afterwards.
type Result struct {
	Status     Status
	OutputPath string
	FileSize   int64
	Width      int
	Height     int
	Duration   float64
	// ThumbnailPath is set when the best-effort preview grab succeeded.
	ThumbnailPath string
	// Attempts counts encode attempts including the primary one.
	Attempts int
	// Strategy names the fallback that produced the output, empty for the
	// primary attempt.
	Strategy string
	// Retryable reports whether resubmitting the same job could help.
	// Exhausted fallback chains and validation failures are final.
	Retryable bool
	// ErrorMessage holds the last attempt's diagnostic text, bounded in
	// length, when Status is failed.
	ErrorMessage string
}

// Succeeded reports whether the job produced a usable artifact.
func (r Result) Succeeded() bool {
	return r.Status == StatusSucceeded
}

// truncateMessage bounds diagnostic text, keeping the tail where encoder
// errors accumulate. The cut never splits a multi-byte rune.
func truncateMessage(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	tail := text[len(text)-limit:]
	for len(tail) > 0 && !utf8.RuneStart(tail[0]) {
		tail = tail[1:]
	}
	return "…" + tail
}
