// Package ffprobe provides a typed wrapper around ffprobe JSON output.
//
// This package has no clipforge-specific dependencies and could be extracted
// as a standalone library.
//
// Key types:
//   - Result: parsed ffprobe output containing streams and format metadata
//   - Stream: individual audio/video stream properties
//   - Format: container-level metadata (duration, size, format name)
//
// Primary entry point:
//   - Inspect: executes ffprobe and returns a parsed Result
//
// Helper methods on Result expose video dimensions, duration, and size in the
// forms the output descriptor needs.
package ffprobe
