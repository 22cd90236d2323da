// Package logging wires slog handlers, attribute helpers, and standardized
// field keys for the composition pipeline.
//
// Handlers come in two formats: a compact console layout for interactive use
// (colorized only when every sink is a terminal) and a JSON layout for log
// aggregation. Context-carried job and stage identifiers are surfaced through
// WithContext so every stage logs with consistent correlation fields.
package logging
