// Package timeline validates clip lists and resolves them into a playable
// timeline.
//
// The builder computes each clip's effective duration from its trims, clamps
// transition overlaps so adjacent clips are never fully consumed, and assigns
// cumulative start offsets. The composed duration follows the law
// total = sum(effective durations) - sum(blending transition durations).
//
// All arithmetic happens here, before any encoder syntax exists, so offsets
// and durations are testable in isolation.
package timeline
