// Package filtergraph compiles a resolved timeline into a typed
// transformation graph and serializes it to encoder syntax.
//
// The graph is a value object: transform nodes normalize each clip (trim,
// crop or pad, scale, frame rate, pixel format), boundaries join adjacent
// clips either by plain concatenation or by a timed blend carrying the
// timeline's cumulative offset. Node wiring and offset arithmetic are
// testable without touching a subprocess; Serialize is the one place ffmpeg
// filter_complex text is produced.
package filtergraph
