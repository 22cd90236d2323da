// Package encode runs compiled filter graphs through the host encoder. The
// orchestrator bounds concurrency and wall-clock time per attempt, walks a
// fixed fallback ladder when attempts fail, and promotes artifacts from the
// staging directory to the output directory only after the produced file has
// been verified as real media.
package encode
