// Package services defines shared utilities consumed by the composition
// pipeline stages and external tool integrations.
//
// Key responsibilities:
//   - Context helpers that stamp encode job identifiers and stage names for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that tag failures for
//     later classification, and the Retryable predicate the orchestrator
//     consults before advancing its fallback list.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability, retries) stays uniform across stages.
package services
