// Package config loads, normalizes, and validates Clipforge configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// CLIPFORGE_FFMPEG. The Config type centralizes every knob the CLI and the
// composition engine need, from staging directories to the encode timeout and
// CRF bounds.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
