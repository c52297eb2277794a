// Package config loads, normalizes, and validates gfyup configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GFYUP_API_BASE_URL and GFYUP_FFMPEG. The Config type centralizes every knob
// the CLI needs so the remote endpoints, encoder binary, and poll limits are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
