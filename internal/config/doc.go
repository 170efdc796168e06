// Package config loads, normalizes, and validates trajview configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI and pipeline need: scratch/output directories, frame dimensions
// and view angles, video frame rate, and external encoder binaries.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
