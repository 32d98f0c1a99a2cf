// Package config loads, normalizes, and validates picdex configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Obtain settings through this package so
// downstream code receives sanitized absolute paths, canonical log formats,
// and clear validation errors.
package config
