// Package config loads and validates mediareel configuration.
//
// Configuration lives in a TOML file; Load resolves the file location,
// applies repository defaults, expands paths, and validates the result.
// Command-line flags override individual fields after loading.
package config
