// Package logging builds the slog loggers used across mediareel.
//
// Two output formats are supported: a compact console format for interactive
// use and JSON for log files and machine consumption. Helpers in attrs.go
// keep attribute construction consistent so call sites do not import log/slog
// directly.
package logging
