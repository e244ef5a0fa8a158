// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for the logging patterns used throughout the engine:
//
//   - JSON and text output formats
//   - Request ID propagation
//   - Context-aware logging
//   - Log level from LOG_LEVEL
package logging
