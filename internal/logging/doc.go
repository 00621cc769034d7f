// Package logging assembles structured slog loggers and formatting helpers used
// across dfsorter.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing. Console output colours level labels only when the writer
// is a terminal. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
package logging
