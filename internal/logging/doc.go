// Package logging constructs the slog loggers used across curator and
// provides attribute helpers so call sites stay terse.
//
// Two output formats exist: "console" writes human-oriented key=value lines,
// "json" writes machine-parseable records. Both are selected through the
// [logging] config section. NewNop returns a discard logger for tests and
// optional dependencies.
package logging
