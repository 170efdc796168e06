// Package logging constructs the slog loggers used across trajview.
//
// Two output formats are supported: a console handler that prints compact
// key=value lines for interactive runs, and the standard JSON handler for
// machine consumption. Components obtain child loggers through WithComponent
// so every record carries its originating stage.
package logging
