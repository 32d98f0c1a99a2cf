// Package logging builds the slog loggers used across picdex.
//
// Two output formats exist: a one-line console format for terminals and JSON
// for everything else; "auto" picks between them based on whether the output
// is a TTY. Attr helpers and standardized field names keep structured keys
// consistent between components.
package logging
