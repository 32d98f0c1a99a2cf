// Package preflight provides readiness checks for the external binary and
// filesystem paths an ingest run depends on.
//
// The CLI runs Verify before any file is processed so that bad arguments,
// missing tools, or unusable directories abort with a setup error rather
// than part-way through a multi-thousand-file scan. The "picdex status"
// command renders the individual results for display.
package preflight
