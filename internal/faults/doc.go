// Package faults defines the error taxonomy shared across the ingestion
// pipeline and the CLI.
//
// Errors are tagged with sentinel markers via Wrap so callers can decide
// between aborting a run (setup and store-write failures) and skipping a
// single file (read failures) without inspecting message text.
package faults
