// Package ingest walks directory roots, classifies files, and records them
// in the catalog, fanning classification out over a worker pool while
// keeping all catalog writes on a single goroutine.
package ingest
