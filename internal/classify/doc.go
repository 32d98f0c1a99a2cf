// Package classify computes the facts the catalog needs about a file on
// disk: its exact byte length, a SHA-1 hex digest over the full content, and
// a human-readable type label.
//
// Type labels come from content sniffing, not filename extensions, so
// mislabeled files classify correctly. Sniffing sits behind the Sniffer
// interface; production use wraps file(1), tests substitute fakes.
package classify
