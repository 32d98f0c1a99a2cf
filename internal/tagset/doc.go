// Package tagset models the path-derived tags attached to catalog entries.
//
// A Set is an ordered, deduplicated collection serialized as a sorted,
// slash-joined string at the storage boundary; in-memory operations stay
// proper set operations. Tokenize turns a scanned file path into its display
// name and raw tag tokens without touching the catalog or the filesystem.
package tagset
