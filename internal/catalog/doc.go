// Package catalog persists picture records and type descriptors in SQLite.
//
// A Picture is identified by its dedup key (content hash, size); the store
// enforces that uniqueness and exposes the three operations the ingestion
// pipeline needs: exact-key lookup, insert, and tag-merge-update. Type
// labels live in their own table and resolve to stable integer ids.
//
// Both entity kinds are append-mostly: pictures are only ever mutated to
// merge tags and bump the duplicate counter, types are never mutated at
// all, and nothing is deleted. Writes are serialized behind a store-level
// mutex and each insert or merge is a single transaction, so an interrupted
// run never leaves a partially written record. A lock file next to the
// database fails fast when a second picdex process targets the same catalog.
//
// Schema changes bump the version in schema.go; users recreate the catalog
// to adopt a new schema.
package catalog
