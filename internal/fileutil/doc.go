// Package fileutil provides file copy helpers, including a copy that
// verifies the written bytes against an expected content hash and size.
package fileutil
