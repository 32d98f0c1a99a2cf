// Package testsupport provides shared helpers for package tests: per-test
// configs backed by temp directories, catalog store setup, file fixtures,
// and fake content sniffers.
package testsupport
