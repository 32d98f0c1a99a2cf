// Package deps checks the availability of external binaries, currently
// just the content sniffing tool the classifier shells out to.
package deps
