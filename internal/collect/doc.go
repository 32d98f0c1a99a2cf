// Package collect relocates unique files into a flat destination directory
// named by their dedup key, "{hash}-{size}{ext}".
package collect
