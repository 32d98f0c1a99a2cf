package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSetup marks failures detected before any file is processed:
	// invalid arguments, missing external tools, unusable directories.
	ErrSetup = errors.New("setup error")
	// ErrFileRead marks per-file I/O failures. A single unreadable file
	// must not abort a multi-thousand-file scan.
	ErrFileRead = errors.New("file read error")
	// ErrStoreWrite marks catalog write failures, which are fatal for the
	// current run.
	ErrStoreWrite = errors.New("store write error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrStoreWrite
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether the run must stop. Per-file read failures are
// skippable; everything else carrying a marker is fatal.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	return !errors.Is(err, ErrFileRead)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
