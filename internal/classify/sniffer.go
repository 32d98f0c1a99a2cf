package classify

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultSniffCommand is the content sniffing binary consulted for type
// labels when the config does not override it.
const DefaultSniffCommand = "file"

var commandContext = exec.CommandContext

// Sniffer derives a human-readable type descriptor from file content.
// Implementations must sniff magic bytes, never the filename extension.
type Sniffer interface {
	Sniff(ctx context.Context, path string) (string, error)
}

// FileSniffer shells out to file(1) in brief mode and reports its first
// output line verbatim, e.g. "JPEG image data".
type FileSniffer struct {
	command string
}

// NewFileSniffer builds a sniffer around the given binary. An empty command
// falls back to DefaultSniffCommand.
func NewFileSniffer(command string) *FileSniffer {
	command = strings.TrimSpace(command)
	if command == "" {
		command = DefaultSniffCommand
	}
	return &FileSniffer{command: command}
}

// Command returns the configured sniffing binary.
func (s *FileSniffer) Command() string {
	return s.command
}

// Sniff runs the sniffing binary against path and returns the trimmed first
// line of its output.
func (s *FileSniffer) Sniff(ctx context.Context, path string) (string, error) {
	cmd := commandContext(ctx, s.command, "-b", "--", path)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("%s: %s: %w", s.command, detail, err)
		}
		return "", fmt.Errorf("%s: %w", s.command, err)
	}
	label, _, _ := strings.Cut(stdout.String(), "\n")
	return strings.TrimSpace(label), nil
}

// SnifferFunc adapts a function to the Sniffer interface, mainly for tests.
type SnifferFunc func(ctx context.Context, path string) (string, error)

func (f SnifferFunc) Sniff(ctx context.Context, path string) (string, error) {
	return f(ctx, path)
}
