package tagset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidPath indicates tokenization input that cannot describe a file
// under the scanned root.
var ErrInvalidPath = errors.New("invalid path")

// Tokenize derives the display name and the ordered tag tokens for a file
// discovered under root. The display name is the final path segment; the
// tokens are every intermediate segment between the root's parent directory
// and the file, in path order and without deduplication. Deduplication
// happens when the catalog serializes the tag set.
func Tokenize(root, path string) (string, []string, error) {
	root = filepath.Clean(strings.TrimSpace(root))
	path = filepath.Clean(strings.TrimSpace(path))
	if root == "" || root == "." {
		return "", nil, fmt.Errorf("%w: empty root", ErrInvalidPath)
	}
	if path == "" || path == "." {
		return "", nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	if path == root {
		return "", nil, fmt.Errorf("%w: path equals root %q", ErrInvalidPath, root)
	}

	rel, err := filepath.Rel(filepath.Dir(root), path)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", nil, fmt.Errorf("%w: %q is not under root %q", ErrInvalidPath, path, root)
	}

	segments := strings.Split(rel, string(filepath.Separator))
	name := segments[len(segments)-1]
	if name == "" {
		return "", nil, fmt.Errorf("%w: %q has no file segment", ErrInvalidPath, path)
	}
	return name, segments[:len(segments)-1], nil
}
