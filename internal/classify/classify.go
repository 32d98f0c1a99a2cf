package classify

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"picdex/internal/faults"
)

// Result describes a classified file: the dedup key plus the sniffed type.
type Result struct {
	Size      int64
	Hash      string
	TypeLabel string
}

// Classifier computes a file's size, content hash, and type label. Hashing
// reads the full content; the type label comes from the injected Sniffer.
type Classifier struct {
	sniffer Sniffer
}

// New constructs a classifier around the given sniffer.
func New(sniffer Sniffer) *Classifier {
	return &Classifier{sniffer: sniffer}
}

// Classify reads path and produces its dedup key and type label. All
// failures are per-file read errors; callers skip the file and continue.
func (c *Classifier) Classify(ctx context.Context, path string) (Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return Result{}, faults.Wrap(faults.ErrFileRead, "classify", "open file", path, err)
	}
	defer file.Close()

	digest := sha1.New()
	size, err := io.Copy(digest, file)
	if err != nil {
		return Result{}, faults.Wrap(faults.ErrFileRead, "classify", "hash content", path, err)
	}

	label, err := c.sniffer.Sniff(ctx, path)
	if err != nil {
		return Result{}, faults.Wrap(faults.ErrFileRead, "classify", "sniff type", path, err)
	}
	if label == "" {
		return Result{}, faults.Wrap(faults.ErrFileRead, "classify", "sniff type", fmt.Sprintf("empty type label for %s", path), nil)
	}

	return Result{
		Size:      size,
		Hash:      hex.EncodeToString(digest.Sum(nil)),
		TypeLabel: label,
	}, nil
}
