package collect

import (
	"fmt"
	"os"
	"path/filepath"

	"picdex/internal/faults"
	"picdex/internal/fileutil"
)

// Store copies newly cataloged files into a flat, content-addressed
// directory. Callers only invoke it for content the catalog has never seen,
// so derived target names cannot collide.
type Store struct {
	dir string
}

// New ensures the collection directory exists and returns a store for it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, faults.Wrap(faults.ErrSetup, "collect", "create directory", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the collection directory.
func (s *Store) Dir() string {
	return s.dir
}

// TargetName derives the collected filename for a dedup key. The extension
// keeps its leading dot when present.
func TargetName(hash string, size int64, ext string) string {
	return fmt.Sprintf("%s-%d%s", hash, size, ext)
}

// Place copies sourcePath into the collection directory under its
// content-derived name and returns the destination path. The copy is
// verified against the dedup key, so a file that changed between hashing
// and relocation fails here instead of landing under a stale name. The
// catalog is never touched; a failed copy leaves it consistent and the
// file un-relocated.
func (s *Store) Place(sourcePath, hash string, size int64) (string, error) {
	target := filepath.Join(s.dir, TargetName(hash, size, filepath.Ext(sourcePath)))
	if err := fileutil.CopyFileVerified(sourcePath, target, hash, size); err != nil {
		return "", faults.Wrap(faults.ErrFileRead, "collect", "copy file", sourcePath, err)
	}
	return target, nil
}
