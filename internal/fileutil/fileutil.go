package fileutil

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// CopyFile streams src to dst with default permissions (0o644).
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// CopyFileVerified streams src to dst and verifies the written bytes against
// the expected SHA-1 digest and size. Removes dst on mismatch, so a source
// that changed since it was hashed never leaves a wrongly named copy behind.
func CopyFileVerified(src, dst, wantHash string, wantSize int64) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	hasher := sha1.New()
	written, err := io.Copy(io.MultiWriter(out, hasher), in)
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != wantSize {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: expected %d bytes, copied %d bytes", wantSize, written)
	}
	if got := hex.EncodeToString(hasher.Sum(nil)); got != wantHash {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: expected %s, copied %s", wantHash, got)
	}
	return nil
}
