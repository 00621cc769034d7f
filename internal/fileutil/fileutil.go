// Package fileutil holds the file copy and write primitives the emitter uses.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
)

// CopyFile streams src to dst with mode 0o644 and returns the bytes written.
// When verify is set the source and destination streams are hashed and sizes
// compared; dst is removed on mismatch.
func CopyFile(src, dst string, verify bool) (int64, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = out.Close()
	}()

	var reader io.Reader = in
	var writer io.Writer = out
	var srcHasher, dstHasher hash.Hash
	if verify {
		srcHasher, dstHasher = sha256.New(), sha256.New()
		reader = io.TeeReader(in, srcHasher)
		writer = io.MultiWriter(out, dstHasher)
	}

	written, err := io.Copy(writer, reader)
	if err != nil {
		return written, err
	}
	if err := out.Close(); err != nil {
		return written, err
	}
	if !verify {
		return written, nil
	}

	if written != srcInfo.Size() {
		_ = os.Remove(dst)
		return written, fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return written, fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}
	return written, nil
}

// WriteFileAtomic writes data to a temp file beside path and renames it into
// place so readers never observe a partial file.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		_ = tmp.Close()
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

// ResetDir removes dir and everything below it, then recreates it empty.
func ResetDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove %q: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %q: %w", dir, err)
	}
	return nil
}
