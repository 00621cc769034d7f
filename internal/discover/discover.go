// Package discover enumerates the audio files eligible for renumbering.
package discover

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"dfsorter/internal/fault"
)

// AudioFile is one candidate input file. It is not modified after discovery.
type AudioFile struct {
	Name string // file name inside the input directory
	Ext  string // extension with its original case, including the dot
	Base string // Name without Ext
}

// NewAudioFile splits a file name into base and extension.
func NewAudioFile(name string) AudioFile {
	ext := filepath.Ext(name)
	return AudioFile{Name: name, Ext: ext, Base: strings.TrimSuffix(name, ext)}
}

// Options narrows which directory entries are returned.
type Options struct {
	// Extensions are lowercase with a leading dot.
	Extensions []string
	// IgnorePath points at an optional gitignore-style file. A missing file is
	// not an error.
	IgnorePath string
}

// Files lists the audio files directly inside dir. Subdirectories are not
// descended into. Results follow os.ReadDir order, which is sorted by name.
func Files(dir string, opts Options) ([]AudioFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fault.Wrap(fault.ErrFilesystem, "discover", "read input directory", dir, err)
	}

	gi, err := loadIgnore(opts.IgnorePath)
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	var files []AudioFile
	for _, entry := range entries {
		if !isFile(dir, entry) {
			continue
		}
		file := NewAudioFile(entry.Name())
		if strings.Trim(file.Base, ".") == "" {
			// ".mp3" is a hidden file without an extension, not an mp3.
			continue
		}
		if _, ok := allowed[strings.ToLower(file.Ext)]; !ok {
			continue
		}
		if gi != nil && gi.MatchesPath(file.Name) {
			continue
		}
		files = append(files, file)
	}
	return files, nil
}

// Names returns the file names in order.
func Names(files []AudioFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Name
	}
	return out
}

// Bases returns the base names in order.
func Bases(files []AudioFile) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.Base
	}
	return out
}

func isFile(dir string, entry fs.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

func loadIgnore(path string) (*ignore.GitIgnore, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fault.Wrap(fault.ErrFilesystem, "discover", "stat ignore file", path, err)
	}
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fault.Wrap(fault.ErrFilesystem, "discover", "read ignore file", path, err)
	}
	return gi, nil
}
