package testsupport

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteAudioFiles creates one file per name inside dir. Each file holds its
// own name so copies can be traced back to their source.
func WriteAudioFiles(t testing.TB, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		WriteFile(t, filepath.Join(dir, name), "audio:"+name)
	}
}

// ListDir returns the sorted entry names of dir, or nil when it does not exist.
func ListDir(t testing.TB, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read dir %s: %v", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
