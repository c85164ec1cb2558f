package rmenu

import (
	"os"
	"path/filepath"
	"testing"
)

// newSDCard creates a data directory with a complete menu installation.
func newSDCard(t *testing.T) Layout {
	t.Helper()
	l := NewLayout(t.TempDir())
	if err := os.MkdirAll(l.MenuDir(), 0755); err != nil {
		t.Fatalf("Failed to create menu directory: %v", err)
	}
	for _, name := range l.Required {
		writeFile(t, filepath.Join(l.MenuDir(), name), []byte(name))
	}
	return l
}

// gameDir creates root/name and the given files inside it.
func gameDir(t *testing.T, root, name string, files ...string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", dir, err)
	}
	for _, file := range files {
		writeFile(t, filepath.Join(dir, file), nil)
	}
	return dir
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
