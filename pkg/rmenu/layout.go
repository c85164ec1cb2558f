// Package rmenu handles the SD card side of an RMENU setup: the menu
// directory layout, game directory scanning and naming, the LIST.INI
// catalog and the menu image build.
package rmenu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Default names of the menu installation
const (
	ReservedDir  = "01"
	MenuSubdir   = "BIN/RMENU"
	ListFileName = "LIST.INI"
	BootBinary   = "0.BIN"
	ImageName    = "RMENU.iso"
	RMenuBinary  = "RMENU.BIN"
	KaiBinary    = "RMENUKAI.BIN"
)

// RequiredFiles must exist in the menu directory before anything runs.
var RequiredFiles = []string{"ABS.TXT", "BIB.TXT", "CPY.TXT", "IP.BIN", RMenuBinary, KaiBinary}

var (
	ErrMissingRoot    = errors.New("data directory does not exist")
	ErrMissingMenuDir = errors.New("RMENU directory does not exist")
)

// MissingFilesError lists required menu files that were not found.
type MissingFilesError struct {
	Dir   string
	Files []string
}

func (e *MissingFilesError) Error() string {
	return fmt.Sprintf("one or more RMENU files are missing from %s: %s", e.Dir, strings.Join(e.Files, ", "))
}

// Layout locates the menu installation under a data directory.
type Layout struct {
	Root     string
	Reserved string
	Required []string
}

// NewLayout returns the stock layout rooted at root.
func NewLayout(root string) Layout {
	required := make([]string, len(RequiredFiles))
	copy(required, RequiredFiles)
	return Layout{Root: root, Reserved: ReservedDir, Required: required}
}

// ReservedPath is the menu's own directory, e.g. root/01.
func (l Layout) ReservedPath() string {
	return filepath.Join(l.Root, l.Reserved)
}

// MenuDir is where the menu binaries and LIST.INI live.
func (l Layout) MenuDir() string {
	return filepath.Join(l.ReservedPath(), filepath.FromSlash(MenuSubdir))
}

// ListPath is the catalog file location.
func (l Layout) ListPath() string {
	return filepath.Join(l.MenuDir(), ListFileName)
}

// ImagePath is where the built menu image is written.
func (l Layout) ImagePath() string {
	return filepath.Join(l.ReservedPath(), ImageName)
}

// Check verifies the data directory, the menu directory and every required
// menu file, in that order.
func (l Layout) Check() error {
	if !isDir(l.Root) {
		return fmt.Errorf("%w: %s", ErrMissingRoot, l.Root)
	}
	if !isDir(l.ReservedPath()) {
		return fmt.Errorf("%w: %s", ErrMissingMenuDir, l.ReservedPath())
	}

	var missing []string
	for _, name := range l.Required {
		info, err := os.Stat(filepath.Join(l.MenuDir(), name))
		if err != nil || !info.Mode().IsRegular() {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingFilesError{Dir: l.MenuDir(), Files: missing}
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
