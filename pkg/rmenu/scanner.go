package rmenu

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hansbonini/rmenutools/pkg/common"
	"github.com/hansbonini/rmenutools/pkg/saturn"
)

var (
	ErrNoSubdirectories = errors.New("no subdirs found")
	ErrNoImages         = errors.New("no valid image files found in any subdir")
)

// ScanResult is the outcome of classifying the game directories.
type ScanResult struct {
	Dirs         []string           // game directories, sorted
	Candidates   []saturn.Candidate // at most one per directory, in Dirs order
	Empty        []string           // directories without a recognised image
	NonCanonical []string           // directory names outside the id space
}

// Scan lists the game directories directly under root and picks at most one
// image per directory. The reserved menu directory, hidden entries and plain
// files are ignored. Files are considered in listing order and the first
// whose name matches any image pattern wins.
func Scan(root, reserved string) (*ScanResult, error) {
	dirs, err := gameDirs(root, reserved)
	if err != nil {
		return nil, err
	}
	common.LogInfo(common.InfoSubdirsFound, len(dirs))
	if len(dirs) == 0 {
		return nil, ErrNoSubdirectories
	}

	result := &ScanResult{Dirs: dirs}
	for _, dir := range dirs {
		if !IsCanonical(dir) {
			result.NonCanonical = append(result.NonCanonical, dir)
			common.LogWarn(common.WarnNonCanonicalDir, dir)
		}

		candidate, ok, err := classifyDir(filepath.Join(root, dir), dir)
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Empty = append(result.Empty, dir)
			common.LogWarn(common.WarnNoImageInDir, dir)
			continue
		}

		common.LogDebug(common.DebugCandidate, dir, candidate.Filename, candidate.Format)
		result.Candidates = append(result.Candidates, candidate)
	}

	common.LogInfo(common.InfoImagesFound, len(result.Candidates))
	if len(result.Candidates) == 0 {
		return result, ErrNoImages
	}
	return result, nil
}

// classifyDir returns the first file in dir whose name matches an image
// pattern. Remaining files are not examined once a match is found.
func classifyDir(path, dirID string) (saturn.Candidate, bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return saturn.Candidate{}, false, common.FormatError(common.ErrFailedToReadDirectory, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		format := saturn.Classify(entry.Name())
		if format == saturn.FormatUnknown {
			continue
		}
		return saturn.Candidate{
			Path:     filepath.Join(path, entry.Name()),
			DirID:    dirID,
			Filename: entry.Name(),
			Format:   format,
		}, true, nil
	}
	return saturn.Candidate{}, false, nil
}

// gameDirs returns the sorted names of the game directories under root.
func gameDirs(root, reserved string) ([]string, error) {
	names, err := listDirs(root)
	if err != nil {
		return nil, err
	}

	dirs := names[:0]
	for _, name := range names {
		if name == reserved {
			continue
		}
		dirs = append(dirs, name)
	}
	return dirs, nil
}

// listDirs returns the sorted names of the visible subdirectories of root.
func listDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToReadDirectory, err)
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if name == "" || strings.HasPrefix(name, ".") {
			common.LogDebug(common.DebugSkippedEntry, name, "hidden")
			continue
		}
		if !entry.IsDir() {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
