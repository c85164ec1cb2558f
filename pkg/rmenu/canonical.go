package rmenu

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hansbonini/rmenutools/pkg/common"
)

// Bounds of the id space the menu can address
const (
	firstTwoDigitID   = 1
	lastTwoDigitID    = 99
	firstThreeDigitID = 100
	lastThreeDigitID  = 998
)

var (
	ErrIDSpaceExhausted = errors.New("more directories than canonical ids")
	ErrTargetExists     = errors.New("rename target already exists")
)

// Assignment is one planned directory rename.
type Assignment struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// CanonicalIDs returns the id space in ascending order: "01".."99" followed
// by "100".."998".
func CanonicalIDs() []string {
	ids := make([]string, 0, lastTwoDigitID-firstTwoDigitID+1+lastThreeDigitID-firstThreeDigitID+1)
	for i := firstTwoDigitID; i <= lastTwoDigitID; i++ {
		ids = append(ids, fmt.Sprintf("%02d", i))
	}
	for i := firstThreeDigitID; i <= lastThreeDigitID; i++ {
		ids = append(ids, fmt.Sprintf("%03d", i))
	}
	return ids
}

// IsCanonical reports whether name is exactly one of the canonical ids.
func IsCanonical(name string) bool {
	if !common.IsDigits(name) {
		return false
	}
	switch len(name) {
	case 2:
		return name != "00"
	case 3:
		return name[0] != '0' && name != "999"
	default:
		return false
	}
}

// PlanRenames computes the renames that move every non-canonical name onto
// the lowest free canonical id. Canonical names are left alone and the
// reserved id is never handed out. The plan depends only on the names given;
// if the pool runs out no plan is returned.
func PlanRenames(names []string, reserved string) ([]Assignment, error) {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)

	used := map[string]bool{reserved: true}
	var pending []string
	for _, name := range sorted {
		if name == reserved {
			continue
		}
		if IsCanonical(name) {
			used[name] = true
			continue
		}
		pending = append(pending, name)
	}
	if len(pending) == 0 {
		return nil, nil
	}

	var pool []string
	for _, id := range CanonicalIDs() {
		if !used[id] {
			pool = append(pool, id)
		}
	}
	if len(pending) > len(pool) {
		return nil, fmt.Errorf("%w: %d directories to rename, %d ids free", ErrIDSpaceExhausted, len(pending), len(pool))
	}

	plan := make([]Assignment, len(pending))
	for i, name := range pending {
		plan[i] = Assignment{From: name, To: pool[i]}
	}
	return plan, nil
}

// Canonicalize renames the non-canonical directories under root. Every
// target is checked before the first rename; if a rename fails the ones
// already applied are reverted. With dryRun the plan is returned unapplied.
func Canonicalize(root, reserved string, dryRun bool) ([]Assignment, error) {
	names, err := listDirs(root)
	if err != nil {
		return nil, err
	}

	// Plain files with canonical names would collide with a rename target.
	taken, err := canonicalFiles(root)
	if err != nil {
		return nil, err
	}

	plan, err := PlanRenames(append(names, taken...), reserved)
	if err != nil {
		return nil, err
	}
	if len(plan) == 0 {
		common.LogInfo(common.InfoNothingToRename)
		return nil, nil
	}

	for _, a := range plan {
		if _, err := os.Lstat(filepath.Join(root, a.To)); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrTargetExists, a.To)
		}
	}
	if dryRun {
		return plan, nil
	}

	for i, a := range plan {
		if err := os.Rename(filepath.Join(root, a.From), filepath.Join(root, a.To)); err != nil {
			rollback(root, plan[:i])
			return nil, common.FormatError(common.ErrFailedToRenameDir, fmt.Errorf("%s -> %s: %w", a.From, a.To, err))
		}
		common.LogInfo(common.InfoDirectoryRenamed, a.From, a.To)
	}
	return plan, nil
}

func rollback(root string, applied []Assignment) {
	for i := len(applied) - 1; i >= 0; i-- {
		a := applied[i]
		if err := os.Rename(filepath.Join(root, a.To), filepath.Join(root, a.From)); err != nil {
			common.LogError("%s: %s -> %s: %v", common.ErrFailedToRollbackRename, a.To, a.From, err)
		}
	}
}

// canonicalFiles returns non-directory entries that hold a canonical id.
func canonicalFiles(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToReadDirectory, err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && IsCanonical(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
