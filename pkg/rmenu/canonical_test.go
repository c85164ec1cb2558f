package rmenu

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"
)

func TestCanonicalIDs(t *testing.T) {
	ids := CanonicalIDs()
	if len(ids) != 997 {
		t.Fatalf("CanonicalIDs() length = %d, want 997", len(ids))
	}
	if ids[0] != "01" || ids[98] != "99" || ids[99] != "100" || ids[len(ids)-1] != "998" {
		t.Errorf("CanonicalIDs() bounds = %s %s %s %s", ids[0], ids[98], ids[99], ids[len(ids)-1])
	}
	for _, id := range ids {
		if !IsCanonical(id) {
			t.Errorf("IsCanonical(%q) = false for a generated id", id)
		}
	}
}

func TestIsCanonical(t *testing.T) {
	testCases := []struct {
		name     string
		expected bool
	}{
		{"01", true},
		{"42", true},
		{"99", true},
		{"100", true},
		{"998", true},
		{"00", false},
		{"1", false},
		{"001", false},
		{"099", false},
		{"999", false},
		{"1000", false},
		{"AA", false},
		{"1a", false},
		{"", false},
	}

	for _, tc := range testCases {
		if got := IsCanonical(tc.name); got != tc.expected {
			t.Errorf("IsCanonical(%q) = %v, want %v", tc.name, got, tc.expected)
		}
	}
}

func TestPlanRenames(t *testing.T) {
	testCases := []struct {
		name     string
		dirs     []string
		expected []Assignment
	}{
		{
			"gap filling",
			[]string{"02", "05", "AA", "99"},
			[]Assignment{{"AA", "03"}},
		},
		{
			"lexicographic order",
			[]string{"Panzer Dragoon", "Nights", "02", "7"},
			[]Assignment{{"7", "03"}, {"Nights", "04"}, {"Panzer Dragoon", "05"}},
		},
		{
			"leading zero",
			[]string{"002", "003"},
			[]Assignment{{"002", "02"}, {"003", "03"}},
		},
		{
			"reserved is skipped",
			[]string{"01", "X"},
			[]Assignment{{"X", "02"}},
		},
		{
			"reserved id not handed out when absent",
			[]string{"X"},
			[]Assignment{{"X", "02"}},
		},
		{
			"all canonical",
			[]string{"01", "02", "10", "150"},
			nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := PlanRenames(tc.dirs, ReservedDir)
			if err != nil {
				t.Fatalf("PlanRenames() failed: %v", err)
			}
			if len(plan) != len(tc.expected) {
				t.Fatalf("PlanRenames() = %v, want %v", plan, tc.expected)
			}
			for i := range plan {
				if plan[i] != tc.expected[i] {
					t.Errorf("plan[%d] = %v, want %v", i, plan[i], tc.expected[i])
				}
			}
		})
	}
}

func TestPlanRenames_Idempotent(t *testing.T) {
	dirs := []string{"01", "Game", "04", "zzz", "100"}
	plan, err := PlanRenames(dirs, ReservedDir)
	if err != nil {
		t.Fatalf("PlanRenames() failed: %v", err)
	}

	renamed := map[string]string{}
	for _, a := range plan {
		renamed[a.From] = a.To
	}
	var after []string
	for _, d := range dirs {
		if to, ok := renamed[d]; ok {
			d = to
		}
		after = append(after, d)
	}

	again, err := PlanRenames(after, ReservedDir)
	if err != nil {
		t.Fatalf("second PlanRenames() failed: %v", err)
	}
	if len(again) != 0 {
		t.Errorf("second PlanRenames() = %v, want no renames", again)
	}
}

func TestPlanRenames_Exhausted(t *testing.T) {
	dirs := append(CanonicalIDs(), "extra")

	plan, err := PlanRenames(dirs, ReservedDir)
	if !errors.Is(err, ErrIDSpaceExhausted) {
		t.Fatalf("PlanRenames() error = %v, want %v", err, ErrIDSpaceExhausted)
	}
	if plan != nil {
		t.Errorf("PlanRenames() = %v, want no plan", plan)
	}
}

func TestPlanRenames_ExactFit(t *testing.T) {
	// Every id but one is taken and one directory needs a name
	var dirs []string
	for _, id := range CanonicalIDs() {
		if id != "500" {
			dirs = append(dirs, id)
		}
	}
	dirs = append(dirs, "last")

	plan, err := PlanRenames(dirs, ReservedDir)
	if err != nil {
		t.Fatalf("PlanRenames() failed: %v", err)
	}
	if len(plan) != 1 || plan[0] != (Assignment{"last", "500"}) {
		t.Errorf("PlanRenames() = %v", plan)
	}
}

func TestCanonicalize(t *testing.T) {
	l := newSDCard(t)
	gameDir(t, l.Root, "02", "a.iso")
	gameDir(t, l.Root, "Nights", "nights.cdi")
	gameDir(t, l.Root, "Burning Rangers", "br.img")
	writeFile(t, filepath.Join(l.Root, "03"), nil)

	plan, err := Canonicalize(l.Root, l.Reserved, false)
	if err != nil {
		t.Fatalf("Canonicalize() failed: %v", err)
	}

	expected := []Assignment{{"Burning Rangers", "04"}, {"Nights", "05"}}
	if fmt.Sprint(plan) != fmt.Sprint(expected) {
		t.Fatalf("Canonicalize() = %v, want %v", plan, expected)
	}
	for _, a := range expected {
		if exists(filepath.Join(l.Root, a.From)) {
			t.Errorf("%s still exists", a.From)
		}
	}
	if !exists(filepath.Join(l.Root, "05", "nights.cdi")) {
		t.Error("05/nights.cdi missing after rename")
	}
	if !exists(filepath.Join(l.MenuDir(), "IP.BIN")) {
		t.Error("reserved directory was touched")
	}
}

func TestCanonicalize_DryRun(t *testing.T) {
	l := newSDCard(t)
	gameDir(t, l.Root, "Game", "a.iso")

	plan, err := Canonicalize(l.Root, l.Reserved, true)
	if err != nil {
		t.Fatalf("Canonicalize() failed: %v", err)
	}
	if len(plan) != 1 || plan[0] != (Assignment{"Game", "02"}) {
		t.Errorf("Canonicalize() = %v", plan)
	}
	if !exists(filepath.Join(l.Root, "Game")) || exists(filepath.Join(l.Root, "02")) {
		t.Error("dry run should not rename anything")
	}
}

func TestCanonicalize_NothingToDo(t *testing.T) {
	l := newSDCard(t)
	gameDir(t, l.Root, "02", "a.iso")

	plan, err := Canonicalize(l.Root, l.Reserved, false)
	if err != nil || plan != nil {
		t.Errorf("Canonicalize() = %v, %v, want nothing", plan, err)
	}
}

func TestRollback(t *testing.T) {
	root := t.TempDir()
	gameDir(t, root, "02", "a.iso")
	gameDir(t, root, "03", "b.iso")

	rollback(root, []Assignment{{"A", "02"}, {"B", "03"}})

	for _, name := range []string{"A", "B"} {
		if !exists(filepath.Join(root, name)) {
			t.Errorf("%s not restored", name)
		}
	}
	if exists(filepath.Join(root, "02")) || exists(filepath.Join(root, "03")) {
		t.Error("renamed directories should be gone after rollback")
	}
}
