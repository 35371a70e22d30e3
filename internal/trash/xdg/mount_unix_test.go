//go:build unix

package xdg

import (
	"path/filepath"
	"testing"
)

func TestMountOf(t *testing.T) {
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m, err := mountOf(dir)
	if err != nil {
		t.Skipf("no mount table: %v", err)
	}
	if !within(dir, m.point) {
		t.Errorf("mountOf(%q) = %q, which does not contain it", dir, m.point)
	}

	root, err := mountOf("/")
	if err != nil {
		t.Fatal(err)
	}
	if root.point != "/" {
		t.Errorf("mountOf(/) = %q, want /", root.point)
	}
}

func TestSameDevice(t *testing.T) {
	dir := t.TempDir()
	same, err := sameDevice(dir, filepath.Join(dir, "."))
	if err != nil {
		t.Fatal(err)
	}
	if !same {
		t.Error("a directory must be on its own device")
	}
	if _, err := sameDevice(filepath.Join(dir, "missing"), dir); err == nil {
		t.Error("sameDevice() should fail for a missing path")
	}
}
