//go:build !unix

package xdg

import (
	"fmt"
	"path/filepath"
	"strings"
)

// mountOf returns the volume holding path.
func mountOf(path string) (mount, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return mount{}, fmt.Errorf("failed to get absolute path: %w", err)
	}
	return mount{point: filepath.VolumeName(abs) + string(filepath.Separator)}, nil
}

// sameDevice compares volume names
func sameDevice(a, b string) (bool, error) {
	realA, err := filepath.EvalSymlinks(a)
	if err != nil {
		return false, err
	}
	realB, err := filepath.EvalSymlinks(b)
	if err != nil {
		return false, err
	}
	return strings.EqualFold(filepath.VolumeName(realA), filepath.VolumeName(realB)), nil
}
