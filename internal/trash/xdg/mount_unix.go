//go:build unix

package xdg

import (
	"fmt"
	"path/filepath"

	"github.com/moby/sys/mountinfo"
	"golang.org/x/sys/unix"
)

// mountOf returns the innermost mount containing path. When a mount point
// is mounted over, the last entry wins.
func mountOf(path string) (mount, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return mount{}, fmt.Errorf("failed to get absolute path: %w", err)
	}

	infos, err := mountinfo.GetMounts(func(info *mountinfo.Info) (skip, stop bool) {
		return !within(abs, info.Mountpoint), false
	})
	if err != nil {
		return mount{}, fmt.Errorf("failed to get mount info: %w", err)
	}

	var best *mountinfo.Info
	for _, info := range infos {
		if best == nil || len(info.Mountpoint) >= len(best.Mountpoint) {
			best = info
		}
	}
	if best == nil {
		return mount{point: "/"}, nil
	}
	return mount{
		point:    best.Mountpoint,
		fsType:   best.FSType,
		readOnly: hasOption(best.Options, "ro"),
	}, nil
}

// sameDevice reports whether the two paths, symlinks followed, live on the
// same device.
func sameDevice(a, b string) (bool, error) {
	var sa, sb unix.Stat_t
	if err := unix.Stat(a, &sa); err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", a, err)
	}
	if err := unix.Stat(b, &sb); err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", b, err)
	}
	return uint64(sa.Dev) == uint64(sb.Dev), nil
}
