// Package fs holds the file operations the trash strategies are built on.
package fs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	cp "github.com/otiai10/copy"
)

// Move renames src to dst, falling back to copy and delete when the two are
// on different devices. dst must not exist, and where the platform allows
// it the name is claimed atomically, so a concurrent Move to the same dst
// fails with ErrDestinationExists instead of replacing the other entry.
//
// At no point are both src and dst absent: a failed copy removes only the
// partial copy, and a failed removal of src keeps the complete copy at dst.
func Move(src, dst string) error {
	if src == "" || dst == "" {
		return ErrInvalidPath
	}
	if _, err := os.Lstat(src); err != nil {
		if os.IsNotExist(err) {
			return &MoveError{Op: "stat", Src: src, Dst: dst, Err: fmt.Errorf("%w: %w", ErrSourceNotFound, err)}
		}
		return &MoveError{Op: "stat", Src: src, Dst: dst, Err: err}
	}

	err := renameNoReplace(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return &MoveError{Op: "rename", Src: src, Dst: dst, Err: err}
	}

	slog.Debug("cross-device move, falling back to copy", "src", src, "dst", dst)
	return copyAndDelete(src, dst)
}

// renameChecked is the non-atomic fallback of renameNoReplace.
func renameChecked(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return ErrDestinationExists
	}
	return os.Rename(src, dst)
}

// stagePrefix names the directory a cross-device copy is assembled in,
// next to dst, before it is renamed into place.
const stagePrefix = ".putback-copy-"

// removeSource is replaced in tests.
var removeSource = os.RemoveAll

func copyAndDelete(src, dst string) error {
	opts := cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow // trash the link, not its target
		},
		PreserveTimes: true,
		Sync:          true,
	}

	stage, err := os.MkdirTemp(filepath.Dir(dst), stagePrefix)
	if err != nil {
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}
	defer func() {
		if err := os.RemoveAll(stage); err != nil {
			slog.Warn("failed to clean up partial copy", "dir", stage, "error", err)
		}
	}()

	tmp := filepath.Join(stage, filepath.Base(dst))
	if err := cp.Copy(src, tmp, opts); err != nil {
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}
	if err := renameNoReplace(tmp, dst); err != nil {
		return &MoveError{Op: "rename", Src: src, Dst: dst, Err: err}
	}

	if err := removeSource(src); err != nil {
		return &MoveError{Op: "remove_source", Src: src, Dst: dst, Err: err}
	}
	return nil
}

// CreateExclusive creates a new file with O_EXCL flag to ensure atomic creation.
// Returns error if the file already exists.
func CreateExclusive(path string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}

const maxNumberedNames = 100

// UniqueName returns base, or base with a numeric suffix before its
// extension (report.txt, report_1.txt, ...), such that taken reports false
// for it. After maxNumberedNames attempts a random suffix is used.
func UniqueName(base string, taken func(name string) bool) string {
	stem, ext := splitExt(base)
	name := base
	for i := 1; i <= maxNumberedNames; i++ {
		if !taken(name) {
			return name
		}
		name = fmt.Sprintf("%s_%d%s", stem, i, ext)
	}
	for {
		name = stem + "_" + uuid.NewString() + ext
		if !taken(name) {
			return name
		}
	}
}

// splitExt splits name like filepath.Ext, except that a leading dot, as in
// .bashrc, does not start an extension.
func splitExt(name string) (string, string) {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if stem == "" || strings.Trim(stem, ".") == "" {
		return name, ""
	}
	return stem, ext
}

// Exists reports whether path can be lstat'ed.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
