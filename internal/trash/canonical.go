package trash

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/babarot/putback/internal/pathenc"
)

// Canonicalize turns user supplied paths into absolute paths whose parent
// directories have their symlinks resolved. The last component is kept as
// given so that a symlink is trashed itself, not its target.
func Canonicalize(paths []string) ([]pathenc.Bytes, error) {
	out := make([]pathenc.Bytes, 0, len(paths))
	for _, p := range paths {
		c, err := canonicalize(p)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func canonicalize(p string) (pathenc.Bytes, error) {
	if p == "" {
		return nil, &ConversionError{Path: pathenc.FromOS(p), Reason: "empty path"}
	}
	switch filepath.Base(filepath.Clean(p)) {
	case ".", "..", string(filepath.Separator):
		return nil, &ConversionError{Path: pathenc.FromOS(p), Reason: "refusing to trash a root or dot directory"}
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	base := filepath.Base(abs)
	parent, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	full := filepath.Join(parent, base)
	if _, err := os.Lstat(full); err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return pathenc.FromOS(full), nil
}
