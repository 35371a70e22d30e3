package trash

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/babarot/putback/internal/fs"
	"github.com/babarot/putback/internal/pathenc"
	"github.com/babarot/putback/internal/trash/meta"
)

// deleteDirectly renames every entry into the trash directory and records
// its original path. It stops at the first failure; entries moved before it
// stay in the trash.
func (c Context) deleteDirectly(paths []pathenc.Bytes) ([]Item, error) {
	if len(c.trashDir) == 0 {
		return nil, ErrNoTrashDir
	}
	if err := pathenc.Validate(c.trashDir); err != nil {
		return nil, err
	}
	dir := c.trashDir.OSPath()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, &MoveError{Op: "create trash directory", Path: c.trashDir, Dest: c.trashDir, Err: err}
	}
	store := c.MetadataStore()

	items := make([]Item, 0, len(paths))
	for i, p := range paths {
		item, err := c.moveOne(p, dir, store)
		if err != nil {
			err.Index = i
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// moveEntry is replaced in tests.
var moveEntry = fs.Move

// maxClaimAttempts bounds the retries when a concurrent move takes the
// name picked for an entry.
const maxClaimAttempts = 5

func (c Context) moveOne(p pathenc.Bytes, dir string, store meta.Store) (Item, *MoveError) {
	dst, err := claim(p, dir)
	if err != nil {
		var fsErr *fs.MoveError
		if errors.As(err, &fsErr) && !fsErr.SourceIntact() {
			// dst holds the complete copy, keep it restorable
			if werr := store.Write(dst, p); werr != nil {
				slog.Error("failed to record origin of copied entry",
					"src", p.String(), "dst", dst.String(), "error", werr)
			}
			return Item{}, &MoveError{Op: "remove after copying", Path: p, Dest: dst, Err: err}
		}
		return Item{}, &MoveError{Op: "move", Path: p, Dest: dst, Err: err}
	}
	at := c.now()

	if err := store.Write(dst, p); err != nil {
		// an entry in the trash without its origin cannot be put back
		if rbErr := moveEntry(dst.OSPath(), p.OSPath()); rbErr != nil {
			slog.Error("failed to move entry back after origin write failure",
				"src", p.String(), "dst", dst.String(), "error", rbErr)
		}
		return Item{}, &MoveError{Op: "record origin of", Path: p, Dest: dst, Err: err}
	}

	return newItem(p, dst, at), nil
}

// claim moves p under a free name in dir. fs.Move refuses to replace an
// existing entry, so losing a race to another mover only costs a retry.
func claim(p pathenc.Bytes, dir string) (pathenc.Bytes, error) {
	var (
		dst pathenc.Bytes
		err error
	)
	for i := 0; i < maxClaimAttempts; i++ {
		name := fs.UniqueName(pathenc.Base(p).OSPath(), func(n string) bool {
			return n == meta.SidecarDirName || fs.Exists(filepath.Join(dir, n))
		})
		dst = pathenc.FromOS(filepath.Join(dir, name))

		slog.Debug("move to trash directory", "src", p.String(), "dst", dst.String())
		err = moveEntry(p.OSPath(), dst.OSPath())
		if !fs.IsDestinationExists(err) {
			return dst, err
		}
		slog.Debug("trash name taken concurrently, retrying", "name", name)
	}
	return dst, err
}
