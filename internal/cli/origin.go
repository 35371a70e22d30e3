package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/babarot/putback/internal/pathenc"
	"github.com/babarot/putback/internal/trash"
	"github.com/babarot/putback/internal/trash/meta"
	"github.com/babarot/putback/internal/trash/xdg"
)

// Origin prints where an entry in the trash was deleted from. Entries
// moved by the direct method carry their origin in the metadata store and
// entries in an XDG trash have a .trashinfo next to them.
func (c *CLI) Origin(arg string) error {
	paths, err := trash.Canonicalize([]string{arg})
	if err != nil {
		return err
	}
	p := paths[0]

	orig, err := lookupOrigin(p)
	if err != nil {
		return fmt.Errorf("%s: %w", arg, err)
	}
	fmt.Fprintln(c.stdout, orig.OSPath())
	return nil
}

func lookupOrigin(p pathenc.Bytes) (pathenc.Bytes, error) {
	store := meta.Fallback{
		Primary:   meta.NewXattr(),
		Secondary: meta.NewSidecar(filepath.Dir(p.OSPath())),
	}
	orig, err := store.Read(p)
	if err == nil {
		return orig, nil
	}
	if !errors.Is(err, meta.ErrNoRecord) && !meta.IsUnsupported(err) {
		return nil, err
	}
	slog.Debug("no origin in metadata store, trying trashinfo", "path", p.String())

	info, xerr := xdg.Lookup(p.OSPath())
	if xerr != nil {
		slog.Debug("no trashinfo", "path", p.String(), "error", xerr)
		return nil, meta.ErrNoRecord
	}
	return info.AbsolutePath(), nil
}
