package trash

import (
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/babarot/putback/internal/pathenc"
)

// Item describes one entry after it was moved to the trash.
type Item struct {
	// ID is the entry's current location in the trash.
	ID pathenc.Bytes

	// Name is the entry's last path component before deletion.
	Name pathenc.Bytes

	// OriginalParent is the directory the entry was deleted from.
	OriginalParent pathenc.Bytes

	// DeletedAt is read from the Context clock once the move is done.
	DeletedAt time.Time
}

// OriginalPath returns where the entry lived before deletion.
func (i Item) OriginalPath() pathenc.Bytes {
	return pathenc.Join(i.OriginalParent, i.Name)
}

func newItem(original, id pathenc.Bytes, at time.Time) Item {
	return Item{
		ID:             id,
		Name:           pathenc.Base(original),
		OriginalParent: pathenc.Dir(original),
		DeletedAt:      at,
	}
}

// reconcileScript pairs the file URLs printed by the Finder script with the
// request. Finder reports the trashed items in the order it was given them,
// so the pairing is positional; output that does not parse or does not have
// one line per request is dropped and ok is false.
func reconcileScript(paths []pathenc.Bytes, stdout []byte, at time.Time) ([]Item, bool) {
	lines := lo.Compact(lo.Map(strings.Split(string(stdout), "\n"), func(l string, _ int) string {
		return strings.TrimSpace(l)
	}))
	if len(lines) != len(paths) {
		return nil, false
	}

	ids := make([]pathenc.Bytes, 0, len(lines))
	for _, l := range lines {
		id, err := pathenc.ParseFileURL(l)
		if err != nil {
			return nil, false
		}
		ids = append(ids, id)
	}

	return lo.Map(paths, func(p pathenc.Bytes, i int) Item {
		return newItem(p, ids[i], at)
	}), true
}
