package trash

import (
	"fmt"
	"log/slog"

	"github.com/babarot/putback/internal/pathenc"
)

// Delete moves one entry to the trash.
func (c Context) Delete(path pathenc.Bytes) error {
	return c.DeleteAll([]pathenc.Bytes{path})
}

// DeleteAll moves every entry to the trash, in order.
func (c Context) DeleteAll(paths []pathenc.Bytes) error {
	_, _, err := c.dispatch(paths)
	return err
}

// DeleteWithInfo moves one entry to the trash and describes where it went.
// ok is false when the method could not report it.
func (c Context) DeleteWithInfo(path pathenc.Bytes) (Item, bool, error) {
	items, ok, err := c.dispatch([]pathenc.Bytes{path})
	if err != nil || !ok {
		return Item{}, false, err
	}
	return items[0], true, nil
}

// DeleteAllWithInfo moves every entry to the trash and returns one Item per
// input, in input order. ok is false when the method succeeded without
// reporting per-item data, which is different from an empty result.
func (c Context) DeleteAllWithInfo(paths []pathenc.Bytes) ([]Item, bool, error) {
	return c.dispatch(paths)
}

func (c Context) dispatch(paths []pathenc.Bytes) ([]Item, bool, error) {
	for _, p := range paths {
		if err := pathenc.Validate(p); err != nil {
			return nil, false, err
		}
	}
	if len(paths) == 0 {
		return []Item{}, true, nil
	}

	slog.Debug("dispatch deletion", "method", c.method.String(), "count", len(paths))

	switch c.method {
	case MethodServiceCall:
		items, err := c.deleteWithService(paths)
		if err != nil {
			return nil, false, err
		}
		return items, true, nil
	case MethodAutomationScript:
		return c.deleteWithFinder(paths)
	case MethodDirectMove:
		items, err := c.deleteDirectly(paths)
		if err != nil {
			return nil, false, err
		}
		return items, true, nil
	default:
		return nil, false, fmt.Errorf("%w: %d", ErrUnknownMethod, int(c.method))
	}
}
