// Package meta records where a directly moved entry came from.
package meta

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/babarot/putback/internal/pathenc"
)

// ErrNoRecord is returned by Read when an entry carries no origin.
var ErrNoRecord = errors.New("no origin recorded")

// Store attaches the original absolute path to an entry that now lives at
// dst. Write replaces a previous record for the same entry.
type Store interface {
	Write(dst, original pathenc.Bytes) error
	Read(dst pathenc.Bytes) (pathenc.Bytes, error)
}

// Fallback writes to Primary and switches to Secondary when Primary is not
// supported by the file system holding the entry.
type Fallback struct {
	Primary   Store
	Secondary Store
}

func (f Fallback) Write(dst, original pathenc.Bytes) error {
	err := f.Primary.Write(dst, original)
	if err == nil || !IsUnsupported(err) {
		return err
	}
	slog.Debug("origin store unsupported, falling back", "path", dst.String(), "error", err)
	return f.Secondary.Write(dst, original)
}

func (f Fallback) Read(dst pathenc.Bytes) (pathenc.Bytes, error) {
	orig, err := f.Primary.Read(dst)
	if err == nil {
		return orig, nil
	}
	if !errors.Is(err, ErrNoRecord) && !IsUnsupported(err) {
		return nil, err
	}
	return f.Secondary.Read(dst)
}

func decodeRecord(dst pathenc.Bytes, raw []byte) (pathenc.Bytes, error) {
	orig, err := pathenc.Decode(pathenc.Literal(raw))
	if err != nil {
		return nil, fmt.Errorf("origin of %q: %w", dst.String(), err)
	}
	if err := pathenc.Validate(orig); err != nil {
		return nil, fmt.Errorf("origin of %q: %w", dst.String(), err)
	}
	return orig, nil
}
