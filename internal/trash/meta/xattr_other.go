//go:build !(linux || darwin)

package meta

import (
	"errors"

	"github.com/babarot/putback/internal/pathenc"
)

const DefaultKey = "putback.origin"

// Xattr is unavailable on this platform; every call reports
// errors.ErrUnsupported so Fallback moves on to its secondary store.
type Xattr struct {
	Key string
}

func NewXattr() *Xattr {
	return &Xattr{Key: DefaultKey}
}

func (x *Xattr) Write(dst, original pathenc.Bytes) error {
	return errors.ErrUnsupported
}

func (x *Xattr) Read(dst pathenc.Bytes) (pathenc.Bytes, error) {
	return nil, errors.ErrUnsupported
}

func IsUnsupported(err error) bool {
	return errors.Is(err, errors.ErrUnsupported)
}
