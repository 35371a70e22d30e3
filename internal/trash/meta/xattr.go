//go:build linux || darwin

package meta

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/babarot/putback/internal/pathenc"
)

// Xattr stores the encoded origin in an extended attribute of the entry
// itself, so the record travels with it. Symlinks are not followed.
type Xattr struct {
	Key string
}

func NewXattr() *Xattr {
	return &Xattr{Key: DefaultKey}
}

func (x *Xattr) Write(dst, original pathenc.Bytes) error {
	value := []byte(pathenc.Encode(original))
	if err := unix.Lsetxattr(dst.OSPath(), x.Key, value, 0); err != nil {
		return fmt.Errorf("set %s on %q: %w", x.Key, dst.String(), err)
	}
	return nil
}

func (x *Xattr) Read(dst pathenc.Bytes) (pathenc.Bytes, error) {
	path := dst.OSPath()
	for {
		size, err := unix.Lgetxattr(path, x.Key, nil)
		if err != nil {
			return nil, x.readErr(dst, err)
		}
		buf := make([]byte, size)
		n, err := unix.Lgetxattr(path, x.Key, buf)
		if errors.Is(err, unix.ERANGE) {
			// the attribute grew between the two calls
			continue
		}
		if err != nil {
			return nil, x.readErr(dst, err)
		}
		return decodeRecord(dst, buf[:n])
	}
}

func (x *Xattr) readErr(dst pathenc.Bytes, err error) error {
	if errors.Is(err, errNoAttr) {
		return fmt.Errorf("%q: %w", dst.String(), ErrNoRecord)
	}
	return fmt.Errorf("get %s on %q: %w", x.Key, dst.String(), err)
}

// IsUnsupported reports whether err means the entry cannot carry extended
// attributes.
func IsUnsupported(err error) bool {
	return errors.Is(err, unix.ENOTSUP) ||
		errors.Is(err, unix.EOPNOTSUPP) ||
		errors.Is(err, errNoUserAttr) ||
		errors.Is(err, errors.ErrUnsupported)
}
