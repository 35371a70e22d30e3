package meta

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/babarot/putback/internal/pathenc"
)

// SidecarDirName is the directory, inside the trash directory, that holds
// sidecar records.
const SidecarDirName = ".putback"

const tempPattern = ".tmp-*"

// Sidecar stores the encoded origin in a file named after the entry inside
// Dir. It works on any file system but does not follow the entry if it is
// moved again.
type Sidecar struct {
	Dir string
}

// NewSidecar returns a Sidecar keeping its records in trashDir/.putback.
func NewSidecar(trashDir string) *Sidecar {
	return &Sidecar{Dir: filepath.Join(trashDir, SidecarDirName)}
}

func (s *Sidecar) recordPath(dst pathenc.Bytes) string {
	return filepath.Join(s.Dir, pathenc.Base(dst).OSPath())
}

func (s *Sidecar) Write(dst, original pathenc.Bytes) error {
	if err := os.MkdirAll(s.Dir, 0700); err != nil {
		return fmt.Errorf("create sidecar directory: %w", err)
	}
	// the temporary name is random so that it never lands on another record
	f, err := os.CreateTemp(s.Dir, tempPattern)
	if err != nil {
		return fmt.Errorf("write sidecar for %q: %w", dst.String(), err)
	}
	tmp := f.Name()
	_, err = f.WriteString(string(pathenc.Encode(original)) + "\n")
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, s.recordPath(dst))
	}
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write sidecar for %q: %w", dst.String(), err)
	}
	return nil
}

func (s *Sidecar) Read(dst pathenc.Bytes) (pathenc.Bytes, error) {
	raw, err := os.ReadFile(s.recordPath(dst))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%q: %w", dst.String(), ErrNoRecord)
	}
	if err != nil {
		return nil, fmt.Errorf("read sidecar for %q: %w", dst.String(), err)
	}
	return decodeRecord(dst, bytes.TrimRight(raw, "\n"))
}
