package xdg

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/babarot/putback/internal/fs"
	"github.com/babarot/putback/internal/pathenc"
)

const (
	// According to XDG spec
	trashInfoHeader = "[Trash Info]"
	timeFormat      = "2006-01-02T15:04:05"
	infoExt         = ".trashinfo"
)

// TrashInfo represents the contents of a .trashinfo file
type TrashInfo struct {
	// Path is the original path of the entry, absolute or relative to
	// MountRoot
	Path pathenc.Bytes

	// DeletionDate is when the entry was moved to trash
	DeletionDate time.Time

	// MountRoot is the top directory of the device holding an external
	// trash. It is empty for the home trash.
	MountRoot string
}

// NewInfo creates a TrashInfo from a reader
func NewInfo(r io.Reader) (*TrashInfo, error) {
	scanner := bufio.NewScanner(r)
	info := &TrashInfo{}
	var headerFound bool

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if line == trashInfoHeader {
			headerFound = true
			continue
		}
		if !headerFound {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}

		switch strings.TrimSpace(key) {
		case "Path":
			path, err := pathenc.Decode(pathenc.Literal(strings.TrimSpace(value)))
			if err != nil {
				return nil, fmt.Errorf("invalid Path encoding: %w", err)
			}
			info.Path = path

		case "DeletionDate":
			date, err := time.ParseInLocation(timeFormat, strings.TrimSpace(value), time.Local)
			if err != nil {
				return nil, fmt.Errorf("invalid DeletionDate format: %w", err)
			}
			info.DeletionDate = date
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading info file: %w", err)
	}

	if !headerFound {
		return nil, fmt.Errorf("missing %s header", trashInfoHeader)
	}
	if len(info.Path) == 0 {
		return nil, fmt.Errorf("missing Path field")
	}
	if info.DeletionDate.IsZero() {
		return nil, fmt.Errorf("missing DeletionDate field")
	}

	return info, nil
}

// AbsolutePath returns the original path, resolving a relative one against
// the mount root
func (i *TrashInfo) AbsolutePath() pathenc.Bytes {
	if filepath.IsAbs(i.Path.OSPath()) || i.MountRoot == "" {
		return i.Path
	}
	abs := pathenc.Join(pathenc.FromOS(i.MountRoot), i.Path)
	slog.Debug("resolved relative path",
		"relative", i.Path.String(),
		"mountRoot", i.MountRoot,
		"absolute", abs.String())
	return abs
}

// relativePath returns the path relative to the mount root. External
// trashes store relative paths so the device can be mounted elsewhere.
func (i *TrashInfo) relativePath() pathenc.Bytes {
	if i.MountRoot == "" {
		return i.Path
	}
	rel, err := filepath.Rel(i.MountRoot, i.Path.OSPath())
	if err != nil || strings.HasPrefix(rel, "..") {
		return i.Path
	}
	return pathenc.FromOS(rel)
}

// Save writes the trash info to a new file. It fails with os.ErrExist when
// the file is already there, which is how a trash name is claimed.
func (i *TrashInfo) Save(path string) error {
	content := new(strings.Builder)
	fmt.Fprintln(content, trashInfoHeader)
	fmt.Fprintf(content, "Path=%s\n", pathenc.Encode(i.relativePath()))
	fmt.Fprintf(content, "DeletionDate=%s\n", i.DeletionDate.Format(timeFormat))

	f, err := fs.CreateExclusive(path, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(content.String()); err != nil {
		// Try to remove the file if write fails
		os.Remove(path)
		return fmt.Errorf("failed to write info file: %w", err)
	}

	return nil
}

// loadTrashInfo loads and parses a .trashinfo file
func loadTrashInfo(path string) (*TrashInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open info file: %w", err)
	}
	defer f.Close()

	return NewInfo(f)
}

// Lookup reads the .trashinfo of an entry inside a trash "files" directory.
func Lookup(trashed string) (*TrashInfo, error) {
	filesDir := filepath.Dir(trashed)
	if filepath.Base(filesDir) != "files" {
		return nil, fmt.Errorf("%s is not inside a trash files directory", trashed)
	}
	root := filepath.Dir(filesDir)

	info, err := loadTrashInfo(filepath.Join(root, "info", filepath.Base(trashed)+infoExt))
	if err != nil {
		return nil, err
	}

	switch base := filepath.Base(root); {
	case strings.HasPrefix(base, ".Trash-"):
		info.MountRoot = filepath.Dir(root)
	case filepath.Base(filepath.Dir(root)) == ".Trash":
		info.MountRoot = filepath.Dir(filepath.Dir(root))
	}
	return info, nil
}
