// Package xdg is a trash service following the freedesktop.org Trash
// specification, used where no desktop trash API is available to Go.
package xdg

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/babarot/putback/internal/fs"
	"github.com/babarot/putback/internal/pathenc"
)

// ErrCrossDevice is returned when an entry lives on a device without a
// usable trash directory and falling back to the home trash is disabled.
var ErrCrossDevice = errors.New("no trash directory on the entry's device")

// Config holds the settings of the XDG trash service
type Config struct {
	// HomeTrashDir overrides $XDG_DATA_HOME/Trash.
	HomeTrashDir string

	// HomeFallback moves entries from devices without a trash directory
	// into the home trash, copying them across devices.
	HomeFallback bool

	// ForceHomeTrash skips external trash directories entirely.
	ForceHomeTrash bool
}

// Service implements the native trash service on top of the XDG layout
type Service struct {
	// Home trash location (~/.local/share/Trash)
	home *trashLocation

	// External trash locations by mount point, found on first use
	mu       sync.Mutex
	external map[string]*trashLocation

	config Config
	now    func() time.Time
	move   func(src, dst string) error
}

// trashLocation represents a single trash directory
type trashLocation struct {
	// Root directory (e.g., ~/.local/share/Trash or /media/disk/.Trash-1000)
	root string

	// Files directory (root/files)
	filesDir string

	// Info directory (root/info)
	infoDir string

	// topdir is the mount point for external trashes and empty for the
	// home trash, whose .trashinfo files hold absolute paths
	topdir string
}

func newLocation(root, topdir string) *trashLocation {
	return &trashLocation{
		root:     root,
		filesDir: filepath.Join(root, "files"),
		infoDir:  filepath.Join(root, "info"),
		topdir:   topdir,
	}
}

// NewService creates the home trash if needed. External trash directories
// are looked up when an entry on their device is first trashed.
func NewService(cfg Config) (*Service, error) {
	slog.Info("initialize xdg trash service")

	s := &Service{
		external: make(map[string]*trashLocation),
		config:   cfg,
		now:      time.Now,
		move:     fs.Move,
	}

	home, err := s.initHomeTrash()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize home trash: %w", err)
	}
	s.home = home
	return s, nil
}

// HomeRoot returns the home trash directory.
func (s *Service) HomeRoot() string {
	return s.home.root
}

// Trash moves the entry named by fileURL to the trash of its device and
// returns the file URL of its new location.
func (s *Service) Trash(fileURL string) (string, error) {
	src, err := pathenc.ParseFileURL(fileURL)
	if err != nil {
		return "", err
	}
	abs := src.OSPath()
	if _, err := os.Lstat(abs); err != nil {
		return "", err
	}

	loc, err := s.selectTrashLocation(abs)
	if err != nil {
		return "", err
	}

	name, infoPath, err := s.reserve(loc, src)
	if err != nil {
		return "", err
	}

	dst := filepath.Join(loc.filesDir, name)
	if err := s.move(abs, dst); err != nil {
		var moveErr *fs.MoveError
		if errors.As(err, &moveErr) && !moveErr.SourceIntact() {
			// the copy at dst is complete and its info file makes it restorable
			return "", fmt.Errorf("trashed a copy at %s but could not remove the original: %w", dst, err)
		}
		os.Remove(infoPath)
		return "", fmt.Errorf("failed to move file to trash: %w", err)
	}

	slog.Debug("trashed", "src", src.String(), "dst", dst)
	return pathenc.FileURL(pathenc.FromOS(dst)), nil
}

const maxReserveAttempts = 5

// reserve picks a free name in loc and claims it by creating its
// .trashinfo file exclusively.
func (s *Service) reserve(loc *trashLocation, src pathenc.Bytes) (string, string, error) {
	base := pathenc.Base(src).OSPath()
	info := &TrashInfo{
		Path:      src,
		MountRoot: loc.topdir,
	}

	for i := 0; i < maxReserveAttempts; i++ {
		name := fs.UniqueName(base, func(n string) bool {
			return fs.Exists(filepath.Join(loc.filesDir, n)) ||
				fs.Exists(filepath.Join(loc.infoDir, n+infoExt))
		})
		infoPath := filepath.Join(loc.infoDir, name+infoExt)
		info.DeletionDate = s.now()

		err := info.Save(infoPath)
		if err == nil {
			return name, infoPath, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", fmt.Errorf("failed to save trash info: %w", err)
		}
		slog.Debug("trash info taken concurrently, retrying", "name", name)
	}
	return "", "", fmt.Errorf("could not reserve a name for %q in %s", src.String(), loc.root)
}

func (s *Service) initHomeTrash() (*trashLocation, error) {
	root := s.config.HomeTrashDir
	if root == "" {
		// First try $XDG_DATA_HOME
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			// Fallback to ~/.local/share
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("failed to get home directory: %w", err)
			}
			dataDir = filepath.Join(home, ".local", "share")
		}
		root = filepath.Join(dataDir, "Trash")
	}
	slog.Debug("initHomeTrash", "root", root)

	if err := createTrashDir(root); err != nil {
		return nil, err
	}
	return newLocation(root, ""), nil
}

func (s *Service) selectTrashLocation(path string) (*trashLocation, error) {
	// the parent decides the device; a symlink is trashed, not its target
	parent := filepath.Dir(path)

	same, err := sameDevice(parent, s.home.root)
	if err == nil && same {
		return s.home, nil
	}

	if !s.config.ForceHomeTrash {
		loc, err := s.externalTrash(parent)
		if err == nil {
			return loc, nil
		}
		slog.Debug("no trash directory on device", "path", path, "error", err)
	}

	if s.config.HomeFallback {
		return s.home, nil
	}
	return nil, ErrCrossDevice
}

// externalTrash returns the trash directory of the mount holding dir,
// preferring an administrator provided $topdir/.Trash/$uid over
// $topdir/.Trash-$uid and creating it when needed.
func (s *Service) externalTrash(dir string) (*trashLocation, error) {
	m, err := mountOf(dir)
	if err != nil {
		return nil, err
	}
	if err := m.usable(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if loc, ok := s.external[m.point]; ok {
		return loc, nil
	}

	uid := strconv.Itoa(os.Getuid())
	roots := []string{filepath.Join(m.point, ".Trash-"+uid)}
	if shared, ok := sharedTrash(m.point); ok {
		roots = append([]string{filepath.Join(shared, uid)}, roots...)
	}
	for _, root := range roots {
		if err = createTrashDir(root); err != nil {
			slog.Debug("cannot use trash directory", "root", root, "error", err)
			continue
		}
		loc := newLocation(root, m.point)
		s.external[m.point] = loc
		return loc, nil
	}
	return nil, err
}

// sharedTrash returns $topdir/.Trash if it is a real directory with the
// sticky bit set, the only form in which it may be used.
func sharedTrash(topdir string) (string, bool) {
	path := filepath.Join(topdir, ".Trash")
	fi, err := os.Lstat(path)
	if err != nil || !fi.IsDir() || fi.Mode()&os.ModeSticky == 0 {
		return "", false
	}
	return path, true
}

// createTrashDir creates root with its files and info directories and
// refuses a root that is a symlink.
func createTrashDir(root string) error {
	for _, sub := range []string{"files", "info"} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0700); err != nil {
			return fmt.Errorf("failed to create trash directory: %w", err)
		}
	}
	fi, err := os.Lstat(root)
	if err != nil {
		return err
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("trash directory %s is a symlink", root)
	}
	return nil
}
