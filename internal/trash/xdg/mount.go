package xdg

import (
	"errors"
	"fmt"
	"strings"
)

var errNoTrashOnMount = errors.New("mount cannot hold a trash directory")

// pseudo, memory-backed and kernel file systems never get a trash
// directory: what is put there would not survive a reboot or could not be
// written at all
var skipFSTypes = map[string]bool{
	"autofs":      true,
	"binfmt_misc": true,
	"bpf":         true,
	"cgroup":      true,
	"cgroup2":     true,
	"configfs":    true,
	"debugfs":     true,
	"devfs":       true,
	"devpts":      true,
	"devtmpfs":    true,
	"efivarfs":    true,
	"fusectl":     true,
	"hugetlbfs":   true,
	"mqueue":      true,
	"nsfs":        true,
	"proc":        true,
	"pstore":      true,
	"ramfs":       true,
	"securityfs":  true,
	"sysfs":       true,
	"tmpfs":       true,
	"tracefs":     true,
}

// mount is the file system holding a path.
type mount struct {
	point    string
	fsType   string
	readOnly bool
}

// usable reports why no trash directory may be created on m, if any.
func (m mount) usable() error {
	if skipFSTypes[m.fsType] {
		return fmt.Errorf("%w: %s is %s", errNoTrashOnMount, m.point, m.fsType)
	}
	if m.readOnly {
		return fmt.Errorf("%w: %s is read-only", errNoTrashOnMount, m.point)
	}
	return nil
}

func hasOption(options, opt string) bool {
	for _, o := range strings.Split(options, ",") {
		if o == opt {
			return true
		}
	}
	return false
}

// within reports whether path is dir or lies below it
func within(path, dir string) bool {
	if dir == "/" || path == dir {
		return true
	}
	return strings.HasPrefix(path, dir+"/")
}
