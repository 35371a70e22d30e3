package meta

import "golang.org/x/sys/unix"

// DefaultKey is the attribute name used by NewXattr. Unprivileged processes
// may only write to the user namespace.
const DefaultKey = "user.putback.origin"

const errNoAttr = unix.ENODATA

// user attributes are refused on symlinks and special files
const errNoUserAttr = unix.EPERM
