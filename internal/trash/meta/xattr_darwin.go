package meta

import "golang.org/x/sys/unix"

// DefaultKey is the attribute name used by NewXattr.
const DefaultKey = "dev.putback.origin"

const errNoAttr = unix.ENOATTR

const errNoUserAttr = unix.ENOTSUP
