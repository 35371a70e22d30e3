package trash

import (
	"fmt"
	"strings"
)

// Method selects how entries are moved to the trash.
type Method int

const (
	// MethodAutomationScript asks Finder, through one osascript invocation
	// per batch, to delete the files. Finder offers "Put Back" for them, but
	// it may prompt for automation permissions.
	MethodAutomationScript Method = iota

	// MethodServiceCall calls the native trash service once per path.
	MethodServiceCall

	// MethodDirectMove renames entries into a trash directory and records
	// their original path next to them.
	MethodDirectMove
)

// DefaultMethod is the method of a Context built without WithMethod.
const DefaultMethod = MethodAutomationScript

func (m Method) String() string {
	switch m {
	case MethodAutomationScript:
		return "finder"
	case MethodServiceCall:
		return "service"
	case MethodDirectMove:
		return "direct"
	}
	return "unknown"
}

// Valid reports whether m is one of the declared methods.
func (m Method) Valid() bool {
	switch m {
	case MethodAutomationScript, MethodServiceCall, MethodDirectMove:
		return true
	}
	return false
}

// ParseMethod maps a method name from the command line or the config file
// to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "finder", "automation-script", "applescript", "osascript":
		return MethodAutomationScript, nil
	case "service", "service-call", "nsfilemanager":
		return MethodServiceCall, nil
	case "direct", "direct-move":
		return MethodDirectMove, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	v, err := ParseMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
	return []byte(m.String()), nil
}
